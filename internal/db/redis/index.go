package redis

import (
	"context"
	"errors"
	"strconv"

	"github.com/kailas-cloud/photoindex/internal/db"
)

// EnsureIndex creates the FT index for def. An existing index yields
// db.ErrIndexExists.
func (s *Store) EnsureIndex(ctx context.Context, def *db.IndexDefinition) error {
	args, err := s.buildCreateArgs(def)
	if err != nil {
		return err
	}

	cmd := s.b().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			return &db.Error{Op: db.OpCreateIndex, Err: db.ErrIndexExists}
		}
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	return nil
}

// IndexExists probes index existence via FT.INFO; "unknown index name" means absent.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	cmd := s.b().Arbitrary("FT.INFO").Args(s.ftName(name)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isMissingIndex(err) {
			return false, nil
		}
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	return true, nil
}

func isMissingIndex(err error) bool {
	return isRedisErr(err, "unknown index name") || isRedisErr(err, "no such index")
}

// buildCreateArgs renders FT.CREATE over JSON documents. Text and keyword
// fields become TAG fields (exact, case-insensitive); dates are stored but
// not indexed.
func (s *Store) buildCreateArgs(idx *db.IndexDefinition) ([]string, error) {
	if err := idx.Validate(); err != nil {
		return nil, err
	}

	prefix := s.docPrefix(idx.Name)
	args := []string{
		s.ftName(idx.Name),
		"ON", "JSON",
		"PREFIX", strconv.Itoa(1), prefix,
		"SCHEMA",
	}

	indexed := 0
	for i := range idx.Fields {
		f := &idx.Fields[i]
		switch f.Type {
		case db.IndexFieldText, db.IndexFieldKeyword:
			path := "$." + f.Name
			if f.Multi {
				path += "[*]"
			}
			args = append(args, path, "AS", f.Name, "TAG")
			indexed++
		case db.IndexFieldDate:
			// not searchable
		default:
			return nil, errors.New("unknown field type")
		}
	}
	if indexed == 0 {
		return nil, errors.New("no searchable fields")
	}

	return args, nil
}
