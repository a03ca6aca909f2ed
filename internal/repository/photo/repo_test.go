package photo

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/photoindex/internal/db"
	"github.com/kailas-cloud/photoindex/internal/domain"
	domphoto "github.com/kailas-cloud/photoindex/internal/domain/photo"
)

func mustPhoto(t *testing.T, key string, labels ...string) domphoto.Photo {
	t.Helper()
	p, err := domphoto.New(key, "bucket-1", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), labels)
	if err != nil {
		t.Fatalf("new photo: %v", err)
	}
	return p
}

func TestNew_DefaultIndex(t *testing.T) {
	r := New(&mockStore{}, "")
	if r.Index() != DefaultIndex {
		t.Errorf("expected %s, got %s", DefaultIndex, r.Index())
	}
}

func TestDefinition(t *testing.T) {
	got := Definition("photos").String()
	want := "INDEX photos SCHEMA objectKey KEYWORD bucket KEYWORD createdTimeStamp DATE labels TEXT MULTI"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEnsureIndex_Error(t *testing.T) {
	boom := errors.New("boom")
	r := New(&mockStore{
		ensureIndexFn: func(context.Context, *db.IndexDefinition) error { return boom },
	}, "photos")
	if _, err := r.EnsureIndex(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
}

func TestEnsureIndex_ProbeError(t *testing.T) {
	boom := errors.New("boom")
	created := false
	r := New(&mockStore{
		indexExistsFn: func(context.Context, string) (bool, error) { return false, boom },
		ensureIndexFn: func(context.Context, *db.IndexDefinition) error {
			created = true
			return nil
		},
	}, "photos")
	if _, err := r.EnsureIndex(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if created {
		t.Error("index must not be created after a failed probe")
	}
}

func TestEnsureIndex_CreatedOrPresent(t *testing.T) {
	tests := []struct {
		name        string
		exists      bool
		ensureErr   error
		wantCreated bool
		wantEnsure  bool
	}{
		{"absent", false, nil, true, true},
		{"present", true, nil, false, false},
		{"created concurrently", false, &db.Error{Op: db.OpCreateIndex, Err: db.ErrIndexExists}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ensured := false
			r := New(&mockStore{
				indexExistsFn: func(_ context.Context, name string) (bool, error) {
					if name != "photos" {
						t.Errorf("probed %q", name)
					}
					return tt.exists, nil
				},
				ensureIndexFn: func(context.Context, *db.IndexDefinition) error {
					ensured = true
					return tt.ensureErr
				},
			}, "photos")

			created, err := r.EnsureIndex(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if created != tt.wantCreated {
				t.Errorf("created: got %v, want %v", created, tt.wantCreated)
			}
			if ensured != tt.wantEnsure {
				t.Errorf("ensure called: got %v, want %v", ensured, tt.wantEnsure)
			}
		})
	}
}

func TestSave_DocumentShape(t *testing.T) {
	var gotIndex, gotID string
	var gotBody map[string]any
	r := New(&mockStore{
		indexDocumentFn: func(_ context.Context, index, id string, body []byte) (string, error) {
			gotIndex, gotID = index, id
			if err := json.Unmarshal(body, &gotBody); err != nil {
				t.Fatalf("unmarshal body: %v", err)
			}
			return "gen-1", nil
		},
	}, "photos")

	p := mustPhoto(t, "photos/a b.jpg", "Dog", "Park")
	id, err := r.Save(context.Background(), &p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "gen-1" || gotIndex != "photos" || gotID != "" {
		t.Errorf("unexpected call id=%s index=%s docID=%s", id, gotIndex, gotID)
	}
	if gotBody["objectKey"] != "photos/a b.jpg" {
		t.Errorf("unexpected objectKey %v", gotBody["objectKey"])
	}
	if gotBody["bucket"] != "bucket-1" {
		t.Errorf("unexpected bucket %v", gotBody["bucket"])
	}
	if gotBody["createdTimeStamp"] != "2024-03-01T12:00:00Z" {
		t.Errorf("unexpected createdTimeStamp %v", gotBody["createdTimeStamp"])
	}
	labels, _ := gotBody["labels"].([]any)
	if len(labels) != 2 || labels[0] != "Dog" || labels[1] != "Park" {
		t.Errorf("unexpected labels %v", gotBody["labels"])
	}
}

func TestSave_EmptyLabelsSerialiseAsArray(t *testing.T) {
	var raw string
	r := New(&mockStore{
		indexDocumentFn: func(_ context.Context, _, _ string, body []byte) (string, error) {
			raw = string(body)
			return "x", nil
		},
	}, "photos")

	p := domphoto.Reconstruct("k.jpg", "b", time.Unix(0, 0).UTC(), nil)
	if _, err := r.Save(context.Background(), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"objectKey":"k.jpg","bucket":"b","createdTimeStamp":"1970-01-01T00:00:00Z","labels":[]}`
	if raw != want {
		t.Errorf("got %s, want %s", raw, want)
	}
}

func TestSave_StoreError(t *testing.T) {
	boom := errors.New("boom")
	r := New(&mockStore{
		indexDocumentFn: func(context.Context, string, string, []byte) (string, error) { return "", boom },
	}, "photos")
	p := mustPhoto(t, "a.jpg", "Dog")
	if _, err := r.Save(context.Background(), &p); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
}

func TestFindByLabel_Query(t *testing.T) {
	var got *db.MatchQuery
	r := New(&mockStore{
		searchMatchFn: func(_ context.Context, q *db.MatchQuery) (*db.SearchResult, error) {
			got = q
			return &db.SearchResult{}, nil
		},
	}, "photos")

	photos, err := r.FindByLabel(context.Background(), "Dog")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(photos) != 0 {
		t.Errorf("expected no photos, got %d", len(photos))
	}
	if got.IndexName != "photos" || got.Field != "labels" || got.Value != "Dog" || got.Size != 0 {
		t.Errorf("unexpected query %+v", got)
	}
}

func TestFindByLabel_SkipsMalformed(t *testing.T) {
	r := New(&mockStore{
		searchMatchFn: func(context.Context, *db.MatchQuery) (*db.SearchResult, error) {
			return &db.SearchResult{Total: 3, Hits: []db.SearchHit{
				{ID: "1", Source: []byte(`{"objectKey":"a.jpg","bucket":"b","labels":["Dog"]}`)},
				{ID: "2", Source: []byte(`not json`)},
				{ID: "3", Source: []byte(`{"bucket":"b"}`)},
			}}, nil
		},
	}, "photos")

	photos, err := r.FindByLabel(context.Background(), "Dog")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(photos) != 1 || photos[0].ObjectKey() != "a.jpg" {
		t.Fatalf("expected only a.jpg, got %+v", photos)
	}
}

func TestFindByLabel_IndexMissing(t *testing.T) {
	r := New(newMemStore(), "photos")
	_, err := r.FindByLabel(context.Background(), "Dog")
	if !errors.Is(err, domain.ErrIndexNotFound) {
		t.Fatalf("expected domain.ErrIndexNotFound, got %v", err)
	}
}

func TestFindByLabel_StoreError(t *testing.T) {
	boom := errors.New("boom")
	r := New(&mockStore{
		searchMatchFn: func(context.Context, *db.MatchQuery) (*db.SearchResult, error) { return nil, boom },
	}, "photos")
	if _, err := r.FindByLabel(context.Background(), "Dog"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
}

// A saved photo is found by each of its labels and by nothing else.
func TestRoundTrip_InMemory(t *testing.T) {
	ctx := context.Background()
	r := New(newMemStore(), "photos")
	created, err := r.EnsureIndex(ctx)
	if err != nil {
		t.Fatalf("ensure index: %v", err)
	}
	if !created {
		t.Error("expected a fresh index")
	}
	if again, err := r.EnsureIndex(ctx); err != nil || again {
		t.Fatalf("second ensure: created=%v err=%v", again, err)
	}

	p := mustPhoto(t, "photos/dog.jpg", "Dog", "Grass", "Sky")
	if _, err := r.Save(ctx, &p); err != nil {
		t.Fatalf("save: %v", err)
	}
	other := mustPhoto(t, "photos/cat.jpg", "Cat")
	if _, err := r.Save(ctx, &other); err != nil {
		t.Fatalf("save: %v", err)
	}

	for _, label := range []string{"Dog", "Grass", "Sky"} {
		found, err := r.FindByLabel(ctx, label)
		if err != nil {
			t.Fatalf("find %s: %v", label, err)
		}
		if len(found) != 1 || found[0].ObjectKey() != "photos/dog.jpg" {
			t.Fatalf("label %s: expected photos/dog.jpg, got %+v", label, found)
		}
		if found[0].CreatedTimeStamp() != p.CreatedTimeStamp() {
			t.Errorf("createdTimeStamp mismatch: %v vs %v", found[0].CreatedTimeStamp(), p.CreatedTimeStamp())
		}
	}

	none, err := r.FindByLabel(ctx, "Car")
	if err != nil {
		t.Fatalf("find Car: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no matches for Car, got %d", len(none))
	}
}
