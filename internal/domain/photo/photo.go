package photo

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kailas-cloud/photoindex/internal/domain"
)

// TimestampLayout is the ISO-8601 layout of createdTimeStamp.
const TimestampLayout = time.RFC3339

// Photo is the indexed photo aggregate (immutable value object).
type Photo struct {
	objectKey string
	bucket    string
	createdAt time.Time
	labels    []string
}

// New validates and creates a Photo. Labels from all sources are merged
// into one deduplicated set.
func New(objectKey, bucket string, createdAt time.Time, labelSets ...[]string) (Photo, error) {
	if objectKey == "" {
		return Photo{}, fmt.Errorf("object key is required")
	}
	if bucket == "" {
		return Photo{}, fmt.Errorf("bucket is required")
	}
	return Photo{
		objectKey: objectKey,
		bucket:    bucket,
		createdAt: createdAt,
		labels:    MergeLabels(labelSets...),
	}, nil
}

// Reconstruct creates a Photo without validation (index hydration).
func Reconstruct(objectKey, bucket string, createdAt time.Time, labels []string) Photo {
	return Photo{objectKey: objectKey, bucket: bucket, createdAt: createdAt, labels: labels}
}

// ObjectKey returns the decoded storage key.
func (p *Photo) ObjectKey() string { return p.objectKey }

// Bucket returns the storage container name.
func (p *Photo) Bucket() string { return p.bucket }

// CreatedTimeStamp returns the object's last-modified time at ingestion,
// formatted as ISO-8601.
func (p *Photo) CreatedTimeStamp() string { return p.createdAt.Format(TimestampLayout) }

// Labels returns the merged label set.
func (p *Photo) Labels() []string { return p.labels }

// MergeLabels returns the union of all sets with duplicates removed.
// First-seen order is kept; empty strings are dropped.
func MergeLabels(sets ...[]string) []string {
	seen := make(map[string]struct{})
	merged := make([]string, 0)
	for _, set := range sets {
		for _, l := range set {
			if l == "" {
				continue
			}
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			merged = append(merged, l)
		}
	}
	return merged
}

// ParseCustomLabels splits the comma-separated customlabels metadata value.
func ParseCustomLabels(raw string) []string {
	parts := strings.Split(raw, ",")
	labels := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			labels = append(labels, p)
		}
	}
	return labels
}

// DecodeObjectKey reverses the percent/plus encoding storage notifications apply to keys.
func DecodeObjectKey(raw string) (string, error) {
	key, err := url.QueryUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("decode %q: %w: %w", raw, domain.ErrInvalidObjectKey, err)
	}
	if key == "" {
		return "", fmt.Errorf("empty key: %w", domain.ErrInvalidObjectKey)
	}
	return key, nil
}
