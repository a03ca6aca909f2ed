package object

import (
	"strings"
	"time"
)

// CustomLabelsKey is the user metadata field holding comma-separated labels.
const CustomLabelsKey = "customlabels"

// Metadata describes a stored object without its content.
type Metadata struct {
	lastModified time.Time
	contentType  string
	userMetadata map[string]string
}

// NewMetadata creates object metadata.
func NewMetadata(lastModified time.Time, contentType string, userMetadata map[string]string) Metadata {
	return Metadata{lastModified: lastModified, contentType: contentType, userMetadata: userMetadata}
}

// LastModified returns the object's last-modified time.
func (m *Metadata) LastModified() time.Time { return m.lastModified }

// ContentType returns the object's MIME type.
func (m *Metadata) ContentType() string { return m.contentType }

// UserMetadata returns the custom metadata map.
func (m *Metadata) UserMetadata() map[string]string { return m.userMetadata }

// Lookup finds a user metadata value by case-insensitive key.
// S3 lower-cases metadata keys while S3-compatible servers canonicalise them.
func (m *Metadata) Lookup(key string) (string, bool) {
	if v, ok := m.userMetadata[key]; ok {
		return v, true
	}
	for k, v := range m.userMetadata {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

// CustomLabels returns the raw customlabels value and whether it was present.
func (m *Metadata) CustomLabels() (string, bool) {
	return m.Lookup(CustomLabelsKey)
}
