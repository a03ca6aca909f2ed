package photo

import (
	"time"

	domphoto "github.com/kailas-cloud/photoindex/internal/domain/photo"
)

// photoDoc is the stored JSON document of a photo.
type photoDoc struct {
	ObjectKey        string   `json:"objectKey"`
	Bucket           string   `json:"bucket"`
	CreatedTimeStamp string   `json:"createdTimeStamp"`
	Labels           []string `json:"labels"`
}

func toDoc(p *domphoto.Photo) photoDoc {
	labels := p.Labels()
	if labels == nil {
		labels = []string{}
	}
	return photoDoc{
		ObjectKey:        p.ObjectKey(),
		Bucket:           p.Bucket(),
		CreatedTimeStamp: p.CreatedTimeStamp(),
		Labels:           labels,
	}
}

// toDomain hydrates a photo; an unparsable timestamp is left zero.
func (d *photoDoc) toDomain() domphoto.Photo {
	createdAt, _ := time.Parse(domphoto.TimestampLayout, d.CreatedTimeStamp)
	return domphoto.Reconstruct(d.ObjectKey, d.Bucket, createdAt, d.Labels)
}
