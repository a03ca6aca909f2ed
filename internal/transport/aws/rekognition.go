package aws

import (
	"context"
	"fmt"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/kailas-cloud/photoindex/internal/domain"
	"github.com/kailas-cloud/photoindex/internal/metrics"
)

type rekognitionAPI interface {
	DetectLabels(ctx context.Context, in *rekognition.DetectLabelsInput,
		optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

// Rekognition detects image labels on objects already in S3.
type Rekognition struct {
	api rekognitionAPI
}

// NewRekognition creates a label detector from an AWS config.
func NewRekognition(cfg sdkaws.Config) *Rekognition {
	return &Rekognition{api: rekognition.NewFromConfig(cfg)}
}

// DetectLabels returns the names of every label detected in the image.
// No confidence filtering is applied beyond the service default.
func (r *Rekognition) DetectLabels(ctx context.Context, bucket, key string) ([]string, error) {
	start := time.Now()
	out, err := r.api.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image: &types.Image{
			S3Object: &types.S3Object{
				Bucket: sdkaws.String(bucket),
				Name:   sdkaws.String(key),
			},
		},
	})
	metrics.ObserveUpstream("rekognition", "DetectLabels", start, err)
	if err != nil {
		return nil, fmt.Errorf("detect labels: %w: %w", domain.ErrVisionProvider, err)
	}

	labels := make([]string, 0, len(out.Labels))
	for _, l := range out.Labels {
		if name := sdkaws.ToString(l.Name); name != "" {
			labels = append(labels, name)
		}
	}
	return labels, nil
}
