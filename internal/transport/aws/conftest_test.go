package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/lexruntimev2"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type mockRekognition struct {
	detectLabelsFn func(ctx context.Context, in *rekognition.DetectLabelsInput) (*rekognition.DetectLabelsOutput, error)
}

func (m *mockRekognition) DetectLabels(
	ctx context.Context, in *rekognition.DetectLabelsInput, _ ...func(*rekognition.Options),
) (*rekognition.DetectLabelsOutput, error) {
	if m.detectLabelsFn != nil {
		return m.detectLabelsFn(ctx, in)
	}
	return &rekognition.DetectLabelsOutput{}, nil
}

type mockS3 struct {
	headObjectFn func(ctx context.Context, in *s3.HeadObjectInput) (*s3.HeadObjectOutput, error)
	getObjectFn  func(ctx context.Context, in *s3.GetObjectInput) (*s3.GetObjectOutput, error)
}

func (m *mockS3) HeadObject(
	ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options),
) (*s3.HeadObjectOutput, error) {
	if m.headObjectFn != nil {
		return m.headObjectFn(ctx, in)
	}
	return &s3.HeadObjectOutput{}, nil
}

func (m *mockS3) GetObject(
	ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options),
) (*s3.GetObjectOutput, error) {
	if m.getObjectFn != nil {
		return m.getObjectFn(ctx, in)
	}
	return &s3.GetObjectOutput{}, nil
}

type mockLex struct {
	recognizeTextFn func(ctx context.Context, in *lexruntimev2.RecognizeTextInput) (*lexruntimev2.RecognizeTextOutput, error)
}

func (m *mockLex) RecognizeText(
	ctx context.Context, in *lexruntimev2.RecognizeTextInput, _ ...func(*lexruntimev2.Options),
) (*lexruntimev2.RecognizeTextOutput, error) {
	if m.recognizeTextFn != nil {
		return m.recognizeTextFn(ctx, in)
	}
	return &lexruntimev2.RecognizeTextOutput{}, nil
}
