package dto

import (
	"errors"

	"github.com/kailas-cloud/photoindex/internal/domain"
	"github.com/kailas-cloud/photoindex/internal/domain/search/result"
	"github.com/kailas-cloud/photoindex/internal/transport/generated"
)

// SearchResponse is the JSON body of a search answer.
type SearchResponse = generated.SearchResponse

// FromResult converts a search result; lists are never null.
func FromResult(r *result.Result) SearchResponse {
	paths := r.ImagePaths()
	if paths == nil {
		paths = []string{}
	}
	labels := r.Labels()
	if labels == nil {
		labels = []string{}
	}
	return SearchResponse{ImagePaths: paths, UserQuery: r.UserQuery(), Labels: labels}
}

// IngestResponse is the JSON body of a local ingestion run.
type IngestResponse = generated.IngestResponse

// ErrorCode is a machine-readable error class.
type ErrorCode = generated.ErrorResponseCode

// Error codes.
const (
	CodeBadRequest     = generated.ErrorResponseCodeBadRequest
	CodeUnauthorized   = generated.ErrorResponseCodeUnauthorized
	CodeMissingQuery   = generated.ErrorResponseCodeMissingQuery
	CodeInvalidKey     = generated.ErrorResponseCodeInvalidObjectKey
	CodeObjectNotFound = generated.ErrorResponseCodeObjectNotFound
	CodeMissingLabels  = generated.ErrorResponseCodeMissingCustomLabels
	CodeUpstream       = generated.ErrorResponseCodeUpstreamError
	CodeIndexNotFound  = generated.ErrorResponseCodeIndexNotFound
	CodeInternal       = generated.ErrorResponseCodeInternalError
)

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse = generated.ErrorResponse

// sentinels in match order; the first hit decides the code.
var sentinels = []struct {
	err  error
	code ErrorCode
}{
	{domain.ErrMissingQuery, CodeMissingQuery},
	{domain.ErrQueryTooLong, CodeBadRequest},
	{domain.ErrInvalidObjectKey, CodeInvalidKey},
	{domain.ErrEmptyEvent, CodeBadRequest},
	{domain.ErrObjectNotFound, CodeObjectNotFound},
	{domain.ErrMissingCustomLabels, CodeMissingLabels},
	{domain.ErrVisionProvider, CodeUpstream},
	{domain.ErrIntentProvider, CodeUpstream},
	{domain.ErrStorageProvider, CodeUpstream},
	{domain.ErrIndexNotFound, CodeIndexNotFound},
}

// Classify maps err to an error body without exposing internals.
func Classify(err error) ErrorResponse {
	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return ErrorResponse{Code: s.code, Message: s.err.Error()}
		}
	}
	return ErrorResponse{Code: CodeInternal, Message: "internal error"}
}
