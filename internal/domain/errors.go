package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrObjectNotFound signals that the storage object is gone.
	ErrObjectNotFound = errors.New("object not found")
	// ErrMissingCustomLabels signals an object without the customlabels metadata field.
	ErrMissingCustomLabels = errors.New("missing customlabels metadata")
	// ErrInvalidObjectKey signals an object key that cannot be percent-decoded.
	ErrInvalidObjectKey = errors.New("invalid object key")
	// ErrMissingQuery signals a search request without the q parameter.
	ErrMissingQuery = errors.New("missing query parameter")
	// ErrQueryTooLong signals query text beyond what the intent resolver accepts.
	ErrQueryTooLong = errors.New("query too long")
	// ErrEmptyEvent signals a storage notification without records.
	ErrEmptyEvent = errors.New("event has no records")
	// ErrIndexNotFound signals that the photo index has not been created.
	ErrIndexNotFound = errors.New("photo index not found")

	// ErrVisionProvider signals a label detection failure.
	ErrVisionProvider = errors.New("vision provider error")
	// ErrIntentProvider signals an intent resolution failure.
	ErrIntentProvider = errors.New("intent provider error")
	// ErrStorageProvider signals an object storage failure other than not-found.
	ErrStorageProvider = errors.New("storage provider error")
)

// ObjectError attaches the object location to an ingestion failure.
type ObjectError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *ObjectError) Error() string {
	return fmt.Sprintf("object %s/%s: %s", e.Bucket, e.Key, e.Err.Error())
}

func (e *ObjectError) Unwrap() error { return e.Err }

// NewObjectError wraps err with the bucket and key it occurred on.
func NewObjectError(bucket, key string, err error) error {
	return &ObjectError{Bucket: bucket, Key: key, Err: err}
}
