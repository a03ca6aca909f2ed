package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/kailas-cloud/photoindex/internal/domain"
	"github.com/kailas-cloud/photoindex/internal/domain/search/result"
)

func TestFromResult_EmptyListsSerialiseAsArrays(t *testing.T) {
	r := result.Empty("nothing", nil)
	b, err := json.Marshal(FromResult(&r))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"imagePaths":[],"userQuery":"nothing","labels":[]}`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorCode
	}{
		{domain.ErrMissingQuery, CodeMissingQuery},
		{fmt.Errorf("%w (max 1024 chars)", domain.ErrQueryTooLong), CodeBadRequest},
		{fmt.Errorf("head: %w", domain.ErrObjectNotFound), CodeObjectNotFound},
		{domain.NewObjectError("b", "k", domain.ErrMissingCustomLabels), CodeMissingLabels},
		{fmt.Errorf("resolve: %w: %w", domain.ErrIntentProvider, errors.New("throttled")), CodeUpstream},
		{fmt.Errorf("search label %q: %w: photos", "dog", domain.ErrIndexNotFound), CodeIndexNotFound},
		{errors.New("kaput"), CodeInternal},
	}
	for _, tc := range tests {
		got := Classify(tc.err)
		if got.Code != tc.want {
			t.Errorf("Classify(%v) = %s, want %s", tc.err, got.Code, tc.want)
		}
	}
	if msg := Classify(errors.New("secret dsn")).Message; msg != "internal error" {
		t.Errorf("internal details leaked: %q", msg)
	}
}
