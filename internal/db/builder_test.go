package db

import (
	"strings"
	"testing"
)

func TestIndexBuilder_Photos(t *testing.T) {
	idx := NewIndex("photos").
		Keyword("objectKey").
		Keyword("bucket").
		Date("createdTimeStamp").
		TextArray("labels").
		MustBuild()

	if idx.Name != "photos" {
		t.Errorf("name = %q, want photos", idx.Name)
	}
	if len(idx.Fields) != 4 {
		t.Fatalf("fields count = %d, want 4", len(idx.Fields))
	}
	labels := idx.Fields[3]
	if labels.Name != "labels" || labels.Type != IndexFieldText || !labels.Multi {
		t.Errorf("labels field = %+v", labels)
	}
}

func TestIndexBuilder_Errors(t *testing.T) {
	tests := []struct {
		name string
		b    *IndexBuilder
		want string
	}{
		{"empty name", NewIndex("").Text("a"), "index name is required"},
		{"bad name", NewIndex("bad name").Text("a"), "invalid characters"},
		{"no fields", NewIndex("photos"), "at least one field"},
		{"duplicate", NewIndex("photos").Text("a").Keyword("a"), "duplicate field name"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.b.Build()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not contain %q", err, tc.want)
			}
		})
	}
}

func TestIndexBuilder_MustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewIndex("").MustBuild()
}

func TestIndexDefinition_String(t *testing.T) {
	idx := NewIndex("photos").Keyword("objectKey").TextArray("labels").MustBuild()
	want := "INDEX photos SCHEMA objectKey KEYWORD labels TEXT MULTI"
	if got := idx.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestIsValidIdentifier(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"photos", true},
		{"photoindex:photos:idx", true},
		{"photos-2024.v1", true},
		{"", false},
		{"has space", false},
		{"slash/name", false},
	}
	for _, tc := range tests {
		if got := IsValidIdentifier(tc.s); got != tc.want {
			t.Errorf("IsValidIdentifier(%q) = %v, want %v", tc.s, got, tc.want)
		}
	}
}
