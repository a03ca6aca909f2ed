package intent

import "testing"

func TestLabels(t *testing.T) {
	tests := []struct {
		name  string
		slots map[string]string
		want  []string
	}{
		{"both", map[string]string{"slot1": "dog", "slot2": "tree"}, []string{"dog", "tree"}},
		{"empty slot2", map[string]string{"slot1": "dog", "slot2": ""}, []string{"dog"}},
		{"only slot2", map[string]string{"slot2": "tree"}, []string{"tree"}},
		{"whitespace", map[string]string{"slot1": "  ", "slot2": "cat"}, []string{"cat"}},
		{"duplicates kept", map[string]string{"slot1": "dog", "slot2": "dog"}, []string{"dog", "dog"}},
		{"unknown slots ignored", map[string]string{"slot3": "bird"}, []string{}},
		{"no slots", nil, []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := NewInterpretation(nil, tc.slots)
			got := in.Labels()
			if got == nil {
				t.Fatal("expected non-nil labels")
			}
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("labels[%d] = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}
