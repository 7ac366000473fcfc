package textnorm

import (
	"reflect"
	"testing"
)

func TestExtractModelReferences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "comparison query yields both tokens",
			input: "IVISKIN G-3 vs IVISKIN G-4",
			want:  []string{"iviskin", "g3", "g4"},
		},
		{
			name:  "single model token",
			input: "Is the G3 any good?",
			want:  []string{"g3"},
		},
		{
			name:  "brand word survives stopword filter",
			input: "what about iviskin",
			want:  []string{"iviskin"},
		},
		{
			name:  "stopwords only",
			input: "which is the best",
			want:  []string{},
		},
		{
			name:  "norwegian filler dropped",
			input: "Er IVISKIN G3 bra?",
			want:  []string{"iviskin", "g3"},
		},
		{
			name:  "purely numeric tokens dropped",
			input: "top picks 2024",
			want:  []string{"top", "picks"},
		},
		{
			name:  "deduplicated order preserving",
			input: "g3 g3 x1 g3 x1",
			want:  []string{"g3", "x1"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractModelReferences(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractModelReferences(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractModelReferencesCollapsesSeparators(t *testing.T) {
	got := ExtractModelReferences("G 3 vs G.4")
	hasG3, hasG4 := false, false
	for _, ref := range got {
		if ref == "g3" {
			hasG3 = true
		}
		if ref == "g4" {
			hasG4 = true
		}
	}
	if !hasG3 || !hasG4 {
		t.Errorf("expected both g3 and g4 in %v", got)
	}
}
