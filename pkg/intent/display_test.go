package intent

import "testing"

func TestClassifyDisplayIntent(t *testing.T) {
	testCases := []struct {
		name     string
		query    string
		want     DisplayIntent
		wantShow bool
	}{
		{
			name:     "transactional enables display",
			query:    "Where can I buy the IVISKIN G3?",
			want:     DisplayTransactional,
			wantShow: true,
		},
		{
			name:     "evaluative enables display",
			query:    "Is the G3 worth the money?",
			want:     DisplayEvaluative,
			wantShow: true,
		},
		{
			name:     "comparative enables display",
			query:    "G3 vs G4",
			want:     DisplayComparative,
			wantShow: true,
		},
		{
			name:     "technical suppresses display",
			query:    "My G3 stopped working, help me fix it",
			want:     DisplayTechnical,
			wantShow: false,
		},
		{
			name:     "norwegian support query suppresses display",
			query:    "G3 fungerer ikke lenger",
			want:     DisplayTechnical,
			wantShow: false,
		},
		{
			name:     "informational is the permissive default",
			query:    "Tell me something interesting",
			want:     DisplayInformational,
			wantShow: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyDisplayIntent(tc.query)
			if got.Intent != tc.want {
				t.Errorf("ClassifyDisplayIntent(%q).Intent = %q, want %q", tc.query, got.Intent, tc.want)
			}
			if got.ShouldShowProducts != tc.wantShow {
				t.Errorf("ClassifyDisplayIntent(%q).ShouldShowProducts = %v, want %v", tc.query, got.ShouldShowProducts, tc.wantShow)
			}
		})
	}
}

// A support query that also contains commercial words must still be
// classified technical: rule order is part of the contract.
func TestTechnicalBeatsTransactional(t *testing.T) {
	got := ClassifyDisplayIntent("I want a refund, the device I bought is broken")
	if got.Intent != DisplayTechnical {
		t.Fatalf("Intent = %q, want technical", got.Intent)
	}
	if got.ShouldShowProducts {
		t.Error("ShouldShowProducts = true, want false for a support query")
	}
}
