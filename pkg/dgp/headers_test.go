package dgp

import "testing"

func TestCheckHeaders(t *testing.T) {
	tests := []struct {
		name          string
		required      []string
		output        string
		wantCompliant bool
		wantCoverage  int
		wantMissing   []string
	}{
		{
			name:          "all headers present",
			required:      []string{"Plan", "Gates", "Action", "Logs"},
			output:        "Plan: do the thing\nGates: none\nAction: done\nLogs: ok",
			wantCompliant: true,
			wantCoverage:  100,
			wantMissing:   nil,
		},
		{
			name:          "one missing, non-strict still compliant",
			required:      []string{"Plan", "Gates", "Action", "Logs"},
			output:        "Plan: x\nGates: y\nAction: z",
			wantCompliant: true,
			wantCoverage:  75,
			wantMissing:   []string{"Logs"},
		},
		{
			name:          "none present, non-strict is not compliant",
			required:      []string{"Plan", "Gates"},
			output:        "nothing relevant here",
			wantCompliant: false,
			wantCoverage:  0,
			wantMissing:   []string{"Plan", "Gates"},
		},
		{
			name:          "case insensitive substring without colon",
			required:      []string{"plan"},
			output:        "my PLAN for today",
			wantCompliant: true,
			wantCoverage:  100,
		},
		{
			// Coverage is defined as 100 when |H| = 0 (§4.1), but the
			// non-strict compliant formula is literally "found is
			// non-empty" (§4.1) — with nothing required, found stays
			// empty, so compliant is false despite full coverage. This
			// is the frozen formula taken literally, not a special case.
			name:          "empty required list yields full coverage but not compliant",
			required:      []string{},
			output:        "anything",
			wantCompliant: false,
			wantCoverage:  100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckHeaders(tt.required, tt.output, HeaderOptions{Strict: false, CaseSensitive: false})
			if got.Compliant != tt.wantCompliant {
				t.Errorf("Compliant = %v, want %v", got.Compliant, tt.wantCompliant)
			}
			if got.Coverage != tt.wantCoverage {
				t.Errorf("Coverage = %d, want %d", got.Coverage, tt.wantCoverage)
			}
			if len(tt.wantMissing) != len(got.Missing) {
				t.Errorf("Missing = %v, want %v", got.Missing, tt.wantMissing)
			}
		})
	}
}

func TestCheckHeadersStrict(t *testing.T) {
	got := CheckHeaders([]string{"Plan", "Gates"}, "Plan: x", HeaderOptions{Strict: true})
	if got.Compliant {
		t.Errorf("strict mode with a missing header should not be compliant")
	}
}

func TestHeadingLabelMatches(t *testing.T) {
	if !headingLabelMatches("Plan", "Plan  : build a thing", false) {
		t.Errorf("expected heading label match with extra whitespace before colon")
	}
	if headingLabelMatches("Plan", "Replanning the approach", false) {
		t.Errorf("did not expect a label match without a trailing colon")
	}
}
