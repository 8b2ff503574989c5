package dgp

import "testing"

func TestComputeDeltas(t *testing.T) {
	lexicon := []string{"delete", "drop table"}

	t.Run("nil baseline yields nil deltas", func(t *testing.T) {
		governedDrift := DetectDrift(lexicon, "Plan: read only", DriftOptions{})
		governedRetry := DetectRetryPressure("Plan: read only")
		if got := computeDeltas(nil, lexicon, governedDrift, governedRetry); got != nil {
			t.Errorf("expected nil deltas, got %+v", got)
		}
	})

	t.Run("improvement over baseline", func(t *testing.T) {
		baseline := "I will delete this and also delete that"
		governed := "Plan: read only, no changes"
		baselineDrift := DetectDrift(lexicon, baseline, DriftOptions{})
		governedDrift := DetectDrift(lexicon, governed, DriftOptions{})
		governedRetry := DetectRetryPressure(governed)

		got := computeDeltas(&baseline, lexicon, governedDrift, governedRetry)
		if got == nil {
			t.Fatal("expected non-nil deltas")
		}
		if got.DriftReduction != 100 {
			t.Errorf("DriftReduction = %d, want 100", got.DriftReduction)
		}
	})

	t.Run("regression from a clean baseline is a full negative swing", func(t *testing.T) {
		baseline := "Plan: read only"
		governed := "I will delete this record"
		baselineDrift := DetectDrift(lexicon, baseline, DriftOptions{})
		_ = baselineDrift
		governedDrift := DetectDrift(lexicon, governed, DriftOptions{})
		governedRetry := DetectRetryPressure(governed)

		got := computeDeltas(&baseline, lexicon, governedDrift, governedRetry)
		if got.DriftReduction != -100 {
			t.Errorf("DriftReduction = %d, want -100", got.DriftReduction)
		}
	})
}
