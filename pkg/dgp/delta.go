package dgp

// computeDeltas implements DeltaComputer (§4.6): rerun drift and retry
// detection over the baseline using the same active lexicon as the
// governed output, and emit percentage reductions. Returns nil when no
// baseline is supplied.
func computeDeltas(baseline *string, lexicon []string, governedDrift DriftResult, governedRetry RetryResult) *Deltas {
	if baseline == nil {
		return nil
	}

	baselineDrift := DetectDrift(lexicon, *baseline, DriftOptions{CaseSensitive: false})
	baselineRetry := DetectRetryPressure(*baseline)

	return &Deltas{
		DriftReduction: computeCountReduction(baselineDrift.Count, governedDrift.Count),
		RetryReduction: computeNormalizedReduction(baselineRetry.Normalized, governedRetry.Normalized),
	}
}
