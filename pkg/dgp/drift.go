package dgp

import "strings"

// DriftOptions configures DriftDetector.
type DriftOptions struct {
	CaseSensitive bool
}

// DriftResult is the raw DriftDetector contract result (§4.2).
type DriftResult struct {
	Count     int      // total occurrences with multiplicity
	Matches   []string // deduplicated, first-seen order of the lexicon
	Positions []int    // start indices in document order, across all keywords
}

// DetectDrift counts occurrences of forbidden lexicon entries in output, per
// the DriftDetector contract (§4.2). Matching is substring, not
// word-boundary; overlapping occurrences of the same keyword are counted by
// successive search advancing one past the previous start.
func DetectDrift(lexicon []string, output string, opts DriftOptions) DriftResult {
	haystack := normalizeText(output)
	if !opts.CaseSensitive {
		haystack = strings.ToLower(haystack)
	}

	var result DriftResult
	type occurrence struct {
		keyword string
		index   int
	}
	var occurrences []occurrence

	for _, keyword := range lexicon {
		needle := normalizeText(keyword)
		if !opts.CaseSensitive {
			needle = strings.ToLower(needle)
		}
		if needle == "" {
			continue
		}

		matched := false
		searchFrom := 0
		for searchFrom <= len(haystack) {
			idx := strings.Index(haystack[searchFrom:], needle)
			if idx < 0 {
				break
			}
			absolute := searchFrom + idx
			occurrences = append(occurrences, occurrence{keyword: keyword, index: absolute})
			matched = true
			result.Count++
			searchFrom = absolute + 1
		}
		if matched {
			result.Matches = append(result.Matches, keyword)
		}
	}

	// positions are emitted in document order across all matched keywords.
	positions := make([]int, len(occurrences))
	for i, o := range occurrences {
		positions[i] = o.index
	}
	for i := 1; i < len(positions); i++ {
		for j := i; j > 0 && positions[j-1] > positions[j]; j-- {
			positions[j-1], positions[j] = positions[j], positions[j-1]
		}
	}
	result.Positions = positions

	return result
}

// driftScore implements the frozen §4.2 formula: max(0, 100 - 15*count).
func driftScore(count int) int {
	return clampScore(100 - 15*count)
}

// computeCountReduction implements the frozen §4.2 reduction rule, shared in
// shape with RetryPressure's normalized-value reduction (§4.3).
func computeCountReduction(baseline, governed int) int {
	if baseline == 0 && governed == 0 {
		return 0
	}
	if baseline == 0 && governed > 0 {
		return -100
	}
	return roundHalfUp(float64(baseline-governed) / float64(baseline) * 100)
}

// computeNormalizedReduction is computeCountReduction's float analog, used
// by RetryPressure deltas (§4.3).
func computeNormalizedReduction(baseline, governed float64) int {
	if baseline == 0 && governed == 0 {
		return 0
	}
	if baseline == 0 && governed > 0 {
		return -100
	}
	return roundHalfUp((baseline - governed) / baseline * 100)
}

func toDriftAnalysis(r DriftResult) DriftAnalysis {
	signals := r.Matches
	if signals == nil {
		signals = []string{}
	}
	return DriftAnalysis{
		Score:     driftScore(r.Count),
		Signals:   signals,
		Incidents: r.Count,
	}
}
