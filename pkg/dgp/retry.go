package dgp

import "strings"

// RetryResult is the raw RetryPressure contract result (§4.3).
type RetryResult struct {
	UncertaintyCount int
	TODOCount        int
	Signals          []string // matched literal substrings, deduped by surface form, ascending first-occurrence order
	Normalized       float64
}

type retrySignal struct {
	text     string
	position int
}

// DetectRetryPressure measures uncertainty and placeholder density in
// output, per the RetryPressure contract (§4.3).
func DetectRetryPressure(output string) RetryResult {
	text := normalizeText(output)
	lower := strings.ToLower(text)

	var signals []retrySignal
	uncertaintyCount := 0

	for _, phrase := range uncertaintyPhrases {
		idx := strings.Index(lower, phrase)
		if idx < 0 {
			continue
		}
		uncertaintyCount++
		signals = append(signals, retrySignal{text: text[idx : idx+len(phrase)], position: idx})
	}

	todoCount := 0
	for _, pattern := range placeholderPatterns {
		matches := pattern.FindAllStringIndex(text, -1)
		for _, m := range matches {
			todoCount++
			signals = append(signals, retrySignal{text: text[m[0]:m[1]], position: m[0]})
		}
	}

	normalized := clampUnit(roundTo2(0.1*float64(uncertaintyCount) + 0.2*float64(todoCount)))

	return RetryResult{
		UncertaintyCount: uncertaintyCount,
		TODOCount:        todoCount,
		Signals:          dedupeSignalsByFirstOccurrence(signals),
		Normalized:       normalized,
	}
}

// dedupeSignalsByFirstOccurrence deduplicates by exact surface form, keeping
// each signal's earliest position, then orders ascending by that position
// (§4.5 "Retry signals: ascending first-occurrence position").
func dedupeSignalsByFirstOccurrence(signals []retrySignal) []string {
	best := make(map[string]int, len(signals))
	for _, s := range signals {
		if pos, ok := best[s.text]; !ok || s.position < pos {
			best[s.text] = s.position
		}
	}

	type entry struct {
		text     string
		position int
	}
	entries := make([]entry, 0, len(best))
	for text, pos := range best {
		entries = append(entries, entry{text: text, position: pos})
	}
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j-1].position > entries[j].position; j-- {
			entries[j-1], entries[j] = entries[j], entries[j-1]
		}
	}

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.text
	}
	return out
}

// retryScore implements the frozen §4.3 formula: max(0, 100 - round(normalized*100)).
func retryScore(normalized float64) int {
	return clampScore(100 - roundHalfUp(normalized*100))
}

func toRetryAnalysis(r RetryResult) RetryAnalysis {
	signals := r.Signals
	if signals == nil {
		signals = []string{}
	}
	return RetryAnalysis{
		Score:      retryScore(r.Normalized),
		Signals:    signals,
		Normalized: r.Normalized,
	}
}
