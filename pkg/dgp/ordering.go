package dgp

import "sort"

// This file is the kernel's sorting stage (§9 design note: "Ordering on the
// way out") for violations, recommended actions, and escalation triggers:
// each of those is assembled in whatever order is natural, then passed
// through one of these functions before it reaches the Report. Retry signals
// are ordered by dedupeSignalsByFirstOccurrence in retry.go, and drift
// signals keep the lexicon order DetectDrift emits.

var severityRank = map[Severity]int{
	SeverityCritical: 3,
	SeverityHigh:      2,
	SeverityMedium:    1,
	SeverityLow:       0,
}

var priorityRank = map[Priority]int{
	PriorityUrgent: 3,
	PriorityHigh:   2,
	PriorityMedium: 1,
	PriorityLow:    0,
}

// sortViolations orders violations by severity descending, then code
// ascending (§4.5 "Ordering (NORMATIVE)").
func sortViolations(vs []Violation) []Violation {
	sort.SliceStable(vs, func(i, j int) bool {
		ri, rj := severityRank[vs[i].Severity], severityRank[vs[j].Severity]
		if ri != rj {
			return ri > rj
		}
		return vs[i].Code < vs[j].Code
	})
	return vs
}

// sortActions orders recommended actions by priority descending, then type
// ascending, then reason ascending.
func sortActions(as []RecommendedAction) []RecommendedAction {
	sort.SliceStable(as, func(i, j int) bool {
		ri, rj := priorityRank[as[i].Priority], priorityRank[as[j].Priority]
		if ri != rj {
			return ri > rj
		}
		if as[i].Type != as[j].Type {
			return as[i].Type < as[j].Type
		}
		return as[i].Reason < as[j].Reason
	})
	return as
}

// sortTriggers orders escalation triggers lexicographically ascending after
// deduplication.
func sortTriggers(triggers []string) []string {
	return sortUniqueStrings(triggers)
}

// sortUniqueStrings deduplicates and sorts a string slice lexicographically.
func sortUniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
