package dgp

import "strings"

// EscalationResult is the raw EscalationDetector contract result (§4.4).
type EscalationResult struct {
	Detected   bool
	Triggers   []string // deduplicated, sorted lexicographically
	Required   *bool
	Ok         *bool
	Confidence float64
}

// DetectEscalation classifies whether output escalates, and whether that
// matches the task's derived escalation requirement, per the
// EscalationDetector contract (§4.4).
func DetectEscalation(capsuleTriggers []string, task Task, capsule Capsule, output string) EscalationResult {
	text := strings.ToLower(normalizeText(output))

	all := make([]string, 0, len(defaultEscalationTriggers)+len(capsuleTriggers))
	all = append(all, defaultEscalationTriggers...)
	all = append(all, capsuleTriggers...)

	var matched []string
	for _, trigger := range all {
		needle := strings.ToLower(normalizeText(trigger))
		if needle == "" {
			continue
		}
		if strings.Contains(text, needle) {
			matched = append(matched, trigger)
		}
	}

	detected := len(matched) > 0
	required := deriveRequired(task, capsule)
	ok := deriveOk(required, detected)
	confidence := escalationConfidence(ok)

	return EscalationResult{
		Detected:   detected,
		Triggers:   sortTriggers(matched),
		Required:   required,
		Ok:         ok,
		Confidence: confidence,
	}
}

// deriveRequired implements §4.4's "required is derived from the task" rule.
func deriveRequired(task Task, capsule Capsule) *bool {
	if task.RequiresEscalation != nil {
		v := *task.RequiresEscalation
		return &v
	}
	switch task.Risk {
	case RiskHigh:
		v := capsule.Governance.FOP.RequiredForHighRisk
		return &v
	case RiskLow:
		v := false
		return &v
	default: // MEDIUM or unset
		return nil
	}
}

func deriveOk(required *bool, detected bool) *bool {
	if required == nil {
		return nil
	}
	ok := *required == detected
	return &ok
}

// escalationConfidence implements the frozen, state-based §4.4 confidence
// rule. It must never depend on trigger-match ratios: a capsule adding
// triggers that don't appear in the output must not change this value.
func escalationConfidence(ok *bool) float64 {
	if ok == nil {
		return 0.5
	}
	if *ok {
		return 1.0
	}
	return 0.0
}

func toEscalationAnalysis(r EscalationResult) EscalationAnalysis {
	triggers := r.Triggers
	if triggers == nil {
		triggers = []string{}
	}
	return EscalationAnalysis{
		Required:   r.Required,
		Detected:   r.Detected,
		Triggers:   triggers,
		Confidence: r.Confidence,
		Ok:         r.Ok,
	}
}
