package dgp

import "fmt"

// componentScores holds the four 0-100 component scores fed into the raw
// score formula (§4.5).
type componentScores struct {
	headers    int
	drift      int
	retry      int
	escalation int
}

func computeComponentScores(headers HeadersAnalysis, drift DriftAnalysis, retry RetryAnalysis, esc EscalationAnalysis) componentScores {
	headerScore := 100
	if !headers.Compliant {
		// floor(coverageRatio * 100); a small epsilon absorbs float64
		// representation error from the coverage/100 division upstream.
		headerScore = int(headers.Coverage*100 + 1e-9)
	}

	escalationScore := 50
	if esc.Ok != nil {
		if *esc.Ok {
			escalationScore = 100
		} else {
			escalationScore = 0
		}
	}

	return componentScores{
		headers:    headerScore,
		drift:      drift.Score,
		retry:      retry.Score,
		escalation: escalationScore,
	}
}

func computeRawScore(s componentScores, w Weights) int {
	weighted := float64(s.headers)*w.Headers +
		float64(s.drift)*w.Drift +
		float64(s.retry)*w.Retry +
		float64(s.escalation)*w.Escalation
	return roundHalfUp(weighted)
}

// collectViolations implements the §4.5 violation taxonomy: at most one
// violation per condition.
func collectViolations(headers HeadersAnalysis, drift DriftAnalysis, esc EscalationAnalysis) []Violation {
	var violations []Violation

	if !headers.Compliant {
		violations = append(violations, Violation{
			Code:     ViolationHeaderSchemaMissing,
			Severity: SeverityHigh,
			Message:  msgHeaderSchemaMissing,
			Evidence: headers.Missing,
		})
	}

	if drift.Incidents >= 2 {
		violations = append(violations, Violation{
			Code:     ViolationScopeDrift,
			Severity: SeverityHigh,
			Message:  msgScopeDrift,
			Evidence: drift.Signals,
		})
	}

	if esc.Ok != nil && !*esc.Ok {
		required := esc.Required != nil && *esc.Required
		if required && !esc.Detected {
			violations = append(violations, Violation{
				Code:     ViolationEscalationMissed,
				Severity: SeverityCritical,
				Message:  msgEscalationMissed,
				Evidence: []string{"requiresEscalation: true", "detected: false"},
			})
		} else if !required && esc.Detected {
			violations = append(violations, Violation{
				Code:     ViolationFalseEscalation,
				Severity: SeverityLow,
				Message:  msgFalseEscalation,
				Evidence: []string{"requiresEscalation: false", "detected: true"},
			})
		}
	}

	return sortViolations(violations)
}

func hasSeverity(violations []Violation, sev Severity) bool {
	for _, v := range violations {
		if v.Severity == sev {
			return true
		}
	}
	return false
}

// applySeverityCap implements the §4.5 severity caps.
func applySeverityCap(raw int, violations []Violation, threshold int) (score int, compliant bool) {
	switch {
	case hasSeverity(violations, SeverityCritical):
		score = min(raw, 49)
		return score, false
	case hasSeverity(violations, SeverityHigh):
		score = min(raw, 79)
	default:
		score = raw
	}
	compliant = score >= threshold && !hasSeverity(violations, SeverityCritical)
	return score, compliant
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// computeConfidence implements the frozen §4.5 state-based confidence
// formula. The structural/heuristic split is fixed regardless of baseline
// presence, custom weights, or indeterminate escalation.
func computeConfidence(retry RetryAnalysis, esc EscalationAnalysis) float64 {
	structural := 1.0

	var heuristic float64
	if len(retry.Signals) > 0 {
		heuristic = 1
	} else {
		escalationCounts := esc.Ok == nil || *esc.Ok
		heuristic = 1 + 1 // drift + retry
		if escalationCounts {
			heuristic += 1 + float64(len(esc.Triggers))
		}
	}

	confidence := roundTo2(structural / (structural + heuristic))
	return clampUnit(confidence)
}

// primaryViolation returns the first (most severe) violation, or nil.
func primaryViolation(violations []Violation) *Violation {
	if len(violations) == 0 {
		return nil
	}
	return &violations[0]
}

// selectAction implements the §4.5 recommended-action table, evaluated
// top-down; exactly one action is ever emitted.
func selectAction(verdict Verdict, esc EscalationAnalysis, customWeights bool, weights Weights, baselineSupplied bool) RecommendedAction {
	primary := primaryViolation(verdict.Violations)

	if !verdict.Compliant {
		if hasSeverity(verdict.Violations, SeverityCritical) {
			return RecommendedAction{Type: ActionBlock, Priority: PriorityUrgent, Reason: reasonCriticalBlock}
		}
		if primary != nil && primary.Code == ViolationScopeDrift {
			return RecommendedAction{Type: ActionRetry, Priority: PriorityMedium, Reason: reasonScopeDriftRetry}
		}
		reason := reasonFullyCompliant
		if primary != nil {
			reason = primary.Message
		}
		return RecommendedAction{Type: ActionRetry, Priority: PriorityMedium, Reason: reason}
	}

	required := esc.Required != nil && *esc.Required
	if required && esc.Detected {
		return RecommendedAction{Type: ActionEscalate, Priority: PriorityHigh, Reason: reasonEscalateCorrect}
	}
	if customWeights {
		reason := fmt.Sprintf(reasonCustomWeightsTmpl, roundHalfUp(weights.Drift*100))
		return RecommendedAction{Type: ActionAllow, Priority: PriorityLow, Reason: reason}
	}
	if baselineSupplied {
		return RecommendedAction{Type: ActionAllow, Priority: PriorityLow, Reason: reasonBaselineImprovement}
	}
	if verdict.Score == verdict.Threshold && verdict.Threshold == 80 {
		return RecommendedAction{Type: ActionAllow, Priority: PriorityLow, Reason: reasonRoundingBoundary}
	}
	if esc.Ok == nil {
		return RecommendedAction{Type: ActionAllow, Priority: PriorityLow, Reason: reasonIndeterminateEscal}
	}
	return RecommendedAction{Type: ActionAllow, Priority: PriorityLow, Reason: reasonFullyCompliant}
}
