package dgp

import (
	"strings"
	"time"
)

// EngineConfig holds the tunable inputs to Evaluate: the compliance
// threshold and component weights (§4.5), and the injectable clock/version
// the determinism invariant (§5) requires instead of calling time.Now or a
// hardcoded version string directly.
type EngineConfig struct {
	// Threshold is the minimum score, inclusive, for Verdict.Compliant to be
	// true absent a CRITICAL violation. Must be in [0, 100]. Zero value
	// means "unset"; NewEngine substitutes 80.
	Threshold int

	// Weights are the component weights fed into the raw-score formula.
	// Zero value means "unset"; NewEngine substitutes DefaultWeights().
	Weights Weights

	// Now returns the evaluation timestamp. Zero value means "unset";
	// NewEngine substitutes time.Now.
	Now func() time.Time

	// EngineVersion is echoed into Report.Metadata.EngineVersion. Zero
	// value means "unset"; NewEngine substitutes DefaultEngineVersion.
	EngineVersion string
}

// Engine is a configured, reusable evaluator. The zero value is not usable;
// construct one with NewEngine.
type Engine struct {
	threshold     int
	weights       Weights
	customWeights bool
	now           func() time.Time
	engineVersion string
}

// NewEngine validates cfg and builds an Engine. A zero-value EngineConfig
// produces the frozen v1.0 defaults: threshold 80, DefaultWeights, time.Now,
// DefaultEngineVersion.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	e := &Engine{
		threshold:     cfg.Threshold,
		weights:       cfg.Weights,
		now:           cfg.Now,
		engineVersion: cfg.EngineVersion,
	}

	if e.threshold == 0 {
		e.threshold = 80
	}
	if e.threshold < 0 || e.threshold > 100 {
		return nil, newConfigurationError("threshold", "must be in [0, 100]")
	}

	if (e.weights == Weights{}) {
		e.weights = DefaultWeights()
	} else {
		e.customWeights = true
		sum := e.weights.Headers + e.weights.Drift + e.weights.Retry + e.weights.Escalation
		if sum < 0.999 || sum > 1.001 {
			return nil, newConfigurationError("weights", "must sum to 1.0 within tolerance 0.001")
		}
	}

	if e.now == nil {
		e.now = time.Now
	}
	if e.engineVersion == "" {
		e.engineVersion = DefaultEngineVersion
	}

	return e, nil
}

// NewDefaultConfig returns the general-governance posture: threshold 80,
// DefaultWeights. Grounded in the teacher's detection_profile.go
// profile-bundle pattern (§4.2b); unlike that teacher pattern, no
// context-discount step is applied, since the frozen §4.5 formula has none.
func NewDefaultConfig() EngineConfig {
	return EngineConfig{Threshold: 80, Weights: DefaultWeights()}
}

// NewStrictConfig returns a posture suited to regulated/high-risk
// deployments: a higher threshold and drift/escalation weighted above the
// default split.
func NewStrictConfig() EngineConfig {
	return EngineConfig{
		Threshold: 90,
		Weights:   Weights{Headers: 0.20, Drift: 0.35, Retry: 0.15, Escalation: 0.30},
	}
}

// NewPermissiveConfig returns a posture suited to experimentation: a lower
// threshold and retry/header pressure weighted below the default split.
func NewPermissiveConfig() EngineConfig {
	return EngineConfig{
		Threshold: 60,
		Weights:   Weights{Headers: 0.20, Drift: 0.35, Retry: 0.10, Escalation: 0.35},
	}
}

// Evaluate is the package-level convenience entry point, equivalent to
// constructing an Engine with the zero-value EngineConfig (frozen v1.0
// defaults) and calling its Evaluate method.
func Evaluate(capsule *Capsule, task Task, output string, baseline *string) (*Report, error) {
	e, err := NewEngine(EngineConfig{})
	if err != nil {
		// NewEngine cannot fail on the zero-value config.
		return nil, err
	}
	return e.Evaluate(capsule, task, output, baseline)
}

// Evaluate implements spec.md §6's evaluate(capsule, task, output,
// baseline?) -> Report. It performs no I/O and mutates none of its inputs.
func (e *Engine) Evaluate(capsule *Capsule, task Task, output string, baseline *string) (*Report, error) {
	if err := validateInputs(capsule, task, output); err != nil {
		return nil, err
	}

	lexicon := task.DriftLexicon
	if len(lexicon) == 0 {
		lexicon = capsule.Governance.SEG.DriftKeywords
	}

	headerResult := CheckHeaders(capsule.Governance.RFE.RequiredHeaders, output, HeaderOptions{Strict: false, CaseSensitive: false})
	headersAnalysis := toHeadersAnalysis(headerResult)

	driftResult := DetectDrift(lexicon, output, DriftOptions{CaseSensitive: false})
	driftAnalysis := toDriftAnalysis(driftResult)

	retryResult := DetectRetryPressure(output)
	retryAnalysis := toRetryAnalysis(retryResult)

	escResult := DetectEscalation(capsule.Governance.FOP.EscalationTriggers, task, *capsule, output)
	escAnalysis := toEscalationAnalysis(escResult)

	deltas := computeDeltas(baseline, lexicon, driftResult, retryResult)

	scores := computeComponentScores(headersAnalysis, driftAnalysis, retryAnalysis, escAnalysis)
	raw := computeRawScore(scores, e.weights)
	violations := collectViolations(headersAnalysis, driftAnalysis, escAnalysis)
	score, compliant := applySeverityCap(raw, violations, e.threshold)
	confidence := computeConfidence(retryAnalysis, escAnalysis)

	verdict := Verdict{
		Score:      score,
		Threshold:  e.threshold,
		Compliant:  compliant,
		Confidence: confidence,
		Violations: violations,
	}

	action := selectAction(verdict, escAnalysis, e.customWeights, e.weights, baseline != nil)
	actions := sortActions([]RecommendedAction{action})

	var weights *Weights
	if e.customWeights {
		w := e.weights
		weights = &w
	}

	report := &Report{
		SchemaVersion: SchemaVersion,
		Task: TaskRef{
			ID:   task.ID,
			Risk: task.Risk,
		},
		Analysis: Analysis{
			Headers:       headersAnalysis,
			Drift:         driftAnalysis,
			RetryPressure: retryAnalysis,
			Escalation:    escAnalysis,
		},
		Deltas:             deltas,
		Verdict:            verdict,
		RecommendedActions: actions,
		Metadata: ReportMetadata{
			CapsuleVersion: capsule.Version,
			EngineVersion:  e.engineVersion,
			EvaluatedAt:    e.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
			Weights:        weights,
		},
	}

	return report, nil
}

// validateInputs implements the §7 synchronous validation pass: every
// KernelError that Engine.Evaluate returns is raised here, before any
// analyzer runs. ConfigurationErrors are raised earlier, by NewEngine.
func validateInputs(capsule *Capsule, task Task, output string) error {
	if capsule == nil {
		return newTypeError("capsule", "capsule is required")
	}
	if strings.TrimSpace(task.ID) == "" {
		return newTypeError("task.id", "task.id is required")
	}
	if output == "" {
		return newTypeError("output", "output is required")
	}

	switch task.Risk {
	case "", RiskLow, RiskMedium, RiskHigh:
	default:
		return newValidationError("task.risk", "must be one of LOW, MEDIUM, HIGH")
	}

	return nil
}
