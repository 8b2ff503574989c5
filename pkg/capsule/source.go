// Package capsule loads dgp.Capsule values from outside the kernel: a YAML
// file on disk, or a remote capsule registry over HTTP. The kernel itself
// never touches either source (spec §1's "capsule loading ... not specified
// here"); a host composes a Source and feeds its result into dgp.Evaluate.
package capsule

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgp-systems/compliance-kernel/pkg/dgp"
	"gopkg.in/yaml.v3"
)

// ErrCapsuleNotFound is returned by FileSource.Load when the backing file
// is absent. This is not treated as fatal: a missing capsule file is a
// common, expected deployment shape, and the caller is expected to
// substitute DefaultCapsule(), mirroring the teacher's LoadScorerConfig
// fallback.
var ErrCapsuleNotFound = errors.New("capsule: source not found")

// DefaultCapsule returns the built-in governance policy substituted by
// callers (notably cmd/dgpd) when a Source reports ErrCapsuleNotFound. It
// requires no headers, carries no extra drift lexicon or escalation
// triggers beyond the kernel's own frozen defaults (§4.4), and does not
// require escalation for HIGH-risk tasks — the least restrictive posture
// this governance model can express. Per §4.1's frozen non-strict
// compliant formula, an empty RequiredHeaders list still yields
// compliant=false (see DESIGN.md), so this does not guarantee an
// always-allow evaluation; it guarantees the default capsule adds no
// constraint beyond that unavoidable kernel formula quirk.
func DefaultCapsule() *dgp.Capsule {
	return &dgp.Capsule{
		Version: "0.0.0-default",
		Governance: dgp.Governance{
			RFE: dgp.RFEPolicy{RequiredHeaders: []string{}},
			SEG: dgp.SEGPolicy{DriftKeywords: []string{}},
			FOP: dgp.FOPPolicy{EscalationTriggers: []string{}, RequiredForHighRisk: false},
		},
	}
}

// Source loads a Capsule from some external location.
type Source interface {
	Load() (*dgp.Capsule, error)
}

// FileSource reads a Capsule from a YAML file.
type FileSource struct {
	Path string
}

// Load implements Source. A missing file returns ErrCapsuleNotFound rather
// than the underlying os.PathError, so callers can branch on it without
// depending on os semantics.
func (s FileSource) Load() (*dgp.Capsule, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCapsuleNotFound
		}
		return nil, fmt.Errorf("capsule: reading %s: %w", s.Path, err)
	}

	var c dgp.Capsule
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("capsule: parsing %s: %w", s.Path, err)
	}
	return &c, nil
}
