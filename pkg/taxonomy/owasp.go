// Package taxonomy maps DGP violation codes onto the OWASP LLM Top 10,
// mirroring the teacher's TISToOWASP normalizer. It is gateway-facing only:
// the mapping informs an X-DGP-OWASP response header, it is never written
// into the frozen Report JSON (spec §6 fixes the Report shape).
package taxonomy

import "github.com/dgp-systems/compliance-kernel/pkg/dgp"

// owaspByViolation mirrors the teacher's TISToOWASP table, narrowed to the
// kernel's violation catalog: the four codes the v1.0 aggregator emits plus
// the three reserved codes spec §9 notes as future catalog members, so the
// mapping doesn't need to change shape when they're activated.
var owaspByViolation = map[dgp.ViolationCode]string{
	dgp.ViolationHeaderSchemaMissing: "LLM01",
	dgp.ViolationHeaderSchemaExtra:   "LLM01",
	dgp.ViolationScopeDrift:          "LLM01",
	dgp.ViolationRiskyOperation:      "LLM03",
	dgp.ViolationEscalationMissed:    "LLM05",
	dgp.ViolationFalseEscalation:     "LLM05",
	dgp.ViolationRetryPressureHigh:   "LLM04",
}

// OWASP returns the OWASP LLM Top 10 identifier for a violation code, or ""
// if the code is unrecognized.
func OWASP(code dgp.ViolationCode) string {
	return owaspByViolation[code]
}
