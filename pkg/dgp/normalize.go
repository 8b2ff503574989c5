package dgp

import "golang.org/x/text/unicode/norm"

// normalizeText applies NFKC normalization so that mathematical, fullwidth,
// and circled Unicode lookalikes compare equal to their plain ASCII forms
// before any substring or regex matching in HeaderChecker, DriftDetector, or
// RetryPressure.
//
// NFKC is idempotent and a no-op over plain ASCII, so it never changes the
// outcome of the canonical v1.0 test vectors; it only widens the matcher's
// reach against adversarial Unicode obfuscation the frozen protocol is
// otherwise silent on.
func normalizeText(text string) string {
	return norm.NFKC.String(text)
}
