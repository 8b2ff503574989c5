// Package ingress is defense in depth for hosts exposing DGP evaluation to
// less-trusted callers. The kernel's Non-goals state it "does not validate
// capsule semantics beyond structural sanity"; that's correct for the
// kernel, but a gateway may still want to flag task/output text that looks
// like a policy-injection attempt. Scan never blocks or rewrites anything —
// only the kernel's own violation/action machinery gates execution.
package ingress

import "regexp"

// Finding is one policy-injection-shaped match. Findings are advisory: a
// gateway logs them, it never merges them into a dgp.Report.
type Finding struct {
	Pattern     string
	Score       float64
	Description string
}

// policyInjectionPatterns is carried over verbatim from the teacher's
// PolicyInjectionPatterns table (safety-toggle, mode-override,
// policy-structure patterns) as a detection surface distinct from the
// kernel's SEG drift lexicon: this scans for attempts to manipulate the
// gateway itself, not scope drift within a compliant output.
var policyInjectionPatterns = []struct {
	pattern     *regexp.Regexp
	score       float64
	description string
}{
	{
		pattern:     regexp.MustCompile(`(?i)safety[_\-\s]*(enabled|mode|check|filter)["\s:=]+\s*(false|off|disabled|0|none|null)`),
		score:       0.9,
		description: "safety_disable",
	},
	{
		pattern:     regexp.MustCompile(`(?i)restrictions?["\s:=]+\s*(none|off|disabled|false|null|0|"")`),
		score:       0.85,
		description: "restrictions_disable",
	},
	{
		pattern:     regexp.MustCompile(`(?i)(filter|guard|protect|censor)[_\-\s]*(enabled|active)?["\s:=]+\s*(false|off|disabled|0)`),
		score:       0.8,
		description: "filter_disable",
	},
	{
		pattern:     regexp.MustCompile(`(?i)mode["\s:=]+\s*["']?(unrestricted|unfiltered|raw|unsafe|jailbreak|admin|root)["']?`),
		score:       0.9,
		description: "unsafe_mode",
	},
	{
		pattern:     regexp.MustCompile(`(?i)(admin|root|system|override)[_\-\s]*(override|access|mode|privileges?)["\s:=]+\s*(true|enabled|1|on|yes)`),
		score:       0.85,
		description: "admin_override",
	},
	{
		pattern:     regexp.MustCompile(`(?i)trust[_\-\s]*level["\s:=]+\s*["']?(max|maximum|high|admin|root|full)["']?`),
		score:       0.7,
		description: "elevated_trust",
	},
	{
		pattern:     regexp.MustCompile(`(?i)<policy[^>]*>[\s\S]*?(allow\s+all|ignore\s+safety|bypass|override|no\s+restrict)[\s\S]*?</policy>`),
		score:       0.85,
		description: "xml_policy",
	},
	{
		pattern:     regexp.MustCompile(`(?i)\[(SYSTEM|CONFIG|POLICY|SETTINGS|RULES)\][\s\S]{0,200}(disabled|none|false|off|unrestricted)`),
		score:       0.75,
		description: "ini_policy",
	},
}

// Scan returns every policy-injection pattern that matches text, in
// catalog order.
func Scan(text string) []Finding {
	var findings []Finding
	for _, p := range policyInjectionPatterns {
		if p.pattern.MatchString(text) {
			findings = append(findings, Finding{
				Pattern:     p.pattern.String(),
				Score:       p.score,
				Description: p.description,
			})
		}
	}
	return findings
}
