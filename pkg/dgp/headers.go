package dgp

import (
	"regexp"
	"strings"
)

// HeaderOptions configures HeaderChecker. The kernel always calls
// CheckHeaders with Strict: false, CaseSensitive: false (§4.1).
type HeaderOptions struct {
	Strict        bool
	CaseSensitive bool
}

// HeaderCheckResult is the raw HeaderChecker contract result (§4.1).
type HeaderCheckResult struct {
	Compliant bool
	Missing   []string
	Found     []string
	Coverage  int // percentage, 0-100
}

// CheckHeaders tests presence of each required heading in output, per the
// HeaderChecker contract (§4.1). A heading is present if it appears as a
// substring of output, or if it appears followed by optional whitespace and
// a literal colon (treated as a heading label). Matching is performed on
// NFKC-normalized text (§4.1a).
func CheckHeaders(required []string, output string, opts HeaderOptions) HeaderCheckResult {
	normalizedOutput := normalizeText(output)
	haystack := normalizedOutput
	if !opts.CaseSensitive {
		haystack = strings.ToLower(haystack)
	}

	var found, missing []string
	for _, h := range required {
		needle := normalizeText(h)
		cmpNeedle := needle
		if !opts.CaseSensitive {
			cmpNeedle = strings.ToLower(needle)
		}

		present := strings.Contains(haystack, cmpNeedle)
		if !present {
			present = headingLabelMatches(needle, normalizedOutput, opts.CaseSensitive)
		}

		if present {
			found = append(found, h)
		} else {
			missing = append(missing, h)
		}
	}

	coverage := 100
	if len(required) > 0 {
		coverage = roundHalfUp(float64(len(found)) / float64(len(required)) * 100)
	}

	compliant := len(found) > 0
	if opts.Strict {
		compliant = len(missing) == 0
	}

	return HeaderCheckResult{
		Compliant: compliant,
		Missing:   missing,
		Found:     found,
		Coverage:  coverage,
	}
}

// headingLabelMatches reports whether heading appears in text followed by
// optional whitespace and a colon, e.g. "Plan:" or "Plan  :".
func headingLabelMatches(heading, text string, caseSensitive bool) bool {
	pattern := regexp.QuoteMeta(heading) + `\s*:`
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	re := regexp.MustCompile(pattern)
	return re.MatchString(text)
}

// toHeadersAnalysis converts a HeaderCheckResult into the headers-analysis
// block of a Report, dividing coverage by 100 to get a [0,1] ratio (§4.1).
func toHeadersAnalysis(r HeaderCheckResult) HeadersAnalysis {
	missing := r.Missing
	if missing == nil {
		missing = []string{}
	}
	return HeadersAnalysis{
		Compliant: r.Compliant,
		Coverage:  float64(r.Coverage) / 100,
		Missing:   missing,
		Extra:     []string{}, // reserved: no detector path emits "extra" in v1.0 (§9 Open Question)
	}
}
