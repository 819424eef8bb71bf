package classeviva

import "strings"

// Verdict is the outcome of sniffing an upstream response for a WAF/geo
// block disguised as an HTML error page.
type Verdict int

const (
	VerdictOk Verdict = iota
	VerdictBlocked
	VerdictRejected
)

// blockMarkers are substrings of known WAF/HTML block pages. Substring
// sniffing is inherently brittle; upstream offers no structured block
// signal, so this heuristic is the contract.
var blockMarkers = []string{
	"Access Denied",
	"Permission",
	"HTML",
	"Reference",
	"<!DOCTYPE",
}

// Classify inspects an upstream response. A 2xx status is Ok; a non-2xx body
// matching any block marker is Blocked; any other non-2xx is Rejected.
func Classify(status int, body string) Verdict {
	if status >= 200 && status < 300 {
		return VerdictOk
	}
	for _, marker := range blockMarkers {
		if strings.Contains(body, marker) {
			return VerdictBlocked
		}
	}
	return VerdictRejected
}
