package record

import (
	"regexp"
	"strings"
)

var (
	emptyKomiRe  = regexp.MustCompile(`K[MO]\[\]`)
	altKomiRe    = regexp.MustCompile(`KO\[([^\]]+)\]`)
	playerJunkRe = regexp.MustCompile(`(P[BW]\[[^\]\\]*?)\s*\([^()\[\]]*\)\s*\]`)
)

// CorrectDialect applies best-effort textual fixes for known vendor defects:
// the RD date and KO komi property names, empty komi tags, and stray
// parenthesized tokens trailing inside player names. The substitutions are
// order-independent and idempotent. This is a heuristic: adversarially
// malformed input may still not parse afterwards, and in that case the
// caller reports the original fragment, not the corrected one.
func CorrectDialect(text string) string {
	// Empty komi tags go first in either spelling, so the KO rename cannot
	// mint a fresh empty KM.
	out := emptyKomiRe.ReplaceAllString(text, "")
	out = strings.ReplaceAll(out, "RD[", "DT[")
	out = altKomiRe.ReplaceAllString(out, "KM[$1]")
	out = playerJunkRe.ReplaceAllString(out, "$1]")
	return out
}
