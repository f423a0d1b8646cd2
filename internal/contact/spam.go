package contact

import "strings"

// spamKeywords are matched as case-insensitive substrings across the whole
// submission. False positives on legitimate text containing one of these
// terms are an accepted tradeoff.
var spamKeywords = []string{
	"viagra",
	"casino",
	"lottery",
	"winner",
	"congratulations",
	"click here",
	"free money",
	"crypto investment",
}

// IsSpam reports whether the submission's message, subject, or name
// contains a blocked keyword.
func IsSpam(f Fields) bool {
	haystack := strings.ToLower(f.Message + " " + f.Subject + " " + f.FullName)
	for _, kw := range spamKeywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
