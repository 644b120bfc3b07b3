package dedup

import (
	"sort"
	"strings"
)

// abbreviations maps common Indian financial abbreviations to their
// expansions. Applied whole-word on normalized text before token sorting so
// that "HDFC Bank Ltd" and "Housing Development Finance Corporation Bank
// Limited" collapse to the same token set.
var abbreviations = map[string]string{
	"mf":    "mutual fund",
	"ltd":   "limited",
	"pvt":   "private",
	"corp":  "corporation",
	"co":    "company",
	"govt":  "government",
	"intl":  "international",
	"hdfc":  "housing development finance corporation",
	"sbi":   "state bank of india",
	"icici": "industrial credit and investment corporation of india",
	"lic":   "life insurance corporation",
	"pnb":   "punjab national bank",
	"bob":   "bank of baroda",
	"fd":    "fixed deposit",
	"rd":    "recurring deposit",
	"ppf":   "public provident fund",
	"nps":   "national pension system",
	"nsc":   "national savings certificate",
	"elss":  "equity linked savings scheme",
	"etf":   "exchange traded fund",
	"fof":   "fund of funds",
}

// stopwords are tokens too generic to distinguish holdings: corporate
// suffixes, geographic terms, generic instrument words and English filler.
// Hand-tuned; adjust with care since the common-token strategy depends on it.
var stopwords = map[string]struct{}{
	// Corporate suffixes.
	"limited": {}, "private": {}, "corporation": {}, "company": {},
	"inc": {}, "llp": {}, "enterprises": {}, "industries": {},
	// Geographic terms.
	"india": {}, "indian": {}, "bharat": {}, "mumbai": {}, "delhi": {},
	"bangalore": {}, "bengaluru": {}, "chennai": {}, "kolkata": {},
	"hyderabad": {}, "pune": {},
	// Generic instrument words.
	"fund": {}, "funds": {}, "mutual": {}, "scheme": {}, "plan": {},
	"growth": {}, "dividend": {}, "direct": {}, "regular": {},
	"option": {}, "series": {}, "savings": {}, "deposit": {},
	// English stopwords.
	"the": {}, "of": {}, "and": {}, "for": {}, "in": {}, "on": {},
	"at": {}, "a": {}, "an": {},
}

// normalize lowercases a name and strips every character outside [a-z0-9\s].
func normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ', r == '\t', r == '\n':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// tokenize splits normalized text into whitespace-separated tokens.
func tokenize(s string) []string {
	return strings.Fields(s)
}

// expandAbbreviations replaces whole-word abbreviations in already-normalized
// text with their expansions.
func expandAbbreviations(s string) string {
	tokens := tokenize(s)
	expanded := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if full, ok := abbreviations[tok]; ok {
			expanded = append(expanded, tokenize(full)...)
			continue
		}
		expanded = append(expanded, tok)
	}
	return strings.Join(expanded, " ")
}

// sortTokens alphabetically sorts the tokens of normalized text and rejoins
// them, making comparison insensitive to word order.
func sortTokens(s string) string {
	tokens := tokenize(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// filterStopwords returns the distinct non-stopword tokens of normalized text.
func filterStopwords(s string) map[string]struct{} {
	filtered := make(map[string]struct{})
	for _, tok := range tokenize(s) {
		if _, skip := stopwords[tok]; skip {
			continue
		}
		filtered[tok] = struct{}{}
	}
	return filtered
}
