package dedup

// NameSimilarity scores how likely two free-text asset names denote the same
// underlying holding, returning a confidence in [0,100]. Three complementary
// strategies run independently and the maximum wins: any one strong signal is
// enough, since the strategies catch different failure modes (word
// reordering, abbreviations, verbosity).
func NameSimilarity(name1, name2 string) float64 {
	n1 := normalize(name1)
	n2 := normalize(name2)

	direct := tokenSortRatio(n1, n2)

	e1 := expandAbbreviations(n1)
	e2 := expandAbbreviations(n2)
	expanded := tokenSortRatio(e1, e2)

	common := commonTokenRatio(e1, e2)

	best := direct
	if expanded > best {
		best = expanded
	}
	if common > best {
		best = common
	}
	return best
}

// tokenSortRatio sorts each name's tokens alphabetically and compares the
// rejoined strings by normalized Levenshtein similarity.
func tokenSortRatio(n1, n2 string) float64 {
	return levenshteinRatio(sortTokens(n1), sortTokens(n2))
}

// commonTokenRatio divides the count of shared non-stopword tokens by the
// smaller filtered set's size. Fewer than 2 shared distinct tokens forces the
// ratio to 0: two unrelated entities sharing a single generic word (e.g. both
// containing "india") must not look similar.
func commonTokenRatio(n1, n2 string) float64 {
	set1 := filterStopwords(n1)
	set2 := filterStopwords(n2)
	if len(set1) == 0 || len(set2) == 0 {
		return 0
	}

	common := 0
	for tok := range set1 {
		if _, ok := set2[tok]; ok {
			common++
		}
	}
	if common < 2 {
		return 0
	}

	smaller := len(set1)
	if len(set2) < smaller {
		smaller = len(set2)
	}
	return 100 * float64(common) / float64(smaller)
}
