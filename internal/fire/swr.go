package fire

// SafeWithdrawalRate picks the withdrawal-rate tier for a target retirement
// age. Earlier retirement means a longer withdrawal horizon and therefore a
// more conservative rate.
func SafeWithdrawalRate(fireAge int) float64 {
	switch {
	case fireAge < 45:
		return 3.5
	case fireAge <= 55:
		return 4.0
	default:
		return 4.5
	}
}

// CorpusMultiplier converts a safe withdrawal rate into the years-of-expenses
// multiple a corpus must cover (e.g. 4% -> 25x).
func CorpusMultiplier(swr float64) float64 {
	return 100 / swr
}
