package cli

import (
	"fmt"
	"strings"

	"github.com/rkotecha/fireplan/internal/model"
)

// FormatCurrency renders an amount with Indian digit grouping (12,34,567).
func FormatCurrency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	whole := fmt.Sprintf("%.0f", amount)
	var grouped string
	if len(whole) <= 3 {
		grouped = whole
	} else {
		// Last three digits, then groups of two.
		grouped = whole[len(whole)-3:]
		rest := whole[:len(whole)-3]
		for len(rest) > 2 {
			grouped = rest[len(rest)-2:] + "," + grouped
			rest = rest[:len(rest)-2]
		}
		grouped = rest + "," + grouped
	}

	if negative {
		return "-₹" + grouped
	}
	return "₹" + grouped
}

// RenderReviewSummary prints a compact table of a reviewed batch with
// duplicate flags and selection state.
func RenderReviewSummary(assets []model.ReviewAsset) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Statement review"))
	b.WriteString("\n")
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-4s %-40s %15s  %s", "Sel", "Asset", "Value", "Duplicates")))
	b.WriteString("\n")

	for _, a := range assets {
		sel := "[x]"
		if !a.IsSelected {
			sel = "[ ]"
		}

		dup := SubtleStyle.Render("-")
		if len(a.DuplicateMatches) > 0 {
			best := a.DuplicateMatches[0]
			dup = WarningStyle.Render(fmt.Sprintf("%s %.0f%% vs %q",
				best.MatchType, best.SimilarityScore, best.AssetName))
			if len(a.DuplicateMatches) > 1 {
				dup += SubtleStyle.Render(fmt.Sprintf(" (+%d more)", len(a.DuplicateMatches)-1))
			}
		}

		b.WriteString(fmt.Sprintf("%-4s %-40s %15s  %s\n",
			sel, Truncate(a.Name, 40), FormatCurrency(a.CurrentValue), dup))
	}

	return b.String()
}

// RenderMetricsCard prints the FIRE projection result as a bordered card.
func RenderMetricsCard(p model.Profile, m model.Metrics) string {
	var b strings.Builder

	verdict := SuccessStyle.Render(SuccessIcon + " On track")
	if !m.IsOnTrack {
		verdict = ErrorStyle.Render(ErrorIcon + " Off track")
	}

	fmt.Fprintf(&b, "%s FIRE at %d (%.1f years away)  %s\n\n", FireIcon, p.FireAge, m.YearsToFire, verdict)
	fmt.Fprintf(&b, "Lifestyle inflation adjustment  %.0f%%\n", m.LifestyleInflationAdjustment)
	fmt.Fprintf(&b, "Safe withdrawal rate            %.1f%% (%.1fx expenses)\n", m.SafeWithdrawalRate, m.CorpusMultiplier)
	fmt.Fprintf(&b, "Post-FIRE monthly expense       %s\n", FormatCurrency(m.PostFireMonthlyExpense))
	fmt.Fprintf(&b, "Required corpus                 %s\n", FormatCurrency(m.RequiredCorpus))
	fmt.Fprintf(&b, "Projected corpus                %s\n", FormatCurrency(m.ProjectedCorpusAtFire))
	fmt.Fprintf(&b, "Surplus / deficit               %s\n", FormatCurrency(m.SurplusDeficit))
	if !m.IsOnTrack {
		fmt.Fprintf(&b, "\nMonthly savings needed          %s (currently %s, +%s)\n",
			FormatCurrency(m.MonthlySavingsNeeded),
			FormatCurrency(p.MonthlySavings),
			FormatCurrency(m.SavingsIncrease))
	}

	return BoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// Truncate shortens s to at most n bytes, replacing the tail with an
// ellipsis when anything is cut.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
