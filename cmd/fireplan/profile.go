package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rkotecha/fireplan/internal/cli"
	"github.com/rkotecha/fireplan/internal/common"
	"github.com/rkotecha/fireplan/internal/fire"
	"github.com/rkotecha/fireplan/internal/model"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the FIRE planning profile",
	}
	cmd.AddCommand(profileSetCmd())
	cmd.AddCommand(profileShowCmd())
	return cmd
}

func profileSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the planning profile",
		Long: `Set the demographic and financial inputs used for FIRE projections.

Unset flags keep their previously stored values, so the profile can be
updated one field at a time.`,
		RunE: runProfileSet,
	}

	cmd.Flags().Int("age", 0, "Current age in years")
	cmd.Flags().Int("fire-age", 0, "Target retirement age")
	cmd.Flags().Int("dependents", 0, "Number of dependents")
	cmd.Flags().Float64("monthly-expense", 0, "Current monthly expenses")
	cmd.Flags().Float64("net-worth", 0, "Current net worth")
	cmd.Flags().Float64("monthly-savings", 0, "Monthly savings (income minus expenses)")
	cmd.Flags().Float64("income", 0, "Monthly household income")
	cmd.Flags().String("lifestyle", "", "Retirement lifestyle: lean, standard or fat")

	return cmd
}

func runProfileSet(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	profile := model.Profile{LifestyleType: model.LifestyleStandard}
	if stored, getErr := store.GetProfile(ctx); getErr == nil {
		profile = *stored
	} else if !errors.Is(getErr, common.ErrNotFound) {
		return fmt.Errorf("failed to load profile: %w", getErr)
	}

	flags := cmd.Flags()
	if flags.Changed("age") {
		profile.CurrentAge, _ = flags.GetInt("age")
	}
	if flags.Changed("fire-age") {
		profile.FireAge, _ = flags.GetInt("fire-age")
	}
	if flags.Changed("dependents") {
		profile.Dependents, _ = flags.GetInt("dependents")
	}
	if flags.Changed("monthly-expense") {
		profile.CurrentMonthlyExpense, _ = flags.GetFloat64("monthly-expense")
	}
	if flags.Changed("net-worth") {
		profile.CurrentNetWorth, _ = flags.GetFloat64("net-worth")
	}
	if flags.Changed("monthly-savings") {
		profile.MonthlySavings, _ = flags.GetFloat64("monthly-savings")
	}
	if flags.Changed("income") {
		profile.HouseholdIncome, _ = flags.GetFloat64("income")
	}
	if flags.Changed("lifestyle") {
		lifestyle, _ := flags.GetString("lifestyle")
		profile.LifestyleType = model.LifestyleType(lifestyle)
	}

	if err := fire.Validate(profile); err != nil {
		return common.NewUserError("Invalid profile", err)
	}
	if err := store.SaveProfile(ctx, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Profile saved"))
	return nil
}

func profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored planning profile",
		RunE:  runProfileShow,
	}
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	profile, err := store.GetProfile(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NewUserError("No profile stored yet. Run 'fireplan profile set' first.", err)
		}
		return fmt.Errorf("failed to load profile: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.TitleStyle.Render(fmt.Sprintf("%s Planning Profile", cli.FireIcon)))

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Current age\t%d\n", profile.CurrentAge)
	fmt.Fprintf(w, "Target FIRE age\t%d\n", profile.FireAge)
	fmt.Fprintf(w, "Dependents\t%d\n", profile.Dependents)
	fmt.Fprintf(w, "Monthly expenses\t%s\n", cli.FormatCurrency(profile.CurrentMonthlyExpense))
	fmt.Fprintf(w, "Net worth\t%s\n", cli.FormatCurrency(profile.CurrentNetWorth))
	fmt.Fprintf(w, "Monthly savings\t%s\n", cli.FormatCurrency(profile.MonthlySavings))
	fmt.Fprintf(w, "Household income\t%s\n", cli.FormatCurrency(profile.HouseholdIncome))
	fmt.Fprintf(w, "Lifestyle\t%s\n", profile.LifestyleType)
	fmt.Fprintf(w, "Updated\t%s\n", profile.UpdatedAt.Format("2006-01-02 15:04"))
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to render profile: %w", err)
	}
	return nil
}
