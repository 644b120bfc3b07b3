package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rkotecha/fireplan/internal/cli"
	"github.com/rkotecha/fireplan/internal/common"
	"github.com/rkotecha/fireplan/internal/fire"
)

func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Run the FIRE projection",
		Long: `Project your retirement corpus from the stored profile and report whether
you are on track, including the required corpus at your target age and the
monthly savings needed to close any gap.`,
		RunE: runPlan,
	}

	cmd.Flags().Bool("from-assets", false, "Use the stored asset total as net worth instead of the profile value")
	cmd.Flags().Bool("no-save", false, "Do not record the result in metrics history")

	return cmd
}

func runPlan(cmd *cobra.Command, _ []string) error {
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

	if fromAssets, _ := cmd.Flags().GetBool("from-assets"); fromAssets {
		assets, listErr := store.ListAssets(ctx, "")
		if listErr != nil {
			return fmt.Errorf("failed to load assets: %w", listErr)
		}
		if len(assets) == 0 {
			return common.NewUserError("No assets stored; import a statement or drop --from-assets", common.ErrNoAssets)
		}
		var total float64
		for i := range assets {
			total += assets[i].CurrentValue
		}
		profile.CurrentNetWorth = total
	}

	if err := fire.Validate(*profile); err != nil {
		return common.NewUserError("Profile is incomplete", err)
	}

	metrics := fire.Calculate(*profile)
	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderMetricsCard(*profile, metrics))

	if noSave, _ := cmd.Flags().GetBool("no-save"); !noSave {
		if err := store.RecordMetrics(ctx, metrics); err != nil {
			return fmt.Errorf("failed to record metrics: %w", err)
		}
	}
	return nil
}
