package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rkotecha/fireplan/internal/cli"
)

func assetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "List stored assets",
		Long: `List the assets saved across all snapshots, or scoped to a single
snapshot with --snapshot.`,
		RunE: runAssets,
	}

	cmd.Flags().String("snapshot", "", "Only show assets from this snapshot ID")

	return cmd
}

func runAssets(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	snapshotID, _ := cmd.Flags().GetString("snapshot")
	assets, err := store.ListAssets(ctx, snapshotID)
	if err != nil {
		return fmt.Errorf("failed to list assets: %w", err)
	}
	if len(assets) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("No assets stored yet. Run 'fireplan import' first."))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.TitleStyle.Render(fmt.Sprintf("%s Assets", cli.ChartIcon)))

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tVALUE\tSOURCE\tSNAPSHOT")
	var total float64
	for i := range assets {
		a := &assets[i]
		total += a.CurrentValue
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			a.Name, a.AssetType, cli.FormatCurrency(a.CurrentValue), a.SourceFile, a.SnapshotID)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d assets, total %s\n", len(assets), cli.FormatCurrency(total))
	return nil
}
