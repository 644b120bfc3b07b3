package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rkotecha/fireplan/internal/cli"
)

func snapshotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshots",
		Short: "List stored snapshots",
		Long:  `List every snapshot with its asset count and total value, newest first.`,
		RunE:  runSnapshots,
	}
}

func runSnapshots(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	snapshots, err := store.ListSnapshots(ctx)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}
	if len(snapshots) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("No snapshots yet. Run 'fireplan import' first."))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.TitleStyle.Render(fmt.Sprintf("%s Snapshots", cli.ChartIcon)))

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tLABEL\tASSETS\tTOTAL")
	for i := range snapshots {
		s := &snapshots[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			s.ID,
			s.CreatedAt.Format("2006-01-02 15:04"),
			s.Label,
			s.AssetCount,
			cli.FormatCurrency(s.TotalValue))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}
