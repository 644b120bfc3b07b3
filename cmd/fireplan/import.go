package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rkotecha/fireplan/internal/cli"
	"github.com/rkotecha/fireplan/internal/common"
	"github.com/rkotecha/fireplan/internal/dedup"
	"github.com/rkotecha/fireplan/internal/importer"
	"github.com/rkotecha/fireplan/internal/model"
	"github.com/rkotecha/fireplan/internal/tui"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import assets from CSV or OFX statements",
		Long: `Import asset holdings from portfolio statements into a new snapshot.

Each file is parsed by extension (.ofx/.qfx as OFX, everything else as CSV),
then the batch is run through duplicate detection against the assets already
stored. Flagged duplicates open in an interactive review where you choose
which assets to keep.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().StringP("label", "l", "", "Label for the created snapshot")
	cmd.Flags().String("snapshot", "", "Compare only against assets in this snapshot ID")
	cmd.Flags().Bool("no-review", false, "Skip the interactive review and keep only non-duplicates")
	cmd.Flags().Bool("dry-run", false, "Show detection results without saving anything")

	_ = viper.BindPFlag("import.label", cmd.Flags().Lookup("label"))
	_ = viper.BindPFlag("import.snapshot", cmd.Flags().Lookup("snapshot"))
	_ = viper.BindPFlag("import.no_review", cmd.Flags().Lookup("no-review"))
	_ = viper.BindPFlag("import.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	newAssets, err := parseStatementFiles(ctx, args)
	if err != nil {
		return err
	}
	if len(newAssets) == 0 {
		return common.NewUserError("No assets found in the provided files", common.ErrNoAssets)
	}
	common.LogInfo("Parsed statement files", common.Fields{
		"files":  len(args),
		"assets": len(newAssets),
	})

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			common.LogError(closeErr, "Failed to close storage", common.Fields{})
		}
	}()

	existing, err := store.ListAssets(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to load existing assets: %w", err)
	}

	// Exact re-imports are dropped before detection even sees them.
	newAssets = dropExactReimports(newAssets, existing)
	if len(newAssets) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("All assets were exact re-imports; nothing to do"))
		return nil
	}

	cfg, err := detectionConfig()
	if err != nil {
		return common.NewUserError("Invalid detection settings", err)
	}

	bar := progressbar.NewOptions(len(newAssets),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Detecting duplicates..."),
		progressbar.OptionClearOnFinish(),
	)
	review, err := dedup.DetectBatch(ctx, newAssets, existing, cfg, dedup.BatchOptions{
		TargetSnapshotID: viper.GetString("import.snapshot"),
		Progress: func(completed, _ int) {
			_ = bar.Set(completed)
		},
	})
	if err != nil {
		return fmt.Errorf("duplicate detection failed: %w", err)
	}

	if viper.GetBool("import.dry_run") {
		fmt.Fprintln(cmd.OutOrStdout(), cli.RenderReviewSummary(review))
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("Dry run: nothing saved"))
		return nil
	}

	if hasDuplicates(review) && !viper.GetBool("import.no_review") {
		reviewed, aborted, reviewErr := tui.Run(review)
		if reviewErr != nil {
			return fmt.Errorf("review session failed: %w", reviewErr)
		}
		if aborted {
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("Import cancelled"))
			return nil
		}
		review = reviewed
	}

	label := viper.GetString("import.label")
	if label == "" {
		label = fmt.Sprintf("Import of %s", strings.Join(baseNames(args), ", "))
	}
	snapshot, err := store.CreateSnapshot(ctx, label, strings.Join(baseNames(args), ","))
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	saved, err := store.SaveReviewAssets(ctx, snapshot.ID, review)
	if err != nil {
		return fmt.Errorf("failed to save assets: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderReviewSummary(review))
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
		fmt.Sprintf("Saved %d of %d assets to snapshot %s", saved, len(review), snapshot.ID)))
	return nil
}

// parseStatementFiles reads every file in order, choosing the parser by file
// extension. A file that fails to parse aborts the whole import; partial
// snapshots are worse than a clean retry.
func parseStatementFiles(ctx context.Context, paths []string) ([]model.Asset, error) {
	csvParser := importer.NewCSVParser()
	ofxParser := importer.NewOFXParser()

	var assets []model.Asset
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, common.NewUserError(fmt.Sprintf("Cannot open %s", path), err)
		}

		var parsed []model.Asset
		switch strings.ToLower(filepath.Ext(path)) {
		case ".ofx", ".qfx":
			parsed, err = ofxParser.ParseFile(ctx, f, filepath.Base(path))
		default:
			parsed, err = csvParser.ParseFile(ctx, f, filepath.Base(path))
		}
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close statement file", "file", path, "error", closeErr)
		}
		if err != nil {
			return nil, common.NewUserError(fmt.Sprintf("Failed to parse %s", path), err)
		}
		assets = append(assets, parsed...)
	}
	return assets, nil
}

// dropExactReimports removes incoming assets whose content hash already exists
// in storage or earlier in the same batch. These are byte-for-byte repeats, so
// there is nothing for similarity scoring to decide.
func dropExactReimports(incoming, existing []model.Asset) []model.Asset {
	seen := make(map[string]struct{}, len(existing))
	for i := range existing {
		seen[existing[i].GenerateHash()] = struct{}{}
	}

	kept := make([]model.Asset, 0, len(incoming))
	for i := range incoming {
		hash := incoming[i].GenerateHash()
		if _, dup := seen[hash]; dup {
			slog.Debug("skipping exact re-import", "asset", incoming[i].Name)
			continue
		}
		seen[hash] = struct{}{}
		kept = append(kept, incoming[i])
	}
	return kept
}

func hasDuplicates(review []model.ReviewAsset) bool {
	for i := range review {
		if review[i].IsDuplicate {
			return true
		}
	}
	return false
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}
