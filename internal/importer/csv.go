// Package importer parses uploaded asset statements (CSV holdings exports and
// OFX investment statements) into plain asset records for duplicate review.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rkotecha/fireplan/internal/common"
	"github.com/rkotecha/fireplan/internal/model"
)

// Column aliases seen across broker and registrar holdings exports. Headers
// are matched after lowercasing and trimming.
var (
	nameHeaders  = []string{"asset name", "name", "asset", "holding", "scheme name", "security name", "instrument"}
	valueHeaders = []string{"current value", "value", "amount", "market value", "closing balance", "valuation"}
	typeHeaders  = []string{"asset type", "type", "category", "instrument type"}
)

// CSVParser implements holdings parsing for delimited statement exports.
type CSVParser struct{}

// NewCSVParser creates a new CSV statement parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// ParseFile reads a CSV holdings export and returns the assets it lists.
// Rows with an empty name or an unparseable value are skipped with a warning
// rather than aborting the whole file.
func (p *CSVParser) ParseFile(_ context.Context, reader io.Reader, sourceFile string) ([]model.Asset, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, common.ErrNoAssets
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	nameIdx := findColumn(header, nameHeaders)
	valueIdx := findColumn(header, valueHeaders)
	typeIdx := findColumn(header, typeHeaders)
	if nameIdx < 0 || valueIdx < 0 {
		return nil, fmt.Errorf("%w: could not locate name and value columns in header %v",
			common.ErrUnsupportedFormat, header)
	}

	var assets []model.Asset
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			slog.Warn("Skipping malformed CSV row", "file", sourceFile, "line", line, "error", err)
			continue
		}
		if nameIdx >= len(record) || valueIdx >= len(record) {
			continue
		}

		name := strings.TrimSpace(record[nameIdx])
		if name == "" {
			continue
		}

		value, err := parseAmount(record[valueIdx])
		if err != nil {
			slog.Warn("Skipping row with unparseable value",
				"file", sourceFile, "line", line, "name", name, "raw", record[valueIdx])
			continue
		}

		asset := model.Asset{
			Name:         name,
			CurrentValue: value,
			SourceFile:   sourceFile,
		}
		if typeIdx >= 0 && typeIdx < len(record) {
			asset.AssetType = strings.ToLower(strings.TrimSpace(record[typeIdx]))
		}
		assets = append(assets, asset)
	}

	if len(assets) == 0 {
		return nil, common.ErrNoAssets
	}

	slog.Info("Parsed CSV statement", "file", sourceFile, "assets", len(assets))
	return assets, nil
}

// findColumn returns the index of the first header matching any alias.
func findColumn(header []string, aliases []string) int {
	for i, h := range header {
		normalized := strings.ToLower(strings.TrimSpace(h))
		for _, alias := range aliases {
			if normalized == alias {
				return i
			}
		}
	}
	return -1
}

// parseAmount handles the formats brokers actually emit: currency symbols,
// Indian digit grouping ("1,00,000.50"), and surrounding whitespace.
func parseAmount(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "₹")
	cleaned = strings.TrimPrefix(cleaned, "Rs.")
	cleaned = strings.TrimPrefix(cleaned, "Rs")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}
	return strconv.ParseFloat(cleaned, 64)
}
