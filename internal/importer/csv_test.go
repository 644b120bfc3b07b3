package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/rkotecha/fireplan/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVParser_ParseFile(t *testing.T) {
	ctx := context.Background()
	parser := NewCSVParser()

	input := strings.Join([]string{
		"Asset Name,Current Value,Asset Type",
		`HDFC Bank Ltd,"1,00,000.50",Equity`,
		"Nippon India Growth Fund,₹250000,Mutual Fund",
		",50000,Equity",
		"Axis Bank,not-a-number,Equity",
		"Infosys Ltd,75000,",
	}, "\n")

	assets, err := parser.ParseFile(ctx, strings.NewReader(input), "holdings.csv")
	require.NoError(t, err)
	require.Len(t, assets, 3)

	assert.Equal(t, "HDFC Bank Ltd", assets[0].Name)
	assert.InDelta(t, 100000.50, assets[0].CurrentValue, 1e-9)
	assert.Equal(t, "equity", assets[0].AssetType)
	assert.Equal(t, "holdings.csv", assets[0].SourceFile)

	assert.Equal(t, "Nippon India Growth Fund", assets[1].Name)
	assert.InDelta(t, 250000.0, assets[1].CurrentValue, 1e-9)

	assert.Equal(t, "Infosys Ltd", assets[2].Name)
	assert.Empty(t, assets[2].AssetType)
}

func TestCSVParser_HeaderAliases(t *testing.T) {
	ctx := context.Background()
	parser := NewCSVParser()

	input := "Scheme Name,Market Value\nKotak Flexicap Fund,500000\n"
	assets, err := parser.ParseFile(ctx, strings.NewReader(input), "cams.csv")
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "Kotak Flexicap Fund", assets[0].Name)
	assert.InDelta(t, 500000.0, assets[0].CurrentValue, 1e-9)
}

func TestCSVParser_Errors(t *testing.T) {
	ctx := context.Background()
	parser := NewCSVParser()

	_, err := parser.ParseFile(ctx, strings.NewReader(""), "empty.csv")
	assert.ErrorIs(t, err, common.ErrNoAssets)

	_, err = parser.ParseFile(ctx, strings.NewReader("foo,bar\n1,2\n"), "odd.csv")
	assert.ErrorIs(t, err, common.ErrUnsupportedFormat)

	// Header only, no data rows.
	_, err = parser.ParseFile(ctx, strings.NewReader("Name,Value\n"), "headeronly.csv")
	assert.ErrorIs(t, err, common.ErrNoAssets)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"100000", 100000, false},
		{`1,00,000.50`, 100000.50, false},
		{"₹250000", 250000, false},
		{"Rs. 5,000", 5000, false},
		{" 42.75 ", 42.75, false},
		{"", 0, true},
		{"n/a", 0, true},
	}
	for _, tt := range tests {
		got, err := parseAmount(tt.raw)
		if tt.wantErr {
			assert.Error(t, err, "raw %q", tt.raw)
			continue
		}
		require.NoError(t, err, "raw %q", tt.raw)
		assert.InDelta(t, tt.want, got, 1e-9, "raw %q", tt.raw)
	}
}
