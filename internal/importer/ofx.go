package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/rkotecha/fireplan/internal/common"
	"github.com/rkotecha/fireplan/internal/model"
)

var severityRegexp = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)

// OFXParser extracts account balances from OFX/QFX statements. Each bank
// statement in the file becomes one asset valued at its ledger balance.
type OFXParser struct{}

// NewOFXParser creates a new OFX statement parser.
func NewOFXParser() *OFXParser {
	return &OFXParser{}
}

// preprocessOFX fixes common formatting issues in bank-exported OFX files.
func (p *OFXParser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// Some exporters emit mixed-case SEVERITY values; the parser wants upper.
	content = severityRegexp.ReplaceAllStringFunc(content, strings.ToUpper)

	return content
}

// ParseFile parses an OFX/QFX file. Savings and current accounts come through
// as assets; credit card statements are skipped because card debt is not a
// holding.
func (p *OFXParser) ParseFile(_ context.Context, reader io.Reader, sourceFile string) ([]model.Asset, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	institution := strings.TrimSpace(string(resp.Signon.Org))

	var assets []model.Asset
	skippedCards := 0
	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok {
			continue
		}

		balance, _ := stmt.BalAmt.Float64()
		if balance < 0 {
			slog.Warn("Skipping overdrawn account",
				"file", sourceFile,
				"account", string(stmt.BankAcctFrom.AcctID))
			continue
		}

		assets = append(assets, model.Asset{
			Name:         accountName(institution, string(stmt.BankAcctFrom.AcctID)),
			CurrentValue: balance,
			SourceFile:   sourceFile,
			AssetType:    "bank_account",
		})
	}
	for _, msg := range resp.CreditCard {
		if _, ok := msg.(*ofxgo.CCStatementResponse); ok {
			skippedCards++
		}
	}

	if len(assets) == 0 {
		return nil, common.ErrNoAssets
	}

	slog.Info("Parsed OFX statement",
		"file", sourceFile,
		"accounts", len(assets),
		"skipped_cards", skippedCards)

	return assets, nil
}

// accountName builds a stable display name for a bank account, masking all but
// the last four digits of the account number.
func accountName(institution, acctID string) string {
	masked := acctID
	if len(masked) > 4 {
		masked = "xxxx" + masked[len(masked)-4:]
	}
	if institution == "" {
		institution = "Bank"
	}
	return fmt.Sprintf("%s savings account %s", institution, masked)
}
