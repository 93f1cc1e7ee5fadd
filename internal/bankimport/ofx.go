// Package bankimport parses bank statement files (OFX/QFX and XLSX exports)
// into transactions ready for deduplicated storage.
package bankimport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/joe5h/tally/internal/model"
)

// OFXParser parses OFX/QFX statement downloads.
type OFXParser struct{}

// NewOFXParser creates an OFX parser.
func NewOFXParser() *OFXParser {
	return &OFXParser{}
}

// preprocess fixes common formatting issues in bank-produced OFX files.
func (p *OFXParser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// Mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML-style files sometimes drop the closing angle bracket on a tag
	// that ends its line.
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// Parse reads an OFX/QFX file and returns its transactions. Amounts keep the
// OFX sign convention: debits negative, credits positive.
func (p *OFXParser) Parse(ctx context.Context, reader io.Reader) ([]model.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			transactions = append(transactions, p.statementTransactions(stmt.BankTranList)...)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			transactions = append(transactions, p.statementTransactions(stmt.BankTranList)...)
		}
	}

	slog.Info("parsed OFX file",
		"transactions", len(transactions),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

func (p *OFXParser) statementTransactions(list *ofxgo.TransactionList) []model.Transaction {
	if list == nil {
		return nil
	}

	var transactions []model.Transaction
	for _, ofxTx := range list.Transactions {
		transactions = append(transactions, p.convert(ofxTx))
	}
	return transactions
}

func (p *OFXParser) convert(ofxTx ofxgo.Transaction) model.Transaction {
	amount, _ := ofxTx.TrnAmt.Float64()

	txn := model.Transaction{
		TransactionDate: ofxTx.DtPosted.Time,
		Description:     extractMerchantName(ofxTx),
		Amount:          amount,
	}
	if ofxTx.Memo != "" && string(ofxTx.Memo) != txn.Description {
		txn.DetailedDescription = string(ofxTx.Memo)
	}
	txn.Hash = txn.GenerateHash()
	return txn
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func extractMerchantName(tx ofxgo.Transaction) string {
	// PAYEE carries the cleanest merchant name when present.
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading "MM/DD " date patterns add nothing to the description.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
	}

	upperName := strings.ToUpper(name)
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}
