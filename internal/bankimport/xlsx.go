package bankimport

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joe5h/tally/internal/model"
)

// xlsx exports vary in where the header row sits, so columns are located by
// name rather than position. Recognized header names per field:
var (
	xlsxDateHeaders   = []string{"Date", "Transaction Date", "Posted Date"}
	xlsxDescHeaders   = []string{"Description", "Text", "Details", "Memo"}
	xlsxAmountHeaders = []string{"Amount", "Belopp"}
)

var xlsxDateLayouts = []string{"2006-01-02", "01/02/2006", "1/2/2006", "2006/01/02"}

// ParseXLSX reads transactions from a bank's Excel export. Rows that fail to
// parse are skipped rather than failing the whole file; banks pad their
// exports with summary and balance rows.
func ParseXLSX(path string) ([]model.Transaction, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in %s", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	dateCol, descCol, amountCol := -1, -1, -1
	dataStart := -1
	for i, row := range rows {
		for j, cell := range row {
			cell = strings.TrimSpace(cell)
			switch {
			case matchesHeader(cell, xlsxDateHeaders):
				dateCol = j
			case matchesHeader(cell, xlsxDescHeaders):
				descCol = j
			case matchesHeader(cell, xlsxAmountHeaders):
				amountCol = j
			}
		}
		if dateCol >= 0 && descCol >= 0 && amountCol >= 0 {
			dataStart = i + 1
			break
		}
	}
	if dataStart < 0 {
		return nil, fmt.Errorf("could not find date, description and amount columns in %s", path)
	}

	var transactions []model.Transaction
	for i := dataStart; i < len(rows); i++ {
		row := rows[i]
		maxCol := dateCol
		if descCol > maxCol {
			maxCol = descCol
		}
		if amountCol > maxCol {
			maxCol = amountCol
		}
		if len(row) <= maxCol {
			continue
		}

		dateStr := strings.TrimSpace(row[dateCol])
		desc := strings.TrimSpace(row[descCol])
		amountStr := strings.TrimSpace(row[amountCol])
		if dateStr == "" || desc == "" || amountStr == "" {
			continue
		}

		date, ok := parseXLSXDate(dateStr)
		if !ok {
			continue
		}

		amountStr = strings.ReplaceAll(amountStr, ",", "")
		amountStr = strings.TrimPrefix(amountStr, "$")
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			continue
		}

		txn := model.Transaction{
			TransactionDate: date,
			Description:     desc,
			Amount:          amount,
		}
		txn.Hash = txn.GenerateHash()
		transactions = append(transactions, txn)
	}

	return transactions, nil
}

func matchesHeader(cell string, candidates []string) bool {
	for _, c := range candidates {
		if strings.EqualFold(cell, c) {
			return true
		}
	}
	return false
}

func parseXLSXDate(s string) (time.Time, bool) {
	for _, layout := range xlsxDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
