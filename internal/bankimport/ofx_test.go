package bankimport

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>1500.00
<FITID>2024012001
<NAME>PAYROLL DEPOSIT
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024012501
<NAME>POS PURCHASE WHOLE FOODS MARKET
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestOFXParser_Parse(t *testing.T) {
	parser := NewOFXParser()
	txns, err := parser.Parse(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, txns, 3)

	assert.Equal(t, "STARBUCKS STORE #1234", txns[0].Description)
	assert.InDelta(t, -25.50, txns[0].Amount, 0.001)
	assert.Equal(t, 2024, txns[0].TransactionDate.Year())
	assert.Equal(t, time.January, txns[0].TransactionDate.Month())
	assert.NotEmpty(t, txns[0].Hash)

	// Credits keep their positive sign.
	assert.InDelta(t, 1500.00, txns[1].Amount, 0.001)

	// POS prefix stripped from the description.
	assert.Equal(t, "WHOLE FOODS MARKET", txns[2].Description)
}

func TestOFXParser_HashesDistinct(t *testing.T) {
	parser := NewOFXParser()
	txns, err := parser.Parse(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, txn := range txns {
		assert.False(t, seen[txn.Hash], "duplicate hash %s", txn.Hash)
		seen[txn.Hash] = true
	}
}

func TestOFXParser_PreprocessFixesSGML(t *testing.T) {
	parser := NewOFXParser()

	// Mixed-case severity and a tag missing its closing bracket both parse
	// after preprocessing.
	mangled := strings.Replace(sampleBankOFX, "<SEVERITY>INFO", "<SEVERITY>Info</SEVERITY", 1)
	fixed := parser.preprocess(mangled)
	assert.Contains(t, fixed, "<SEVERITY>INFO</SEVERITY")

	missingBracket := "  <BANKMSGSRSV1"
	assert.Equal(t, "  <BANKMSGSRSV1>", parser.preprocess(missingBracket))
}

func TestOFXParser_InvalidFile(t *testing.T) {
	parser := NewOFXParser()
	_, err := parser.Parse(context.Background(), strings.NewReader("not an ofx file"))
	assert.Error(t, err)
}

func TestOFXParser_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	parser := NewOFXParser()
	_, err := parser.Parse(ctx, strings.NewReader(sampleBankOFX))
	assert.ErrorIs(t, err, context.Canceled)
}
