package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Transaction is a single financial transaction. The sign of Amount encodes
// income versus expense together with the referenced transaction type.
type Transaction struct {
	TransactionDate     time.Time
	CreatedAt           time.Time
	ID                  string
	Description         string
	DetailedDescription string
	TypeID              string // optional reference to a TransactionType
	PaymentMethodID     string // optional reference to a PaymentMethod
	Hash                string
	Amount              float64

	// Joined for display.
	TypeName          string
	PaymentMethodName string
}

// GenerateHash produces a content hash used to suppress duplicates when
// importing bank files.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s",
		t.TransactionDate.Format("2006-01-02"),
		t.Amount,
		t.Description)
	sum := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", sum)
}

// TransactionType is a user-defined transaction category lookup row.
type TransactionType struct {
	CreatedAt   time.Time
	ID          string
	Name        string
	Description string
}

// PaymentMethod is a user-defined payment method lookup row.
type PaymentMethod struct {
	CreatedAt   time.Time
	ID          string
	Name        string
	Description string
}
