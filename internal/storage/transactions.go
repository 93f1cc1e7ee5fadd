package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/joe5h/tally/internal/model"
)

// SaveTransaction inserts a single transaction entered through the form
// surface. Hand-entered transactions are not deduplicated.
func (s *SQLiteStorage) SaveTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (
			id, hash, description, amount, transaction_type_id,
			transaction_date, payment_method_id, detailed_description
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, nullable(txn.Hash), txn.Description, txn.Amount,
		nullable(txn.TypeID), txn.TransactionDate,
		nullable(txn.PaymentMethodID), nullable(txn.DetailedDescription))
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	slog.Debug("saved transaction", "id", txn.ID, "amount", txn.Amount)
	return nil
}

// SaveTransactions inserts imported transactions, skipping duplicates by
// content hash. Returns the number of rows actually inserted.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, txns []model.Transaction) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if len(txns) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (
			id, hash, description, amount, transaction_type_id,
			transaction_date, payment_method_id, detailed_description
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for i := range txns {
		txn := &txns[i]
		if err := validateTransaction(txn); err != nil {
			return inserted, fmt.Errorf("transaction at index %d: %w", i, err)
		}
		if txn.ID == "" {
			txn.ID = uuid.NewString()
		}
		if txn.Hash == "" {
			txn.Hash = txn.GenerateHash()
		}

		result, err := stmt.ExecContext(ctx,
			txn.ID, txn.Hash, txn.Description, txn.Amount,
			nullable(txn.TypeID), txn.TransactionDate,
			nullable(txn.PaymentMethodID), nullable(txn.DetailedDescription))
		if err != nil {
			return inserted, fmt.Errorf("failed to save transaction: %w", err)
		}
		if affected, _ := result.RowsAffected(); affected > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transactions: %w", err)
	}

	slog.Info("imported transactions", "total", len(txns), "inserted", inserted)
	return inserted, nil
}

// GetTransactions returns all transactions joined with their type and
// payment method names, newest first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.hash, t.description, t.amount, t.transaction_type_id,
		       t.transaction_date, t.payment_method_id, t.detailed_description,
		       t.created_at, tt.name, pm.name
		FROM transactions t
		LEFT JOIN transaction_types tt ON tt.id = t.transaction_type_id
		LEFT JOIN payment_methods pm ON pm.id = t.payment_method_id
		ORDER BY t.transaction_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var hash, typeID, methodID, detail, typeName, methodName sql.NullString
		if err := rows.Scan(
			&txn.ID, &hash, &txn.Description, &txn.Amount, &typeID,
			&txn.TransactionDate, &methodID, &detail,
			&txn.CreatedAt, &typeName, &methodName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Hash = hash.String
		txn.TypeID = typeID.String
		txn.PaymentMethodID = methodID.String
		txn.DetailedDescription = detail.String
		txn.TypeName = typeName.String
		txn.PaymentMethodName = methodName.String
		txns = append(txns, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	slog.Debug("retrieved transactions", "count", len(txns))
	return txns, nil
}

// DeleteTransaction removes one transaction permanently.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return requireRowAffected(result, "transaction", id)
}

// SaveTransactionType inserts a new transaction type lookup row.
func (s *SQLiteStorage) SaveTransactionType(ctx context.Context, tt *model.TransactionType) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if tt == nil {
		return fmt.Errorf("%w: transaction type", ErrNilParameter)
	}
	if err := validateString(tt.Name, "name"); err != nil {
		return err
	}

	if tt.ID == "" {
		tt.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transaction_types (id, name, description)
		VALUES (?, ?, ?)`, tt.ID, tt.Name, tt.Description)
	if err != nil {
		return fmt.Errorf("failed to save transaction type: %w", err)
	}
	return nil
}

// GetTransactionTypes returns all transaction types ordered by name.
func (s *SQLiteStorage) GetTransactionTypes(ctx context.Context) ([]model.TransactionType, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, created_at
		FROM transaction_types
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction types: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var types []model.TransactionType
	for rows.Next() {
		var tt model.TransactionType
		var description sql.NullString
		if err := rows.Scan(&tt.ID, &tt.Name, &description, &tt.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction type: %w", err)
		}
		tt.Description = description.String
		types = append(types, tt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction types: %w", err)
	}

	return types, nil
}

// DeleteTransactionType removes a lookup row; transactions referencing it
// keep their dangling reference (no cascade).
func (s *SQLiteStorage) DeleteTransactionType(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM transaction_types WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction type: %w", err)
	}

	return requireRowAffected(result, "transaction type", id)
}

// SavePaymentMethod inserts a new payment method lookup row.
func (s *SQLiteStorage) SavePaymentMethod(ctx context.Context, pm *model.PaymentMethod) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if pm == nil {
		return fmt.Errorf("%w: payment method", ErrNilParameter)
	}
	if err := validateString(pm.Name, "name"); err != nil {
		return err
	}

	if pm.ID == "" {
		pm.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payment_methods (id, name, description)
		VALUES (?, ?, ?)`, pm.ID, pm.Name, pm.Description)
	if err != nil {
		return fmt.Errorf("failed to save payment method: %w", err)
	}
	return nil
}

// GetPaymentMethods returns all payment methods ordered by name.
func (s *SQLiteStorage) GetPaymentMethods(ctx context.Context) ([]model.PaymentMethod, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, created_at
		FROM payment_methods
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment methods: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var methods []model.PaymentMethod
	for rows.Next() {
		var pm model.PaymentMethod
		var description sql.NullString
		if err := rows.Scan(&pm.ID, &pm.Name, &description, &pm.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}
		pm.Description = description.String
		methods = append(methods, pm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment methods: %w", err)
	}

	return methods, nil
}

// DeletePaymentMethod removes a lookup row; no cascade.
func (s *SQLiteStorage) DeletePaymentMethod(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM payment_methods WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment method: %w", err)
	}

	return requireRowAffected(result, "payment method", id)
}

// nullable converts an empty string into a SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
