package storage

import (
	"database/sql"
	"fmt"

	"github.com/joe5h/tally/internal/common"
)

// requireRowAffected turns a zero-row update or delete into ErrNotFound.
func requireRowAffected(result sql.Result, entity, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, common.ErrNotFound)
	}
	return nil
}
