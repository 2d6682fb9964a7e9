package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avolkov/core-admin/internal/logger"
	"github.com/jackc/pgerrcode"
)

// grantRepository is the PostgreSQL-backed implementation of
// [GrantRepository], persisting (group_id, menu_no) pairs in the
// "group_menu" table.
type grantRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewGrantRepository constructs a [GrantRepository] backed by the provided
// database connection and logger.
func NewGrantRepository(db *DB, logger *logger.Logger) GrantRepository {
	logger.Debug().Msg("creating grant repository")
	return &grantRepository{
		db:     db,
		logger: logger,
	}
}

// MenusForGroup returns the menu_no set granted to the group. An unknown
// group yields an empty set, not an error.
func (r *grantRepository) MenusForGroup(ctx context.Context, groupID string) ([]string, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, menusForGroup, groupID)
	if err != nil {
		log.Err(err).Str("func", "*grantRepository.MenusForGroup").Str("group_id", groupID).Msg("error listing grants")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	menuNos := make([]string, 0, 16)
	for rows.Next() {
		var menuNo string
		if err := rows.Scan(&menuNo); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		menuNos = append(menuNos, menuNo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return menuNos, nil
}

// ReplaceForGroup atomically replaces the group's grant set: old pairs are
// removed and the new set inserted inside one transaction.
func (r *grantRepository) ReplaceForGroup(ctx context.Context, groupID string, menuNos []string) error {
	log := logger.FromContext(ctx)

	err := r.db.withinTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteGrantsForGroup, groupID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		for _, menuNo := range menuNos {
			if _, err := tx.ExecContext(ctx, insertGrant, groupID, menuNo); err != nil {
				switch postgresError(err) {
				case pgerrcode.ForeignKeyViolation:
					return ErrMenuNotFound
				default:
					return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
				}
			}
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*grantRepository.ReplaceForGroup").Str("group_id", groupID).Msg("error replacing grants")
		return err
	}

	return nil
}
