package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/avolkov/core-admin/internal/logger"
	"github.com/avolkov/core-admin/models"
	"github.com/jackc/pgerrcode"
)

// psql builds queries with PostgreSQL-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// DefaultMenuPageSize is the page size applied when a search carries no
// explicit limit. The HTTP layer reports it as the effective limit.
const DefaultMenuPageSize = 50

// menuRepository is the PostgreSQL-backed implementation of [MenuRepository].
// It owns all reads and writes of the "menus" table, including the recursive
// queries the catalog service uses for depth and subtree computations.
type menuRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewMenuRepository constructs a [MenuRepository] backed by the provided
// database connection and logger.
func NewMenuRepository(db *DB, logger *logger.Logger) MenuRepository {
	logger.Debug().Msg("creating menu repository")
	return &menuRepository{
		db:     db,
		logger: logger,
	}
}

func scanMenu(row interface{ Scan(dest ...any) error }) (models.MenuNode, error) {
	var m models.MenuNode
	err := row.Scan(
		&m.MenuNo,
		&m.UpperMenuNo,
		&m.MenuOrder,
		&m.MenuName,
		&m.ProgramFileName,
		&m.DisplayFlag,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.UpdatedAt,
		&m.UpdatedBy,
	)
	return m, err
}

func (r *menuRepository) scanMenus(rows *sql.Rows) ([]models.MenuNode, error) {
	defer rows.Close()

	nodes := make([]models.MenuNode, 0, 32)
	for rows.Next() {
		node, err := scanMenu(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		nodes = append(nodes, node)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return nodes, nil
}

// Get retrieves one node by menu_no; [ErrMenuNotFound] when absent.
func (r *menuRepository) Get(ctx context.Context, menuNo string) (models.MenuNode, error) {
	log := logger.FromContext(ctx)

	node, err := scanMenu(r.db.QueryRowContext(ctx, getMenu, menuNo))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.MenuNode{}, ErrMenuNotFound
		}

		log.Err(err).Str("func", "*menuRepository.Get").Str("menu_no", menuNo).Msg("error loading menu")
		return models.MenuNode{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return node, nil
}

// ListChildren returns the direct children of upperMenuNo ordered by
// menu_order; nil lists the roots.
func (r *menuRepository) ListChildren(ctx context.Context, upperMenuNo *string) ([]models.MenuNode, error) {
	log := logger.FromContext(ctx)

	var (
		rows *sql.Rows
		err  error
	)
	if upperMenuNo == nil {
		rows, err = r.db.QueryContext(ctx, listRootMenus)
	} else {
		rows, err = r.db.QueryContext(ctx, listChildMenus, *upperMenuNo)
	}
	if err != nil {
		log.Err(err).Str("func", "*menuRepository.ListChildren").Msg("error listing children")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return r.scanMenus(rows)
}

// Search returns a filtered page of the catalog and the total match count.
// The filter is translated into a dynamic WHERE clause.
func (r *menuRepository) Search(ctx context.Context, filter models.MenuFilter) ([]models.MenuNode, int, error) {
	log := logger.FromContext(ctx)

	base := psql.Select(
		"menu_no", "upper_menu_no", "menu_order", "menu_name", "program_file_name", "display_flag",
		"created_at", "created_by", "updated_at", "updated_by",
	).From("menus")
	count := psql.Select("COUNT(*)").From("menus")

	if filter.NameContains != "" {
		cond := sq.ILike{"menu_name": "%" + filter.NameContains + "%"}
		base = base.Where(cond)
		count = count.Where(cond)
	}
	if filter.UpperMenuNo != nil {
		cond := sq.Eq{"upper_menu_no": *filter.UpperMenuNo}
		base = base.Where(cond)
		count = count.Where(cond)
	}
	if filter.DisplayOnly {
		cond := sq.Eq{"display_flag": true}
		base = base.Where(cond)
		count = count.Where(cond)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultMenuPageSize
	}
	base = base.
		OrderBy("upper_menu_no NULLS FIRST", "menu_order", "menu_no").
		Limit(uint64(limit)).
		Offset(uint64(max(filter.Offset, 0)))

	countQuery, countArgs, err := count.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*menuRepository.Search").Msg("error counting menus")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	query, args, err := base.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*menuRepository.Search").Msg("error searching menus")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	nodes, err := r.scanMenus(rows)
	if err != nil {
		return nil, 0, err
	}

	return nodes, total, nil
}

// All returns the whole catalog ordered parent-first.
func (r *menuRepository) All(ctx context.Context) ([]models.MenuNode, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listAllMenus)
	if err != nil {
		log.Err(err).Str("func", "*menuRepository.All").Msg("error listing menus")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return r.scanMenus(rows)
}

// Create inserts one node.
//
// Error handling:
//   - unique_violation (23505) → [ErrMenuAlreadyExists].
//   - foreign_key_violation (23503) → [ErrParentMenuMissing].
func (r *menuRepository) Create(ctx context.Context, node models.MenuNode) (models.MenuNode, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createMenu,
		node.MenuNo, node.UpperMenuNo, node.MenuOrder, node.MenuName,
		node.ProgramFileName, node.DisplayFlag, node.CreatedBy)

	created, err := scanMenu(row)
	if err != nil {
		log.Err(err).Str("func", "*menuRepository.Create").Str("menu_no", node.MenuNo).Msg("error creating menu")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.MenuNode{}, ErrMenuAlreadyExists
		case pgerrcode.ForeignKeyViolation:
			return models.MenuNode{}, ErrParentMenuMissing
		default:
			return models.MenuNode{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// Update applies a partial patch built dynamically from the non-nil fields.
func (r *menuRepository) Update(ctx context.Context, menuNo string, patch models.MenuPatch, updatedBy string) (models.MenuNode, error) {
	log := logger.FromContext(ctx)

	builder := psql.Update("menus").
		Set("updated_at", sq.Expr("NOW()")).
		Set("updated_by", updatedBy).
		Where(sq.Eq{"menu_no": menuNo}).
		Suffix("RETURNING " + menuColumns)

	if patch.UpperMenuNo != nil {
		if *patch.UpperMenuNo == "" {
			builder = builder.Set("upper_menu_no", nil)
		} else {
			builder = builder.Set("upper_menu_no", *patch.UpperMenuNo)
		}
	}
	if patch.MenuOrder != nil {
		builder = builder.Set("menu_order", *patch.MenuOrder)
	}
	if patch.MenuName != nil {
		builder = builder.Set("menu_name", *patch.MenuName)
	}
	if patch.ProgramFileName != nil {
		builder = builder.Set("program_file_name", *patch.ProgramFileName)
	}
	if patch.DisplayFlag != nil {
		builder = builder.Set("display_flag", *patch.DisplayFlag)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return models.MenuNode{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanMenu(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.MenuNode{}, ErrMenuNotFound
		}

		log.Err(err).Str("func", "*menuRepository.Update").Str("menu_no", menuNo).Msg("error updating menu")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.MenuNode{}, ErrParentMenuMissing
		default:
			return models.MenuNode{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return updated, nil
}

// Delete removes one node after verifying, inside the same transaction, that
// it has no children.
func (r *menuRepository) Delete(ctx context.Context, menuNo string) error {
	log := logger.FromContext(ctx)

	err := r.db.withinTx(ctx, func(tx *sql.Tx) error {
		var children int
		if err := tx.QueryRowContext(ctx, countChildMenus, menuNo).Scan(&children); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		if children > 0 {
			return ErrMenuHasChildren
		}

		res, err := tx.ExecContext(ctx, deleteMenu, menuNo)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return ErrMenuNotFound
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*menuRepository.Delete").Str("menu_no", menuNo).Msg("error deleting menu")
		return err
	}

	return nil
}

// Reorder re-assigns menu_order among the direct children of upperMenuNo in
// one transaction; position in orderedIDs becomes the new menu_order.
func (r *menuRepository) Reorder(ctx context.Context, upperMenuNo *string, orderedIDs []string) error {
	log := logger.FromContext(ctx)

	err := r.db.withinTx(ctx, func(tx *sql.Tx) error {
		for position, menuNo := range orderedIDs {
			builder := psql.Update("menus").
				Set("menu_order", position).
				Set("updated_at", sq.Expr("NOW()")).
				Where(sq.Eq{"menu_no": menuNo})
			if upperMenuNo == nil {
				builder = builder.Where(sq.Eq{"upper_menu_no": nil})
			} else {
				builder = builder.Where(sq.Eq{"upper_menu_no": *upperMenuNo})
			}

			query, args, err := builder.ToSql()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}

			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			if affected, err := res.RowsAffected(); err == nil && affected == 0 {
				return ErrMenuNotFound
			}
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*menuRepository.Reorder").Msg("error reordering menus")
		return err
	}

	return nil
}

// Depth returns the node's depth counting root as 0; [ErrMenuNotFound] when
// the node does not exist.
func (r *menuRepository) Depth(ctx context.Context, menuNo string) (int, error) {
	log := logger.FromContext(ctx)

	var depth sql.NullInt64
	if err := r.db.QueryRowContext(ctx, menuDepth, menuNo).Scan(&depth); err != nil {
		log.Err(err).Str("func", "*menuRepository.Depth").Str("menu_no", menuNo).Msg("error computing depth")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if !depth.Valid {
		return 0, ErrMenuNotFound
	}

	return int(depth.Int64), nil
}

// Subtree returns the node and all its descendants in breadth-first order;
// [ErrMenuNotFound] when the root does not exist.
func (r *menuRepository) Subtree(ctx context.Context, rootMenuNo string) ([]models.MenuNode, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, menuSubtree, rootMenuNo)
	if err != nil {
		log.Err(err).Str("func", "*menuRepository.Subtree").Str("menu_no", rootMenuNo).Msg("error loading subtree")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	nodes, err := r.scanMenus(rows)
	if err != nil {
		return nil, err
	}

	if len(nodes) == 0 {
		return nil, ErrMenuNotFound
	}

	return nodes, nil
}

// MaxSiblingOrder returns the highest menu_order among the direct children
// of upperMenuNo, or -1 when there are none.
func (r *menuRepository) MaxSiblingOrder(ctx context.Context, upperMenuNo *string) (int, error) {
	log := logger.FromContext(ctx)

	var (
		maxOrder int
		err      error
	)
	if upperMenuNo == nil {
		err = r.db.QueryRowContext(ctx, maxSiblingOrderRoot).Scan(&maxOrder)
	} else {
		err = r.db.QueryRowContext(ctx, maxSiblingOrderChild, *upperMenuNo).Scan(&maxOrder)
	}
	if err != nil {
		log.Err(err).Str("func", "*menuRepository.MaxSiblingOrder").Msg("error reading sibling order")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return maxOrder, nil
}

// InsertSubtree inserts the prepared nodes in order inside one transaction.
// Callers pass nodes parent-before-child; the whole insert rolls back on the
// first failure so partial trees are never observable.
func (r *menuRepository) InsertSubtree(ctx context.Context, nodes []models.MenuNode) error {
	log := logger.FromContext(ctx)

	err := r.db.withinTx(ctx, func(tx *sql.Tx) error {
		for _, node := range nodes {
			_, err := tx.ExecContext(ctx, insertMenuNode,
				node.MenuNo, node.UpperMenuNo, node.MenuOrder, node.MenuName,
				node.ProgramFileName, node.DisplayFlag, node.CreatedBy)
			if err != nil {
				switch postgresError(err) {
				case pgerrcode.UniqueViolation:
					return ErrMenuAlreadyExists
				case pgerrcode.ForeignKeyViolation:
					return ErrParentMenuMissing
				default:
					return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
				}
			}
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*menuRepository.InsertSubtree").Int("nodes", len(nodes)).Msg("error inserting subtree")
		return err
	}

	return nil
}
