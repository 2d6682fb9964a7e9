package store

import (
	"context"

	"github.com/avolkov/core-admin/models"
)

// UserRepository persists portal accounts and the login lockout state.
type UserRepository interface {
	// CreateUser inserts a new account and returns the persisted record with
	// server-assigned fields (EssentialID, CreatedAt).
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUserID loads one account by its login identifier.
	FindUserByUserID(ctx context.Context, userID string) (models.User, error)

	// RecordLoginFailure increments the account's lock counter inside a
	// row-locked transaction and flips the lock flag once the counter
	// reaches maxFails. Returns the updated account.
	RecordLoginFailure(ctx context.Context, userID string, maxFails int) (models.User, error)

	// ResetLockState zeroes the lock counter and unlocks the account.
	ResetLockState(ctx context.Context, userID, updatedBy string) error

	// UpdatePassword stores a new password digest and resets the lock state.
	UpdatePassword(ctx context.Context, userID, passwordHash, updatedBy string) error
}

// MenuRepository persists the hierarchical menu catalog.
type MenuRepository interface {
	Get(ctx context.Context, menuNo string) (models.MenuNode, error)

	// ListChildren returns the direct children of upperMenuNo ordered by
	// menu_order; nil lists the roots.
	ListChildren(ctx context.Context, upperMenuNo *string) ([]models.MenuNode, error)

	// Search returns a filtered page of the catalog and the total match count.
	Search(ctx context.Context, filter models.MenuFilter) ([]models.MenuNode, int, error)

	// All returns the whole catalog ordered parent-first, menu_order within
	// siblings. Used by the visibility projection.
	All(ctx context.Context) ([]models.MenuNode, error)

	Create(ctx context.Context, node models.MenuNode) (models.MenuNode, error)

	// Update applies a partial patch and returns the updated node.
	Update(ctx context.Context, menuNo string, patch models.MenuPatch, updatedBy string) (models.MenuNode, error)

	// Delete removes a leaf node; ErrMenuHasChildren when children exist.
	Delete(ctx context.Context, menuNo string) error

	// Reorder atomically re-assigns menu_order among the direct children of
	// upperMenuNo following the given id order.
	Reorder(ctx context.Context, upperMenuNo *string, orderedIDs []string) error

	// Depth returns the node's depth counting root as 0.
	Depth(ctx context.Context, menuNo string) (int, error)

	// Subtree returns the node and all its descendants in breadth-first
	// order (every parent precedes its children).
	Subtree(ctx context.Context, rootMenuNo string) ([]models.MenuNode, error)

	// MaxSiblingOrder returns the highest menu_order among the direct
	// children of upperMenuNo, or -1 when there are none.
	MaxSiblingOrder(ctx context.Context, upperMenuNo *string) (int, error)

	// InsertSubtree inserts the nodes in order inside one transaction.
	// Either every node is inserted or none; a menu_no collision surfaces
	// as ErrMenuAlreadyExists.
	InsertSubtree(ctx context.Context, nodes []models.MenuNode) error
}

// GrantRepository persists group-to-menu grants.
type GrantRepository interface {
	// MenusForGroup returns the menu_no set granted to the group.
	MenusForGroup(ctx context.Context, groupID string) ([]string, error)

	// ReplaceForGroup atomically replaces the group's grant set.
	ReplaceForGroup(ctx context.Context, groupID string, menuNos []string) error
}

// AuditRepository appends audit events. Insert failures are reported to the
// caller; the audit sink decides that they never propagate further.
type AuditRepository interface {
	Insert(ctx context.Context, event models.AuditEvent) error
}
