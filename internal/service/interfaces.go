package service

import (
	"context"

	"github.com/avolkov/core-admin/models"
)

// TokenService mints and validates the signed bearer tokens of the API.
// Tokens are stateless; there is no server-side token store.
type TokenService interface {
	// MintPair issues an access/refresh token pair for the user.
	MintPair(ctx context.Context, user models.User) (models.TokenPair, error)

	// Validate verifies the signature, issuer, expiry, and type tag of a
	// token. Every failure is normalised to ErrTokenIsExpiredOrInvalid.
	Validate(ctx context.Context, tokenString, expectedType string) (*models.TokenClaims, error)

	// DecodeUnsafe extracts claims without verifying the signature.
	// Inspection only; never used for access control.
	DecodeUnsafe(tokenString string) (*models.TokenClaims, error)
}

// AuthService is the user gate: it authenticates credentials, maintains the
// lockout counter, and drives the token lifecycle.
type AuthService interface {
	// Authenticate checks the credentials against the stored digest and
	// advances the lockout state machine. Every branch emits an audit record.
	Authenticate(ctx context.Context, userID, password string) (models.User, error)

	// IssueTokens mints a token pair for an already-authenticated user.
	IssueTokens(ctx context.Context, user models.User) (models.TokenPair, error)

	// Refresh validates a refresh token, re-checks the account state, and
	// mints a fresh pair. Refresh on a suspended or locked user fails.
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)

	// ChangePassword verifies the old password, applies the policy to the
	// new one, persists the new digest, and resets the lock counter.
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error

	// CreateUser registers a new account with a hashed password.
	CreateUser(ctx context.Context, req models.CreateUserRequest, createdBy string) (models.User, error)

	// Unlock clears the lockout state of an account (admin operation).
	Unlock(ctx context.Context, userID, updatedBy string) error
}

// MenuService is the menu catalog: CRUD over menu nodes with tree-integrity
// enforcement and the bounded subtree copy.
type MenuService interface {
	Get(ctx context.Context, menuNo string) (models.MenuNode, error)
	ListChildren(ctx context.Context, upperMenuNo *string) ([]models.MenuNode, error)
	Search(ctx context.Context, filter models.MenuFilter) ([]models.MenuNode, int, error)

	Create(ctx context.Context, node models.MenuNode, createdBy string) (models.MenuNode, error)
	Update(ctx context.Context, menuNo string, patch models.MenuPatch, updatedBy string) (models.MenuNode, error)
	Delete(ctx context.Context, menuNo, deletedBy string) error
	Reorder(ctx context.Context, upperMenuNo *string, orderedIDs []string, updatedBy string) error

	// CopySubtree clones the source node (and optionally its descendants)
	// under a new parent with freshly allocated ids. The copy is atomic:
	// either the whole new subtree exists afterwards or nothing does.
	CopySubtree(ctx context.Context, req models.CopyMenuRequest, createdBy string) (models.MenuNode, error)
}

// AccessService is the authorization projector: it resolves which menus a
// caller may see via the group grants, and manages those grants.
type AccessService interface {
	// VisibleMenus returns the sub-forest of the catalog granted to the
	// caller's group, closed under ancestors and ordered by menu_order.
	// Members of the admin group see the whole catalog.
	VisibleMenus(ctx context.Context, caller *models.TokenClaims) ([]*models.MenuTreeNode, error)

	// CanAccess reports whether the caller may see the given menu.
	CanAccess(ctx context.Context, caller *models.TokenClaims, menuNo string) (bool, error)

	// GrantedMenus returns the raw grant set of a group.
	GrantedMenus(ctx context.Context, groupID string) ([]string, error)

	// ReplaceGrants atomically replaces a group's grant set.
	ReplaceGrants(ctx context.Context, groupID string, menuNos []string, updatedBy string) error
}

// AuditSink appends records of login attempts and sensitive operations.
// Writes are best-effort and never fail the caller; Close blocks until all
// pending writes are durable.
type AuditSink interface {
	Record(ctx context.Context, kind, subject, outcome, details string)
	Close()
}
