package models

// LoginRequest is the body of POST /api/v1/auth/login.
type LoginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// ChangePasswordRequest is the body of POST /api/v1/auth/password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// CreateUserRequest is the body of POST /api/v1/users.
type CreateUserRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	OrgID    string `json:"org_id"`
	GroupID  string `json:"group_id"`
}

// CopyMenuRequest is the body of POST /api/v1/menus/copy.
type CopyMenuRequest struct {
	SourceMenuID string  `json:"source_menu_id"`
	NewMenuID    string  `json:"new_menu_id"`
	NewMenuNm    string  `json:"new_menu_nm"`
	NewParentID  *string `json:"new_parent_id"`
	CopyChildren bool    `json:"copy_children"`

	// NewMenuOrder overrides the position of the copied root among its new
	// siblings; when nil the copy appends after the last sibling.
	NewMenuOrder *int `json:"new_menu_order,omitempty"`
}

// ReorderMenusRequest is the body of PUT /api/v1/menus/{id}/reorder.
// OrderedIDs lists every direct child of the parent in its new order.
type ReorderMenusRequest struct {
	OrderedIDs []string `json:"ordered_ids"`
}

// ReplaceGrantsRequest is the body of PUT /api/v1/groups/{id}/menus.
// MenuNos becomes the complete grant set of the group.
type ReplaceGrantsRequest struct {
	MenuNos []string `json:"menu_nos"`
}

// MenuListResponse is a paginated menu listing.
type MenuListResponse struct {
	Items  []MenuNode `json:"items"`
	Total  int        `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

// ErrorResponse is the uniform error body of the API.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
