package models

import "time"

// MenuNode is a single entry of the hierarchical menu catalog.
//
// Nodes form a forest: UpperMenuNo is nil for roots and otherwise references
// the parent's MenuNo. The parent relation is acyclic and every node's depth
// (root = 0) stays within the configured bound; both invariants are enforced
// at write time by the menu catalog service.
type MenuNode struct {
	// MenuNo is the unique identifier of the node across the whole catalog.
	MenuNo string `json:"menu_no"`

	// UpperMenuNo references the parent node, nil for roots.
	UpperMenuNo *string `json:"upper_menu_no"`

	// MenuOrder positions the node among its siblings.
	MenuOrder int `json:"menu_order"`

	MenuName        string `json:"menu_name"`
	ProgramFileName string `json:"program_file_name"`
	DisplayFlag     bool   `json:"display_flag"`

	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by"`
}

// IsRoot reports whether the node has no parent.
func (m MenuNode) IsRoot() bool {
	return m.UpperMenuNo == nil || *m.UpperMenuNo == ""
}

// TableName returns the name of the database table
// associated with the MenuNode model.
func (m MenuNode) TableName() string {
	return "menus"
}

// MenuPatch describes a partial update of a menu node. Nil fields are left
// unchanged. Setting UpperMenuNo moves the node (with its subtree) under a
// new parent; the move is validated against the cycle and depth invariants.
type MenuPatch struct {
	UpperMenuNo     *string `json:"upper_menu_no,omitempty"`
	MenuOrder       *int    `json:"menu_order,omitempty"`
	MenuName        *string `json:"menu_name,omitempty"`
	ProgramFileName *string `json:"program_file_name,omitempty"`
	DisplayFlag     *bool   `json:"display_flag,omitempty"`
}

// Empty reports whether the patch carries no changes.
func (p MenuPatch) Empty() bool {
	return p.UpperMenuNo == nil && p.MenuOrder == nil && p.MenuName == nil &&
		p.ProgramFileName == nil && p.DisplayFlag == nil
}

// MenuFilter narrows menu list queries. Zero values mean "no restriction".
type MenuFilter struct {
	// NameContains matches menu names by case-insensitive substring.
	NameContains string

	// UpperMenuNo restricts the result to direct children of the given node.
	UpperMenuNo *string

	// DisplayOnly, when true, excludes hidden nodes.
	DisplayOnly bool

	// Limit and Offset paginate the result. Limit <= 0 means the server
	// default page size.
	Limit  int
	Offset int
}

// MenuTreeNode is a menu node with its resolved children, used for the
// visibility projection returned to the UI. Children are ordered by
// MenuOrder at every level.
type MenuTreeNode struct {
	MenuNode
	Children []*MenuTreeNode `json:"children"`
}
