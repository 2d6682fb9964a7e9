package models

// GroupMenuGrant links a role group to a menu node. Presence of the pair
// means members of the group may see that menu. Pairs are unique.
type GroupMenuGrant struct {
	GroupID string `json:"group_id"`
	MenuNo  string `json:"menu_no"`
}

// TableName returns the name of the database table
// associated with the GroupMenuGrant model.
func (g GroupMenuGrant) TableName() string {
	return "group_menu"
}

// Group is a role bucket referenced by users. Identity only.
type Group struct {
	GroupID   string `json:"group_id"`
	GroupName string `json:"group_name"`
}

// TableName returns the name of the database table
// associated with the Group model.
func (g Group) TableName() string {
	return "groups"
}
