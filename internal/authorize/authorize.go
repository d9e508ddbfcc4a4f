// Package authorize holds the pure role-based access decision. It has
// no dependencies beyond the user model and is trivially testable.
package authorize

import "catalogue/internal/models"

// Action is a coarse-grained operation class subject to authorization.
type Action string

const (
	// ActionCatalogWrite covers create/update/delete of products and
	// tags, including tag-association changes.
	ActionCatalogWrite Action = "catalog:write"
	// ActionUserList covers listing every account.
	ActionUserList Action = "users:list"
	// ActionRoleGrant covers assigning a non-default role at signup.
	ActionRoleGrant Action = "users:grant-role"
)

// Allow reports whether user may perform action. Reads are never routed
// through here; every gated action currently requires the admin role.
// A nil user (unauthenticated caller) is always denied.
func Allow(user *models.User, action Action) bool {
	if user == nil {
		return false
	}
	switch action {
	case ActionCatalogWrite, ActionUserList, ActionRoleGrant:
		return user.Role == models.RoleAdmin
	default:
		return false
	}
}
