package controllers

import "github.com/dayflowhq/dayflow/internal/entity"

// Access policy. Pure decision functions with no side effects: the
// handlers call these before touching any store.

// CanViewOrEdit reports whether the principal may read or modify a
// resource owned by ownerID. Admins may touch anything, everyone else
// only their own records.
func CanViewOrEdit(claims *entity.Claims, ownerID string) bool {
	if claims == nil {
		return false
	}
	return claims.Role == entity.RoleAdmin || claims.UserID == ownerID
}

// CanAdminister reports whether the principal holds the admin role.
func CanAdminister(claims *entity.Claims) bool {
	return claims != nil && claims.Role == entity.RoleAdmin
}

// FilterUpdate turns an update payload into column/value lists, applying
// the per-role allow-list. Protected fields a role may not set are
// silently dropped rather than rejected, so a non-admin update that
// includes status still succeeds with status ignored.
func FilterUpdate(role string, req entity.UpdateUserRequest) ([]string, []any) {
	var cols []string
	var vals []any

	add := func(col string, val *string) {
		if val != nil {
			cols = append(cols, col)
			vals = append(vals, *val)
		}
	}

	add("name", req.Name)
	add("phone", req.Phone)
	add("department", req.Department)
	add("designation", req.Designation)
	if role == entity.RoleAdmin {
		add("status", req.Status)
	}

	return cols, vals
}
