package domain

import "slices"

// Authorize allows the claims when their role is one of allowedRoles. It fails closed:
// a missing role, a non-string role or an empty allow-list yields ErrInsufficientRole.
func Authorize(claims Claims, allowedRoles []string) error {
	role, ok := claims.Role()
	if !ok || !slices.Contains(allowedRoles, role) {
		return ErrInsufficientRole
	}
	return nil
}
