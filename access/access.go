// Package access holds the tenant authorization rules shared by every
// restaurant-scoped handler. Handlers fetch the resource first and check
// access second, so callers can distinguish 404 from 403.
package access

import "restaurant-ordering-api/models"

// CanManage grants access to a restaurant's menu items, orders and
// profile if the caller is a super-admin, owns the restaurant, or the
// restaurant is approved. The approved clause lets any authenticated
// user act on an approved restaurant regardless of ownership.
func CanManage(user *models.User, restaurant *models.Restaurant) bool {
	if user == nil {
		return false
	}
	if user.Role == models.RoleSuperAdmin {
		return true
	}
	if restaurant.OwnerID == user.ID {
		return true
	}
	return restaurant.Approved
}

// IsOwnerOrSuper is the stricter rule used for table management: only
// the owner or a super-admin, with no approved bypass.
func IsOwnerOrSuper(user *models.User, restaurant *models.Restaurant) bool {
	if user == nil {
		return false
	}
	return user.Role == models.RoleSuperAdmin || restaurant.OwnerID == user.ID
}

// CanViewAnalytics limits admins to the restaurant they are bound to.
// Other authenticated roles pass through.
func CanViewAnalytics(user *models.User, restaurantID string) bool {
	if user == nil {
		return false
	}
	if user.Role != models.RoleAdmin {
		return true
	}
	return user.RestaurantID != nil && *user.RestaurantID == restaurantID
}
