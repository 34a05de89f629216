package domain

// Permission is a named capability granted to the caller by the platform
type Permission string

const (
	// PermissionManageReservations даёт право управлять чужими записями:
	// видеть их, менять статусы и создавать записи от имени клиентов
	PermissionManageReservations Permission = "manage_reservations"
)

// AuthContext carries the caller identity and granted permissions
// through a single request. Identity and authorization are resolved by
// the platform gateway; this service only interprets the result.
type AuthContext struct {
	UserID      int64  // 0 = неаутентифицированный вызов
	GuestKey    string // ключ анонимной сессии для черновиков без логина
	Permissions []Permission
}

// IsAuthenticated returns true if the caller is a logged-in user
func (a AuthContext) IsAuthenticated() bool {
	return a.UserID > 0
}

// Can reports whether the caller holds the given permission
func (a AuthContext) Can(p Permission) bool {
	for _, granted := range a.Permissions {
		if granted == p {
			return true
		}
	}
	return false
}

// IsManager returns true if the caller can manage reservations
func (a AuthContext) IsManager() bool {
	return a.Can(PermissionManageReservations)
}
