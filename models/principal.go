package models

import "strings"

// Principal is the caller identity resolved once at the auth boundary.
// It papers over the two account stores: staff come from User, hotel
// customers from Guest (role "user"). Handlers only ever see this.
type Principal struct {
	ID          uint   `json:"id"`
	DisplayName string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	IsActive    bool   `json:"isActive"`
}

func (p Principal) IsStaff() bool {
	return IsStaffRole(p.Role)
}

// CanManageBookings is the role tier allowed to cancel any reservation.
func (p Principal) CanManageBookings() bool {
	return p.Role == RoleAdmin || p.Role == RoleManager
}

// OwnsEmail matches the principal against a guest email, case-insensitively.
func (p Principal) OwnsEmail(email string) bool {
	return p.Email != "" && strings.EqualFold(p.Email, email)
}

func PrincipalFromUser(u *User) Principal {
	return Principal{
		ID:          u.ID,
		DisplayName: u.Name,
		Email:       strings.ToLower(u.Email),
		Role:        u.Role,
		IsActive:    u.IsActive,
	}
}

func PrincipalFromGuest(g *Guest) Principal {
	return Principal{
		ID:          g.ID,
		DisplayName: g.FullName(),
		Email:       strings.ToLower(g.Email),
		Role:        RoleGuest,
		IsActive:    true,
	}
}
