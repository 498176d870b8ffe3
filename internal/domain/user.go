package domain

import "time"

// UserRole represents the role of a user in the system
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleOwner UserRole = "owner"
	RoleAdmin UserRole = "admin"
)

// User represents a registered account.
// An account stays unverified until the emailed OTP code is confirmed;
// unverified accounts cannot log in.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	IsVerified   bool
	OTPCode      *string
	OTPExpiry    *time.Time
	CreatedAt    time.Time
}

// CanManageFacilities returns true if the user may create facilities
func (u *User) CanManageFacilities() bool {
	return u.Role == RoleOwner || u.Role == RoleAdmin
}

// IsAdmin returns true for administrator accounts
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasValidOTP returns true if the stored OTP matches and has not expired
func (u *User) HasValidOTP(code string, now time.Time) bool {
	return u.OTPCode != nil && u.OTPExpiry != nil &&
		*u.OTPCode == code && now.Before(*u.OTPExpiry)
}
