package models

// AdminUser represents a back-office user allowed to read leads
type AdminUser struct {
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Not serialized
}
