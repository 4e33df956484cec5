package models

// User represents a kitchen staff account, e.g. a Chef or Manager.
type User struct {
	ID           int64  `json:"id" db:"id"`
	LoginID      string `json:"login_id" db:"login_id" binding:"required"`
	PasswordHash string `json:"-" db:"password_hash"` // '-' means don't send in JSON response
	Name         string `json:"name" db:"name"`
	Role         string `json:"role" db:"role"` // e.g. 'Chef', 'Manager'
}
