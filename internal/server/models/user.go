package models

// User is an admin account. Dates are Unix seconds; LastLogin is zero until
// the first successful login.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    int64
	LastLogin    int64
}
