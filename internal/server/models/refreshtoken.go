package models

import "time"

// RefreshToken is the server-side record of an issued refresh token. A
// token is only honoured while its row exists.
type RefreshToken struct {
	UserID  string
	Token   string
	Expires time.Time
}
