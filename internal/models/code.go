package models

// ResetCode is the active password-reset code for a user. A user has at
// most one row here: a new request replaces the previous code.
type ResetCode struct {
	ID     int    `json:"id"`
	Code   string `json:"code"`
	UserID int    `json:"user_id"`
}
