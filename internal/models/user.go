package models

import "time"

// Settings holds per-user display preferences. They only affect rendering at
// the CLI boundary; the core always works on canonical dates.
type Settings struct {
	Theme         string `json:"theme"`
	DateFormat    string `json:"date_format"`
	Notifications bool   `json:"notifications"`
}

// User is an account in the registry. UserName is case-sensitive, unique and
// immutable after creation; Email is unique.
type User struct {
	ID       string
	UserName string
	Email    string

	// PasswordHash is the bcrypt digest of the credential. The plaintext
	// password is never stored or logged.
	PasswordHash []byte

	Settings  Settings
	CreatedAt time.Time
}
