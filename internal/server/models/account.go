package models

import "time"

// Account is the persisted user record. Email is the primary key; the
// plaintext password never appears here, only its bcrypt hash. Verified
// starts false and flips to true exactly once, when a verification token is
// consumed.
type Account struct {
	Email        string
	PasswordHash string
	Verified     bool
	CreatedAt    time.Time
}
