package domain

import "time"

// User is a trial subject. The access code is the bearer secret itself;
// there is no password. Users are provisioned out-of-band.
type User struct {
	ID          string
	AccessCode  string
	DisplayName string
	IsActive    bool
	LastLoginAt *time.Time
	CreatedAt   time.Time
}
