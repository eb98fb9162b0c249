package models

import "time"

// User is an authenticated account. Image is an optional avatar URL.
type User struct {
	ID        string
	Name      string
	Email     string
	Image     *string
	CreatedAt time.Time
}
