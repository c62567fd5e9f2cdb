package user

import "time"

type User struct {
	ID              string
	Email           string
	FullName        string
	PasswordHash    *string
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
