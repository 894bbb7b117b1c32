package models

import "time"

// User is a registered author
type User struct {
	ID            int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Username      string    `json:"username" db:"username" gorm:"type:text;not null;uniqueIndex"`
	Email         string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	PasswordHash  string    `json:"-" db:"password" gorm:"column:password;type:text;not null"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at" gorm:"autoCreateTime"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt" db:"last_updated_at" gorm:"column:last_updated_at;autoUpdateTime"`
	Posts         []Post    `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// Profile is the public view of a user returned by GET /auth/me.
type Profile struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Authorities []string `json:"authorities"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Authorities: []string{},
	}
}

// Credentials is the body of /auth/signup, /auth/login and PUT /users/{id}.
type Credentials struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// AuthResponse is returned by every endpoint that issues tokens.
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// RefreshRequest is the body of POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}
