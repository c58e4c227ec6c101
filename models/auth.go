package models

import (
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Credentials is the login body sent to the remote API.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpRequest mirrors the users/createuser body.
type SignUpRequest struct {
	UserName    string `json:"UserName"`
	Email       string `json:"Email"`
	Password    string `json:"Password"`
	PhoneNumber string `json:"PhoneNumber"`
}

// User is the locally persisted session. The password is only kept as a bcrypt hash.
type User struct {
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash,omitempty"`
	IsLoggedIn   bool   `json:"isLoggedIn"`
}

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type ProfileUpdate struct {
	UserName    string `json:"UserName,omitempty"`
	Email       string `json:"Email,omitempty"`
	PhoneNumber string `json:"PhoneNumber,omitempty"`
}

// Clone copies u; a nil user stays nil.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	if u == nil || u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
