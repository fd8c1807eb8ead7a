package user

import (
	"time"
)

// Package is the account entitlement tier.
type Package string

const (
	PackageFree    Package = "free"
	PackagePremium Package = "premium"
)

func (p Package) Valid() bool {
	return p == PackageFree || p == PackagePremium
}

func (p Package) IsPremium() bool {
	return p == PackagePremium
}

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Gender       string
	DateOfBirth  time.Time
	Package      Package
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Sanitized returns a copy without the password hash.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}
