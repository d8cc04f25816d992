package domain

import (
	"errors"
	"strings"
	"time"
)

type RoleType string

const (
	RoleUser  RoleType = "ROLE_USER"
	RoleAdmin RoleType = "ROLE_ADMIN"
)

var ErrInvalidRole = errors.New("invalid role name")

// ParseRole converts a free-text role name into a RoleType.
func ParseRole(s string) (RoleType, error) {
	switch RoleType(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

type User struct {
	ID               uint       `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	Surnames         string     `json:"surnames"`
	Password         string     `json:"-"`
	Enabled          bool       `json:"enabled"`
	RegistrationDate time.Time  `json:"registration_date"`
	Roles            []RoleType `json:"roles"`
}

// HasRole reports whether the user carries the given role.
func (u User) HasRole(role RoleType) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
