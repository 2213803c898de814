package domain

import (
	"encoding/json"
	"strings"
	"time"
)

type UserStatus int

const (
	UserStatusPending UserStatus = iota
	UserStatusActive
	UserStatusBlocked
	UserStatusDeleted
)

var userStatusNames = map[UserStatus]string{
	UserStatusPending: "PENDING",
	UserStatusActive:  "ACTIVE",
	UserStatusBlocked: "BLOCKED",
	UserStatusDeleted: "DELETED",
}

func (s UserStatus) String() string {
	if name, ok := userStatusNames[s]; ok {
		return name
	}
	return "PENDING"
}

func ParseUserStatus(raw string) UserStatus {
	for status, name := range userStatusNames {
		if strings.EqualFold(raw, name) {
			return status
		}
	}
	return UserStatusPending
}

func (s UserStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

type IdentificationDocument struct {
	ID             int64     `json:"-"`
	DocumentNumber string    `json:"documentNumber"`
	ExpirationDate time.Time `json:"expirationDate"`
}

// User is read-only from this service's perspective: the profile, status and
// document are owned by the account service.
type User struct {
	Email    string                  `json:"email"`
	Status   UserStatus              `json:"status"`
	Document *IdentificationDocument `json:"document,omitempty"`
}
