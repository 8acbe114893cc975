package models

import "time"

type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Mobile    string    `json:"mobile" db:"mobile"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UserUpdate carries the mutable user fields; nil means unchanged.
type UserUpdate struct {
	Name   *string `json:"name,omitempty"`
	Mobile *string `json:"mobile,omitempty"`
}

func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Mobile == nil
}
