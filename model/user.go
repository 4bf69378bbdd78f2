package model

import (
	"strings"
	"time"
)

// UserEntity represents the stored user record, keyed by email.
// PasswordHash is never serialized on any read path.
type UserEntity struct {
	Email        string     `db:"email" json:"email"`
	FirstName    string     `db:"first_name" json:"firstName"`
	LastName     string     `db:"last_name" json:"lastName"`
	Phone        string     `db:"phone" json:"phone"`
	Address      string     `db:"address" json:"address"`
	PasswordHash string     `db:"password_hash" json:"-"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// RegisterRequest for user registration
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,notblank"`
	LastName  string `json:"lastName" validate:"required,notblank"`
	Email     string `json:"email" validate:"required,emailfmt"`
	Password  string `json:"password" validate:"required,min=6"`
	Phone     string `json:"phone" validate:"required,min=7,phone"`
	Address   string `json:"address" validate:"required,notblank"`
}

// LoginRequest for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateRequest carries a partial update. Every field is optional;
// absent fields leave the stored value untouched. Email is the key
// and cannot be changed.
type UpdateRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Password  *string `json:"password,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
}

// UserPatch is the resolved set of field changes to merge onto a
// stored record. Password arrives here already hashed.
type UserPatch struct {
	FirstName    *string
	LastName     *string
	Phone        *string
	Address      *string
	PasswordHash *string
}

// IsEmpty reports whether the patch changes nothing.
func (p *UserPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Phone == nil &&
		p.Address == nil && p.PasswordHash == nil
}

// ApplyPatch merges the non-nil patch fields onto the entity.
func (u *UserEntity) ApplyPatch(p *UserPatch) {
	if p == nil {
		return
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
}

// TrimmedValue returns the trimmed value of an optional request field
// and whether it should be applied (present and non-empty after trim).
func TrimmedValue(field *string) (string, bool) {
	if field == nil {
		return "", false
	}
	v := strings.TrimSpace(*field)
	if v == "" {
		return "", false
	}
	return v, true
}

type RegisterResponse struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

type LoginResponse struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// UserEvent is published on the lifecycle feed after a successful
// mutation. It never carries credential material.
type UserEvent struct {
	Action     string    `json:"action"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}
