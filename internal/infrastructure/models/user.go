package models

import (
	"time"

	"brixium.backend/internal/domain/entities"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// User is the persisted shape of a customer. Unlike the API entity it keeps
// the password and PIN hashes.
type User struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	PasswordHash    string            `json:"passwordHash"`
	Balance         decimal.Decimal   `json:"balance"`
	Currency        entities.Currency `json:"currency"`
	IsVerifiedKYC   bool              `json:"isVerifiedKYC"`
	TransferPinHash null.String       `json:"transferPinHash"`
	Phone           null.String       `json:"phone"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// ToEntity converts the persisted user to the domain entity
func (m *User) ToEntity() *entities.User {
	return &entities.User{
		ID:              m.ID,
		Name:            m.Name,
		Email:           m.Email,
		PasswordHash:    m.PasswordHash,
		Balance:         m.Balance,
		Currency:        m.Currency,
		IsVerifiedKYC:   m.IsVerifiedKYC,
		TransferPinHash: m.TransferPinHash,
		Phone:           m.Phone,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// UserFromEntity converts the domain entity to its persisted shape
func UserFromEntity(u *entities.User) *User {
	return &User{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		PasswordHash:    u.PasswordHash,
		Balance:         u.Balance,
		Currency:        u.Currency,
		IsVerifiedKYC:   u.IsVerifiedKYC,
		TransferPinHash: u.TransferPinHash,
		Phone:           u.Phone,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
