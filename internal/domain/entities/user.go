package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// Role names carried in access tokens
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a customer together with the state of their single-currency wallet
type User struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	PasswordHash    string          `json:"-"`
	Balance         decimal.Decimal `json:"balance"`
	Currency        Currency        `json:"currency"`
	IsVerifiedKYC   bool            `json:"isVerifiedKYC"`
	TransferPinHash null.String     `json:"-"`
	Phone           null.String     `json:"phone"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// HasTransferPin reports whether transfers must be confirmed with a PIN.
func (u *User) HasTransferPin() bool {
	return u.TransferPinHash.Valid && u.TransferPinHash.String != ""
}

// MarshalJSON adds the derived hasTransferPin flag; secrets stay hidden.
func (u User) MarshalJSON() ([]byte, error) {
	type alias User
	return json.Marshal(struct {
		alias
		HasTransferPin bool `json:"hasTransferPin"`
	}{alias(u), u.HasTransferPin()})
}

// Admin is an operator of the admin console
type Admin struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SignupInput represents input for creating a customer
type SignupInput struct {
	Name            string   `json:"name" binding:"required,min=1,max=100"`
	Email           string   `json:"email" binding:"required,email"`
	Password        string   `json:"password" binding:"required"`
	ConfirmPassword string   `json:"confirmPassword"`
	Currency        Currency `json:"currency"`
}

// LoginInput represents input for customer or admin login
type LoginInput struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	UseSession bool   `json:"useSession"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	SessionID    string `json:"sessionId,omitempty"`
	User         *User  `json:"user,omitempty"`
	Admin        *Admin `json:"admin,omitempty"`
}

// ChangePasswordInput represents input for changing a customer password
type ChangePasswordInput struct {
	CurrentPassword    string `json:"currentPassword" binding:"required"`
	NewPassword        string `json:"newPassword" binding:"required"`
	ConfirmNewPassword string `json:"confirmNewPassword" binding:"required"`
}

// UpdateProfileInput is used by customers and admins to edit contact details
type UpdateProfileInput struct {
	Name  string  `json:"name" binding:"required,max=100"`
	Phone *string `json:"phone"`
}

// UpdateAccountSettingsInput carries the customer settings form.
// A nil EnableTransferPin leaves the PIN as it is.
type UpdateAccountSettingsInput struct {
	Currency          Currency `json:"currency"`
	EnableTransferPin *bool    `json:"enableTransferPin"`
	TransferPin       string   `json:"transferPin"`
	ConfirmPin        string   `json:"confirmTransferPin"`
}
