package entity

import (
	"time"

	"github.com/google/uuid"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Supported payment methods.
const (
	PaymentMethodPayPal         = "PayPal"
	PaymentMethodStripe         = "Stripe"
	PaymentMethodCashOnDelivery = "CashOnDelivery"
)

// PaymentMethods lists every method a user may select at checkout.
var PaymentMethods = []string{PaymentMethodPayPal, PaymentMethodStripe, PaymentMethodCashOnDelivery}

// IsValidPaymentMethod reports whether method is one of the supported methods.
func IsValidPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}

	return false
}

// Address is a shipping address attached to a user and copied onto orders.
type Address struct {
	FullName      string  `json:"fullName" validate:"required"`
	StreetAddress string  `json:"streetAddress" validate:"required"`
	City          string  `json:"city" validate:"required"`
	PostalCode    string  `json:"postalCode" validate:"required"`
	Country       string  `json:"country" validate:"required"`
	Lat           float64 `json:"lat,omitempty"`
	Lng           float64 `json:"lng,omitempty"`
}

// User represents a storefront account.
type User struct {
	ID            uuid.UUID
	Name          string
	Email         string
	PasswordHash  string
	Role          string
	Address       *Address
	PaymentMethod string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
