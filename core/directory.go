package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// Person customer or staff record
type Person struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`

	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
}

// StaffForm enrolment of a staff member, the backend hashes the password
type StaffForm struct {
	FullName   string `json:"full_name" valid:"required"`
	Email      string `json:"email" valid:"required,email"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
	Password   string `json:"password" valid:"required"`
	IsActive   bool   `json:"is_active"`
}

// DirectoryStore customers and staff
type DirectoryStore interface {
	ListCustomers(ctx context.Context) ([]*Person, error)
	ListStaff(ctx context.Context) ([]*Person, error)
	Enroll(ctx context.Context, form *StaffForm) (*Person, error)
}

// Allocation share of a listing kind
type Allocation struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// Summary admin dashboard numbers
type Summary struct {
	Assets          int             `json:"assets"`
	Coins           int             `json:"coins"`
	Customers       int             `json:"customers"`
	Staff           int             `json:"staff"`
	AssetTotal      decimal.Decimal `json:"asset_total"`
	CoinMarketTotal decimal.Decimal `json:"coin_market_total"`
	Allocation      []Allocation    `json:"allocation"`
}
