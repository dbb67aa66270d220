package domain

import "time"

type User struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Newsletter   bool      `json:"newsletter"`
	AuthProvider string    `json:"authProvider"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// StoreManager credentials are a plain shared secret looked up against the
// manager collection. Hardening is out of scope; verification goes through
// account.CredentialVerifier.
type StoreManager struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Password    string `json:"-"`
	BrandID     string `json:"brandId"`
	BrandName   string `json:"brandName"`
	StadiumID   string `json:"stadiumId"`
	StadiumName string `json:"stadiumName"`
	Role        string `json:"role"`
	IsAdmin     bool   `json:"isAdmin"`
}

// Scope is the subset of orders a manager may view: the manager's own brand,
// or everything for an admin.
type ManagerScope struct {
	BrandID string
	IsAdmin bool
}

func (m StoreManager) Scope() ManagerScope {
	return ManagerScope{BrandID: m.BrandID, IsAdmin: m.IsAdmin}
}
