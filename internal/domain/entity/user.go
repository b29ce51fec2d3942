package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles known to the shop
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Permission names carried in access tokens
const (
	PermBillingWrite       = "billing:write"
	PermCreditManage       = "credit:manage"
	PermSupplierManage     = "supplier:manage"
	PermStockManage        = "stock:manage"
	PermExpenseManage      = "expense:manage"
	PermDashboardView      = "dashboard:view"
	PermTransactionsDelete = "transactions:delete"
	PermPrinterUse         = "printer:use"
)

var rolePermissions = map[string][]string{
	RoleAdmin: {
		PermBillingWrite, PermCreditManage, PermSupplierManage, PermStockManage,
		PermExpenseManage, PermDashboardView, PermTransactionsDelete, PermPrinterUse,
	},
	RoleStaff: {
		PermBillingWrite, PermSupplierManage, PermStockManage, PermExpenseManage, PermPrinterUse,
	},
}

// User represents a shop login
type User struct {
	ID        uuid.UUID      `gorm:"size:36;primaryKey" json:"id"`
	Username  string         `gorm:"size:100;uniqueIndex;not null" json:"username"`
	FullName  string         `gorm:"size:255" json:"full_name,omitempty"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;not null;default:'staff'" json:"role"`
	Active    bool           `gorm:"not null;default:true" json:"active"`
	LastLogin *time.Time     `json:"last_login,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// HasRole checks if the user has a specific role
func (u *User) HasRole(roleName string) bool {
	return u.Role == roleName
}

// Roles returns the role names for the user
func (u *User) Roles() []string {
	return []string{u.Role}
}

// GetPermissions returns all permission names for the user
func (u *User) GetPermissions() []string {
	perms := rolePermissions[u.Role]
	result := make([]string, len(perms))
	copy(result, perms)
	return result
}

// HasPermission checks if the user has a specific permission
func (u *User) HasPermission(permissionName string) bool {
	for _, p := range rolePermissions[u.Role] {
		if p == permissionName {
			return true
		}
	}
	return false
}

// ValidRole reports whether role is one the shop knows about
func ValidRole(role string) bool {
	_, ok := rolePermissions[role]
	return ok
}
