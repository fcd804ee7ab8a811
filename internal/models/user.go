package models

import "time"

// User roles. Sellers may open a store; admins see every order.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// User represents an account, either a buyer, a seller or an admin.
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username    string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email       string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password    string    `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	FirstName   string    `json:"first_name" gorm:"type:varchar(100)"`
	LastName    string    `json:"last_name" gorm:"type:varchar(100)"`
	UserType    string    `json:"user_type" gorm:"type:varchar(10);default:'buyer'" validate:"omitempty,oneof=buyer seller admin"`
	PhoneNumber string    `json:"phone_number" gorm:"type:varchar(20)"`
	Bio         string    `json:"bio"`
	Country     string    `json:"country" gorm:"type:varchar(100)"`
	Address     string    `json:"address"`
	IsVerified  bool      `json:"is_verified" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
