package models

import "time"

// Customer is the read-only collaborator joined onto the sales list. Account
// management itself lives outside this service.
type Customer struct {
	ID        uint      `gorm:"column:user_id;primaryKey;autoIncrement" json:"customerID"`
	Name      string    `gorm:"column:user_name;size:128;not null" json:"customerName"`
	Email     string    `gorm:"column:user_email;size:128" json:"customerEmail"`
	Phone     string    `gorm:"column:user_phone;size:32" json:"customerPhone"`
	Address   string    `gorm:"column:user_address" json:"customerAddress"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

// TableName maps Customer onto the legacy users table.
func (Customer) TableName() string {
	return "users"
}
