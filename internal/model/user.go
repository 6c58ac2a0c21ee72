package model

import (
	"time"
)

// User 策略归属用户，本服务只读取套餐状态和通知地址
type User struct {
	ID    uint64 `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"type:varchar(100)" json:"name"`
	Email string `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	Role  string `gorm:"type:varchar(20)" json:"role"`

	PlanName      string     `gorm:"column:plan_name;type:varchar(30)" json:"plan_name"`
	PlanExpiresAt *time.Time `gorm:"column:plan_expires_at" json:"plan_expires_at"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// PlanActive 套餐是否有效，管理员始终有效
func (u *User) PlanActive(now time.Time) bool {
	if u == nil {
		return false
	}
	if u.Role == "admin" {
		return true
	}
	if u.PlanExpiresAt == nil {
		return false
	}
	return u.PlanExpiresAt.After(now)
}
