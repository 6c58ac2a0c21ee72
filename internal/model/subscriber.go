package model

import (
	"time"
)

// ChatSubscriber 订阅某用户信号推送的telegram会话
type ChatSubscriber struct {
	ID     uint64 `gorm:"primaryKey" json:"id"`
	ChatID int64  `gorm:"column:chat_id;not null;uniqueIndex" json:"chat_id"`
	UserID uint64 `gorm:"column:user_id;not null;index" json:"user_id"`

	Username string `gorm:"type:varchar(100)" json:"username"`
	Active   bool   `gorm:"column:active;index" json:"active"`

	SubscribedAt   time.Time  `gorm:"column:subscribed_at" json:"subscribed_at"`
	UnsubscribedAt *time.Time `gorm:"column:unsubscribed_at" json:"unsubscribed_at"`
}

func (ChatSubscriber) TableName() string {
	return "chat_subscribers"
}
