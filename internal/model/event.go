package model

import (
	"time"

	"gorm.io/datatypes"
)

// WebhookEvent 一次收到的信号及其后台处理结果
// 同步插入核心字段，后台任务完成后回写debug和processed_at
type WebhookEvent struct {
	ID         uint64 `gorm:"primaryKey" json:"-"`
	EventID    string `gorm:"column:event_id;type:varchar(36);not null;uniqueIndex" json:"id"`
	Provider   string `gorm:"type:varchar(30);not null" json:"provider"`
	ReceivedAt time.Time `gorm:"column:received_at;not null;index" json:"received_at"`

	UserID       uint64 `gorm:"column:user_id;not null;index" json:"user_id"`
	StrategyID   uint64 `gorm:"column:strategy_id;not null;index" json:"strategy_id"`
	StrategyName string `gorm:"column:strategy_name;type:varchar(100)" json:"strategy_name"`

	// 去除凭证后的请求头快照
	Headers datatypes.JSON `gorm:"column:headers" json:"headers"`
	Payload datatypes.JSON `gorm:"column:payload" json:"payload"`

	// 后台处理完成后写入，包含通知和下单的汇总
	Debug       datatypes.JSON `gorm:"column:debug" json:"debug"`
	ProcessedAt *time.Time     `gorm:"column:processed_at" json:"processed_at"`
}

func (WebhookEvent) TableName() string {
	return "webhook_events"
}

type EventListReq struct {
	StrategyID uint64 `json:"strategy_id" form:"strategy_id"`
	Limit      int    `json:"limit" form:"limit"`
}
