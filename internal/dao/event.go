package dao

import (
	"context"
	"time"

	"signalflow/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EventDao struct {
	db *gorm.DB
}

func NewEventDao(db *gorm.DB) *EventDao {
	return &EventDao{db: db}
}

// 同步路径上的插入，必须在响应前完成
func (d *EventDao) EventInsert(ctx context.Context, event *model.WebhookEvent) error {
	return d.db.WithContext(ctx).Create(event).Error
}

// 后台处理完成后回写debug，只更新一次
func (d *EventDao) EventUpdateDebug(ctx context.Context, eventID string, debug datatypes.JSON, processedAt time.Time) error {
	return d.db.WithContext(ctx).Model(&model.WebhookEvent{}).
		Where("event_id = ?", eventID).
		Updates(map[string]interface{}{
			"debug":        debug,
			"processed_at": processedAt,
		}).Error
}

func (d *EventDao) EventGetList(ctx context.Context, userID, strategyID uint64, limit int) (list []model.WebhookEvent, err error) {
	q := d.db.WithContext(ctx).Model(&model.WebhookEvent{}).
		Where("user_id = ?", userID)
	if strategyID > 0 {
		q = q.Where("strategy_id = ?", strategyID)
	}
	err = q.Order("received_at DESC").Limit(limit).Find(&list).Error
	return
}
