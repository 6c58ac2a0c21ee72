package dao

import (
	"context"
	"time"

	"signalflow/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriberDao struct {
	db *gorm.DB
}

func NewSubscriberDao(db *gorm.DB) *SubscriberDao {
	return &SubscriberDao{db: db}
}

// 订阅：同一chat重复订阅时重新激活
func (d *SubscriberDao) SubscriberUpsert(ctx context.Context, sub *model.ChatSubscriber) error {
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "chat_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id", "username", "active", "subscribed_at",
		}),
	}).Create(sub).Error
}

// 退订：保留记录，置为不活跃
func (d *SubscriberDao) SubscriberDeactivate(ctx context.Context, chatID int64) error {
	now := time.Now()
	return d.db.WithContext(ctx).Model(&model.ChatSubscriber{}).
		Where("chat_id = ?", chatID).
		Updates(map[string]interface{}{
			"active":          false,
			"unsubscribed_at": now,
		}).Error
}

func (d *SubscriberDao) SubscriberListActiveByUser(ctx context.Context, userID uint64) (list []model.ChatSubscriber, err error) {
	err = d.db.WithContext(ctx).Model(&model.ChatSubscriber{}).
		Where("user_id = ?", userID).
		Where("active = ?", true).
		Find(&list).Error
	return
}
