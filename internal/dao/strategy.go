package dao

import (
	"context"
	"errors"

	"signalflow/internal/model"

	"gorm.io/gorm"
)

type StrategyDao struct {
	db *gorm.DB
}

func NewStrategyDao(db *gorm.DB) *StrategyDao {
	return &StrategyDao{db: db}
}

// 根据webhook key查找策略，未找到返回 (nil, nil)
func (d *StrategyDao) StrategyGetByKey(ctx context.Context, webhookKey string) (*model.Strategy, error) {
	if webhookKey == "" {
		return nil, nil
	}
	var s model.Strategy
	err := d.db.WithContext(ctx).
		Where("webhook_key = ?", webhookKey).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (d *StrategyDao) StrategyGetByID(ctx context.Context, id uint64) (*model.Strategy, error) {
	var s model.Strategy
	err := d.db.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// 删除策略并级联删除它的事件历史
func (d *StrategyDao) StrategyDelete(ctx context.Context, userID, strategyID uint64) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", strategyID, userID).
			Delete(&model.Strategy{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("strategy_id = ? AND user_id = ?", strategyID, userID).
			Delete(&model.WebhookEvent{}).Error
	})
}
