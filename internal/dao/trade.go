package dao

import (
	"context"
	"time"

	"signalflow/internal/model"

	"gorm.io/gorm"
)

type TradeDao struct {
	db *gorm.DB
}

func NewTradeDao(db *gorm.DB) *TradeDao {
	return &TradeDao{db: db}
}

// 插入下单记录，只追加
func (d *TradeDao) TradeInsert(ctx context.Context, record *model.TradeRecord) error {
	return d.db.WithContext(ctx).Create(record).Error
}

// 统计某策略在时间段内的真实下单数，用于每日限额
func (d *TradeDao) TradeCountInRange(ctx context.Context, strategyID uint64, start, end time.Time, execute bool) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.TradeRecord{}).
		Where("strategy_id = ?", strategyID).
		Where("created_at >= ?", start).
		Where("created_at <= ?", end).
		Where("execute = ?", execute).
		Count(&count).Error
	return count, err
}

func (d *TradeDao) TradeGetList(ctx context.Context, userID, strategyID uint64, limit int) (list []model.TradeRecord, err error) {
	q := d.db.WithContext(ctx).Model(&model.TradeRecord{}).
		Where("user_id = ?", userID)
	if strategyID > 0 {
		q = q.Where("strategy_id = ?", strategyID)
	}
	err = q.Order("created_at DESC").Limit(limit).Find(&list).Error
	return
}
