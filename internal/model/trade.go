package model

import (
	"time"

	"gorm.io/datatypes"
)

// TradeRecord 每个解析出的标的一条下单记录，只追加不更新
// execute=true 的当日记录数用于每日限额判断
type TradeRecord struct {
	ID      uint64 `gorm:"primaryKey" json:"-"`
	TradeID string `gorm:"column:trade_id;type:varchar(36);not null;uniqueIndex" json:"id"`

	UserID       uint64 `gorm:"column:user_id;not null;index" json:"user_id"`
	StrategyID   uint64 `gorm:"column:strategy_id;not null;index:idx_strategy_created" json:"strategy_id"`
	StrategyName string `gorm:"column:strategy_name;type:varchar(100)" json:"strategy_name"`

	ReceivedAt time.Time `gorm:"column:received_at" json:"received_at"`
	CreatedAt  time.Time `gorm:"column:created_at;index:idx_strategy_created" json:"created_at"`

	// 真实下单还是dry-run预览
	Execute bool `gorm:"column:execute" json:"execute"`

	Symbol     string `gorm:"type:varchar(50)" json:"symbol"`
	SymbolCode string `gorm:"column:symbol_code;type:varchar(50)" json:"symbol_code"`

	// 派生出的下单参数与券商返回（或本地校验错误）
	Params   datatypes.JSON `gorm:"column:params" json:"params"`
	Response datatypes.JSON `gorm:"column:response" json:"response"`

	Ok    bool   `gorm:"column:ok" json:"ok"`
	Error string `gorm:"type:text" json:"error"`
}

func (TradeRecord) TableName() string {
	return "maya_trades"
}

type TradeListReq struct {
	StrategyID uint64 `json:"strategy_id" form:"strategy_id"`
	Limit      int    `json:"limit" form:"limit"`
}
