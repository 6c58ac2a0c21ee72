package model

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/plugin/soft_delete"
)

// Strategy 用户策略，绑定webhook key和下单默认参数
type Strategy struct {
	ID     uint64 `gorm:"primaryKey" json:"id"`
	UserID uint64 `gorm:"column:user_id;not null;index" json:"user_id"`
	Name   string `gorm:"type:varchar(100);not null" json:"name"`

	// webhook识别键，外部系统通过它路由到本策略
	WebhookKey string `gorm:"column:webhook_key;type:varchar(64);not null;uniqueIndex" json:"webhook_key"`

	// 是否启用自动下单
	Enabled bool `gorm:"column:enabled" json:"enabled"`

	// telegram通知
	TelegramEnabled bool  `gorm:"column:telegram_enabled" json:"telegram_enabled"`
	TelegramChatID  int64 `gorm:"column:telegram_chat_id" json:"telegram_chat_id"`

	// 券商接口地址，为空时使用进程默认
	MayaBaseURL string `gorm:"column:maya_base_url;type:varchar(255)" json:"maya_base_url"`

	Maya MayaConfig `gorm:"embedded;embeddedPrefix:maya_" json:"maya"`

	CreatedAt time.Time             `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time             `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt soft_delete.DeletedAt `gorm:"index" json:"-"`
}

func (Strategy) TableName() string {
	return "strategies"
}

// MayaConfig 策略的下单参数配置，派生引擎的配置输入
type MayaConfig struct {
	Token  string `gorm:"column:token;type:varchar(128)" json:"token"`
	DryRun bool   `gorm:"column:dry_run" json:"dry_run"`

	// 品种默认值
	Exchange   string `gorm:"column:exchange;type:varchar(20)" json:"exchange"`
	Segment    string `gorm:"column:segment;type:varchar(10)" json:"segment"`
	Contract   string `gorm:"column:contract;type:varchar(30)" json:"contract"`
	Expiry     string `gorm:"column:expiry;type:varchar(30)" json:"expiry"`
	ExpiryDate string `gorm:"column:expiry_date;type:varchar(30)" json:"expiry_date"`
	OptionType string `gorm:"column:option_type;type:varchar(10)" json:"option_type"`
	StrikePrice string `gorm:"column:strike_price;type:varchar(20)" json:"strike_price"`
	ATM        string `gorm:"column:atm;type:varchar(20)" json:"atm"`

	// 下单指令来源
	CallTypeKey      string `gorm:"column:call_type_key;type:varchar(50)" json:"call_type_key"`
	CallTypeFallback string `gorm:"column:call_type_fallback;type:varchar(20)" json:"call_type_fallback"`
	OrderType        string `gorm:"column:order_type;type:varchar(20)" json:"order_type"`
	LimitPrice       string `gorm:"column:limit_price;type:varchar(20)" json:"limit_price"`

	// 数量与止盈止损
	QtyDistribution string `gorm:"column:qty_distribution;type:varchar(20)" json:"qty_distribution"`
	QtyValue        string `gorm:"column:qty_value;type:varchar(20)" json:"qty_value"`
	TargetBy        string `gorm:"column:target_by;type:varchar(20)" json:"target_by"`
	Target          string `gorm:"column:target;type:varchar(20)" json:"target"`
	SlBy            string `gorm:"column:sl_by;type:varchar(20)" json:"sl_by"`
	Sl              string `gorm:"column:sl;type:varchar(20)" json:"sl"`
	TrailSl         bool   `gorm:"column:trail_sl" json:"trail_sl"`
	SlMove          string `gorm:"column:sl_move;type:varchar(20)" json:"sl_move"`
	ProfitMove      string `gorm:"column:profit_move;type:varchar(20)" json:"profit_move"`

	// 符号提取
	SymbolMode string `gorm:"column:symbol_mode;type:varchar(20)" json:"symbol_mode"`
	SymbolKey  string `gorm:"column:symbol_key;type:varchar(50)" json:"symbol_key"`
	MaxSymbols int    `gorm:"column:max_symbols" json:"max_symbols"`

	// 交易时间窗与每日限额
	TradeWindowStart string `gorm:"column:trade_window_start;type:varchar(5)" json:"trade_window_start"`
	TradeWindowEnd   string `gorm:"column:trade_window_end;type:varchar(5)" json:"trade_window_end"`
	DailyTradeLimit  int    `gorm:"column:daily_trade_limit" json:"daily_trade_limit"`

	// 自由扩展参数与显式字段映射
	ExtraParams datatypes.JSONMap `gorm:"column:extra_params" json:"extra_params"`
	PayloadMap  datatypes.JSONMap `gorm:"column:payload_map" json:"payload_map"`
}

// Execute 是否真实下单：策略启用且未强制dry-run
func (s *Strategy) Execute() bool {
	return s.Enabled && !s.Maya.DryRun
}

// ResolveToken 解析券商token，策略优先，进程默认兜底
func (s *Strategy) ResolveToken(fallback string) string {
	if t := strings.TrimSpace(s.Maya.Token); t != "" {
		return t
	}
	return strings.TrimSpace(fallback)
}
