package consts

const (
	// RequestId 请求id名称
	RequestId   = "request_id"
	UserID      = "user_id"
	JWTTokenCtx = "token_ctx"

	// webhook请求头
	StrategyKeyHeader  = "X-Strategy-Key"
	WebhookTokenHeader = "X-Webhook-Token"
	StrategyKeyQuery   = "key"
	WebhookTokenQuery  = "token"

	// 信号提供方标识
	ProviderChartink = "chartink"

	DateLayout = "2006-01-02"
	TimeLayout = "2006-01-02 15:04:05"
)

// 策略的符号提取模式
const (
	SymbolModePayload     = "payloadSymbol"
	SymbolModeStocksFirst = "stocksFirst"
	SymbolModeStocksAll   = "stocksAll"
)

// 交易品种分类
const (
	SegmentEquity  = "EQ"
	SegmentFutures = "FUT"
	SegmentOptions = "OPT"
)
