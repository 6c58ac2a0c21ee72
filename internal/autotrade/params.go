package autotrade

import (
	"math"
	"strconv"
	"strings"

	"signalflow/internal/consts"
	"signalflow/internal/model"

	"github.com/spf13/cast"
)

// Params 券商下单参数集，每个标的每次信号重新派生
type Params map[string]interface{}

func (p Params) clone() Params {
	merged := make(Params, len(p))
	for k, v := range p {
		merged[k] = v
	}
	return merged
}

// BuildParams 对一个标的做三层合并派生：
// 基础层（策略配置+payload覆盖）→ 显式字段映射层 → segment派生层，
// 最后注入符号。每层都是纯函数，返回新map
func BuildParams(cfg *model.MayaConfig, payload Payload, target Target) Params {
	params := baseParams(cfg, payload)
	params = applyPayloadMap(params, payload, cfg)
	params = applyDerivativeDefaults(params, payload, cfg)
	return injectTarget(params, target)
}

func baseParams(cfg *model.MayaConfig, payload Payload) Params {
	params := make(Params, len(cfg.ExtraParams)+12)
	for k, v := range cfg.ExtraParams {
		params[k] = v
	}

	exchange := readFirstUpper(payload, "exchange", "Exchange")
	if exchange == "" {
		exchange = toUpper(cfg.Exchange)
	}
	if exchange == "" {
		exchange = "NSE"
	}
	params["exchange"] = exchange

	segment := readFirstUpper(payload, "segment", "Segment")
	if segment == "" {
		segment = toUpper(cfg.Segment)
	}
	if segment == "" {
		segment = consts.SegmentEquity
	}
	params["segment"] = segment

	callTypeKey := strings.TrimSpace(cfg.CallTypeKey)
	if callTypeKey == "" {
		callTypeKey = "call_type"
	}
	callType := readFirstUpper(payload, callTypeKey, "call_type", "callType", "action", "side")
	if callType == "" {
		callType = toUpper(cfg.CallTypeFallback)
	}
	if callType != "" {
		params["call_type"] = callType
	}

	orderType := readFirstUpper(payload, "order_type", "orderType")
	if orderType == "" {
		orderType = toUpper(cfg.OrderType)
	}
	if orderType != "" {
		params["order_type"] = orderType
	}
	limitPrice := firstNonEmpty(readFirstString(payload, "limit_price", "limitPrice"), cfg.LimitPrice)
	if orderType == "LIMIT" && limitPrice != "" {
		params["price"] = limitPrice
	}

	setIfPresent(params, "qty_distribution",
		firstNonEmpty(readFirstString(payload, "qty_distribution", "qtyDistribution"), cfg.QtyDistribution))
	setIfPresent(params, "qty_value",
		firstNonEmpty(readFirstString(payload, "qty_value", "qtyValue"), cfg.QtyValue))

	targetBy := firstNonEmpty(readFirstString(payload, "target_by", "targetBy"), cfg.TargetBy)
	target := firstNonEmpty(readFirstString(payload, "target"), cfg.Target)
	slBy := firstNonEmpty(readFirstString(payload, "sl_by", "slBy"), cfg.SlBy)
	sl := firstNonEmpty(readFirstString(payload, "sl"), cfg.Sl)

	// ratio模式：target按止损的倍数推算，推算失败则两者都丢弃
	if strings.EqualFold(targetBy, "ratio") {
		if computed := computeTargetFromRatio(sl, target); computed != "" {
			target = computed
			targetBy = slBy
		} else {
			target = ""
			targetBy = ""
		}
	}
	setIfPresent(params, "target_by", targetBy)
	setIfPresent(params, "target", target)
	setIfPresent(params, "sl_by", slBy)
	setIfPresent(params, "sl", sl)

	trailSl := cfg.TrailSl
	if raw, ok := readFirstPayloadValue(payload, "is_trail_sl", "isTrailSl", "trailSl"); ok {
		trailSl = truthy(raw)
	}
	if trailSl {
		params["is_trail_sl"] = true
	}

	setIfPresent(params, "sl_move",
		firstNonEmpty(readFirstString(payload, "sl_move", "slMove"), cfg.SlMove))
	setIfPresent(params, "profit_move",
		firstNonEmpty(readFirstString(payload, "profit_move", "profitMove"), cfg.ProfitMove))

	return params
}

// 显式字段映射：参数名 -> payload字段名，命中即无条件覆盖
func applyPayloadMap(params Params, payload Payload, cfg *model.MayaConfig) Params {
	if len(cfg.PayloadMap) == 0 {
		return params
	}
	merged := params.clone()
	for paramName, payloadKey := range cfg.PayloadMap {
		key := strings.TrimSpace(cast.ToString(payloadKey))
		if key == "" {
			continue
		}
		if value, ok := readPayloadValue(payload, key); ok {
			merged[paramName] = value
		}
	}
	return merged
}

// segment派生层：按（可能被payload覆盖过的）segment重算衍生品字段
// EQ 去掉全部衍生品字段；FUT/OPT 要么expiry_date要么contract+expiry；
// OPT 另需option_type，strike_price优先于atm
func applyDerivativeDefaults(params Params, payload Payload, cfg *model.MayaConfig) Params {
	merged := params.clone()
	segment := toUpper(cast.ToString(merged["segment"]))

	expiryDate := firstNonEmpty(readFirstString(payload, "expiry_date", "expiryDate"), cfg.ExpiryDate)

	if segment == consts.SegmentFutures || segment == consts.SegmentOptions {
		if expiryDate != "" {
			merged["expiry_date"] = expiryDate
			delete(merged, "contract")
			delete(merged, "expiry")
		} else {
			contract := firstNonEmpty(readFirstUpper(payload, "contract"), toUpper(cfg.Contract))
			expiry := firstNonEmpty(readFirstUpper(payload, "expiry"), toUpper(cfg.Expiry))
			setIfPresent(merged, "contract", contract)
			setIfPresent(merged, "expiry", expiry)
		}
	} else {
		delete(merged, "contract")
		delete(merged, "expiry")
		delete(merged, "expiry_date")
	}

	if segment == consts.SegmentOptions {
		optionType := firstNonEmpty(readFirstUpper(payload, "option_type", "optionType"), toUpper(cfg.OptionType))
		setIfPresent(merged, "option_type", optionType)

		strikePrice := firstNonEmpty(readFirstString(payload, "strike_price", "strikePrice"), cfg.StrikePrice)
		atm := firstNonEmpty(readFirstString(payload, "atm"), cfg.ATM)
		if strikePrice != "" {
			merged["strike_price"] = strikePrice
			delete(merged, "atm")
		} else if atm != "" {
			merged["atm"] = atm
			delete(merged, "strike_price")
		}
	} else {
		delete(merged, "option_type")
		delete(merged, "atm")
		delete(merged, "strike_price")
	}

	return merged
}

// 符号注入：symbol与symbol_code互斥
func injectTarget(params Params, target Target) Params {
	merged := params.clone()
	if target.SymbolCode != "" {
		merged["symbol_code"] = target.SymbolCode
		delete(merged, "symbol")
	} else if target.Symbol != "" {
		merged["symbol"] = target.Symbol
		delete(merged, "symbol_code")
	}
	return merged
}

// ValidateMinimum 下单前的最小校验，返回空串表示通过
func ValidateMinimum(params Params) string {
	if strings.TrimSpace(cast.ToString(params["exchange"])) == "" {
		return "exchange is required"
	}
	if strings.TrimSpace(cast.ToString(params["call_type"])) == "" {
		return "call_type is required"
	}
	symbol := strings.TrimSpace(cast.ToString(params["symbol"]))
	symbolCode := strings.TrimSpace(cast.ToString(params["symbol_code"]))
	if symbol == "" && symbolCode == "" {
		return "symbol or symbol_code is required"
	}
	return ""
}

// 解析盈亏比，支持 "1:2"、"1/2" 和纯数字
func parseRatioMultiplier(value string) (float64, bool) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return 0, false
	}
	divider := ""
	if strings.Contains(raw, ":") {
		divider = ":"
	} else if strings.Contains(raw, "/") {
		divider = "/"
	}
	if divider != "" {
		parts := strings.SplitN(raw, divider, 2)
		a, errA := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		b, errB := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errA != nil || errB != nil || a <= 0 || b <= 0 {
			return 0, false
		}
		return b / a, true
	}

	numeric, err := strconv.ParseFloat(raw, 64)
	if err != nil || numeric <= 0 {
		return 0, false
	}
	return numeric, true
}

func computeTargetFromRatio(slValue, ratioValue string) string {
	sl, err := strconv.ParseFloat(strings.TrimSpace(slValue), 64)
	if err != nil || sl <= 0 {
		return ""
	}
	multiplier, ok := parseRatioMultiplier(ratioValue)
	if !ok {
		return ""
	}
	target := sl * multiplier
	if math.IsInf(target, 0) || math.IsNaN(target) {
		return ""
	}
	// 保留6位小数并去掉结尾的0
	rounded := math.Round(target*1e6) / 1e6
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func setIfPresent(params Params, key, value string) {
	if value != "" {
		params[key] = value
	}
}
