package autotrade

import (
	"fmt"
	"strings"
	"time"
)

// 交易时间窗与每日限额，下单前的两道闸门

// parseTimeToMinutes 解析 "HH:mm" 为当天分钟数，非法格式返回 (0, false)
func parseTimeToMinutes(value string) (int, bool) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return 0, false
	}
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func describeTradeWindow(startRaw, endRaw string) string {
	switch {
	case startRaw != "" && endRaw != "":
		return startRaw + "-" + endRaw
	case startRaw != "":
		return "from " + startRaw
	case endRaw != "":
		return "until " + endRaw
	}
	return ""
}

// WithinTradeWindow 判断now的本地时刻是否落在时间窗内
// start > end 表示跨午夜的窗口；start == end 视为全天开放；
// 只配置一边时只比较一边。返回 (是否允许, 拒绝原因)
func WithinTradeWindow(now time.Time, startRaw, endRaw string) (bool, string) {
	start, hasStart := parseTimeToMinutes(startRaw)
	end, hasEnd := parseTimeToMinutes(endRaw)
	if !hasStart && !hasEnd {
		return true, ""
	}

	nowMinutes := now.Hour()*60 + now.Minute()

	allowed := true
	switch {
	case hasStart && hasEnd:
		if start == end {
			allowed = true
		} else if start < end {
			allowed = nowMinutes >= start && nowMinutes <= end
		} else {
			allowed = nowMinutes >= start || nowMinutes <= end
		}
	case hasStart:
		allowed = nowMinutes >= start
	case hasEnd:
		allowed = nowMinutes <= end
	}

	if allowed {
		return true, ""
	}
	if label := describeTradeWindow(strings.TrimSpace(startRaw), strings.TrimSpace(endRaw)); label != "" {
		return false, fmt.Sprintf("Trade window closed (%s)", label)
	}
	return false, "Trade window closed"
}

// dayRange 当天的起止时刻，按本地时区
func dayRange(base time.Time) (time.Time, time.Time) {
	year, month, day := base.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, base.Location())
	end := time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), base.Location())
	return start, end
}
