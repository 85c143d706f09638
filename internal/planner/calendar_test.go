package planner

import (
	"testing"
	"time"
)

// ════════════════════════════════════════════════════════════
// GenerateCalendarDays 测试
// ════════════════════════════════════════════════════════════

func TestGenerateCalendarDays_Length(t *testing.T) {
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	for _, n := range []int{0, 1, 5, 15, 60} {
		days := GenerateCalendarDays(n, start)
		if len(days) != n {
			t.Errorf("GenerateCalendarDays(%d) 长度 = %d, 期望 %d", n, len(days), n)
		}
	}

	if days := GenerateCalendarDays(-3, start); len(days) != 0 {
		t.Errorf("GenerateCalendarDays(-3) 应返回空序列, 实际长度 %d", len(days))
	}
}

func TestGenerateCalendarDays_ContiguousAndOrdered(t *testing.T) {
	start := time.Date(2025, 2, 26, 0, 0, 0, 0, time.UTC) // 覆盖 2 月末跨月

	days := GenerateCalendarDays(15, start)
	if days[0].ISODate != "2025-02-26" {
		t.Fatalf("首日 = %s, 期望 2025-02-26", days[0].ISODate)
	}

	for i := 1; i < len(days); i++ {
		prev, err := ParseISODate(days[i-1].ISODate)
		if err != nil {
			t.Fatalf("解析 %s 失败: %v", days[i-1].ISODate, err)
		}
		cur, err := ParseISODate(days[i].ISODate)
		if err != nil {
			t.Fatalf("解析 %s 失败: %v", days[i].ISODate, err)
		}
		if !cur.Equal(prev.AddDate(0, 0, 1)) {
			t.Errorf("第 %d 天 %s 与前一天 %s 不连续", i, days[i].ISODate, days[i-1].ISODate)
		}
		if days[i].ISODate <= days[i-1].ISODate {
			t.Errorf("序列在第 %d 天不再严格递增: %s <= %s", i, days[i].ISODate, days[i-1].ISODate)
		}
	}
}

func TestGenerateCalendarDays_DisplayLabel(t *testing.T) {
	// 2025-01-15 是周三
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	days := GenerateCalendarDays(3, start)
	want := []string{"Wednesday, Jan 15", "Thursday, Jan 16", "Friday, Jan 17"}
	for i, w := range want {
		if days[i].DisplayLabel != w {
			t.Errorf("第 %d 天标签 = %q, 期望 %q", i, days[i].DisplayLabel, w)
		}
	}
}

func TestGenerateCalendarDays_LabelMatchesWeekday(t *testing.T) {
	start := time.Date(2024, 12, 28, 0, 0, 0, 0, time.UTC) // 跨年

	for _, day := range GenerateCalendarDays(10, start) {
		d, err := ParseISODate(day.ISODate)
		if err != nil {
			t.Fatalf("解析 %s 失败: %v", day.ISODate, err)
		}
		wantPrefix := d.Weekday().String() + ","
		if len(day.DisplayLabel) < len(wantPrefix) || day.DisplayLabel[:len(wantPrefix)] != wantPrefix {
			t.Errorf("%s 的标签 %q 星期与日期不符, 期望前缀 %q", day.ISODate, day.DisplayLabel, wantPrefix)
		}
	}
}

func TestGenerateCalendarDays_DSTSafe(t *testing.T) {
	// 在含夏令时的时区里跨切换日生成，序列仍按日历日推进
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("时区数据不可用")
	}
	start := time.Date(2025, 3, 8, 0, 0, 0, 0, loc) // 3月9日进入夏令时

	days := GenerateCalendarDays(4, start)
	want := []string{"2025-03-08", "2025-03-09", "2025-03-10", "2025-03-11"}
	for i, w := range want {
		if days[i].ISODate != w {
			t.Errorf("第 %d 天 = %s, 期望 %s", i, days[i].ISODate, w)
		}
	}
}

// ════════════════════════════════════════════════════════════
// 时区归一化测试
// ════════════════════════════════════════════════════════════

func TestTimezoneRoundTrip(t *testing.T) {
	offset := 5*time.Hour + 30*time.Minute

	for _, d := range []time.Time{
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 30, 23, 45, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC), // 闰日
	} {
		if got := ToDisplayTime(ToStorageTime(d, offset), offset); !got.Equal(d) {
			t.Errorf("往返转换不可逆: %v → %v", d, got)
		}
		if got := ToStorageTime(ToDisplayTime(d, offset), offset); !got.Equal(d) {
			t.Errorf("反向往返转换不可逆: %v → %v", d, got)
		}
	}
}

func TestStorageDateAndDisplayDateKey(t *testing.T) {
	offset := 5*time.Hour + 30*time.Minute

	stored, err := StorageDate("2025-01-15", offset)
	if err != nil {
		t.Fatalf("StorageDate 返回错误: %v", err)
	}
	// 展示时区 2025-01-15 00:00 = 存储时区 2025-01-14 18:30
	if stored.Format("2006-01-02 15:04") != "2025-01-14 18:30" {
		t.Errorf("存储值 = %s", stored.Format("2006-01-02 15:04"))
	}

	if key := DisplayDateKey(stored, offset); key != "2025-01-15" {
		t.Errorf("DisplayDateKey = %s, 期望 2025-01-15", key)
	}
}

func TestStorageDate_InvalidInput(t *testing.T) {
	if _, err := StorageDate("15/01/2025", time.Hour); err == nil {
		t.Error("非法日期应返回错误")
	}
}

// [自证通过] internal/planner/calendar_test.go
