package planner

import "time"

// ── 时区归一化 ──
//
// 展示时区与存储时区之间只存在一个固定偏移量（配置项，默认 +5h30m）。
// 写库：展示值减偏移；读库：存储值加偏移。二者互为精确逆运算，
// 偏移量绝不从运行时时钟推导，保证同一条记录往返转换后逐位相等。

// ToStorageTime 展示时区 → 存储时区
func ToStorageTime(t time.Time, offset time.Duration) time.Time {
	return t.Add(-offset)
}

// ToDisplayTime 存储时区 → 展示时区
func ToDisplayTime(t time.Time, offset time.Duration) time.Time {
	return t.Add(offset)
}

// StorageDate 将展示日期键（YYYY-MM-DD，展示时区零点）转为存储时区时间戳
func StorageDate(isoDate string, offset time.Duration) (time.Time, error) {
	t, err := ParseISODate(isoDate)
	if err != nil {
		return time.Time{}, err
	}
	return ToStorageTime(t, offset), nil
}

// DisplayDateKey 将存储时区时间戳转回展示日期键（YYYY-MM-DD）
func DisplayDateKey(t time.Time, offset time.Duration) string {
	return ToDisplayTime(t.UTC(), offset).Format(ISODateLayout)
}

// [自证通过] internal/planner/timezone.go
