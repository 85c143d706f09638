package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/diyajojo/studyGPT/config"
	"github.com/diyajojo/studyGPT/internal/dto"
	"github.com/diyajojo/studyGPT/internal/generator"
	"github.com/diyajojo/studyGPT/internal/model"
	"github.com/diyajojo/studyGPT/internal/planner"
	"github.com/diyajojo/studyGPT/internal/repository"
	"github.com/diyajojo/studyGPT/pkg/redis"
)

var (
	ErrGenerationInFlight = errors.New("该科目已有生成请求在途")
	ErrNoContent          = errors.New("科目下没有任何学习素材")
	ErrAssignmentNotFound = errors.New("作业不存在")
)

// PlanService 学习计划业务接口
//
// 计划分两步落地：Generate 只生成不入库，用户确认后由 Keep 持久化。
type PlanService interface {
	Generate(ctx context.Context, userID, subjectID string) (*dto.PlanResponse, error)
	Keep(ctx context.Context, userID, subjectID string, req *dto.KeepPlanRequest) (*dto.PlanResponse, error)
	Get(ctx context.Context, userID, subjectID string) (*dto.PlanResponse, error)
	Delete(ctx context.Context, userID, subjectID string) error
	UpdateAssignmentStatus(ctx context.Context, userID, assignmentID, status string) error
}

type planService struct {
	cfg    *config.Config
	repo   *repository.Repository
	rdb    *redis.Client
	gen    PlanGenerator
	logger *zap.Logger
	now    func() time.Time // 参考时钟，测试中可替换
}

// NewPlanService 创建 PlanService 实例
func NewPlanService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	gen PlanGenerator,
	logger *zap.Logger,
) PlanService {
	return &planService{
		cfg:    cfg,
		repo:   repo,
		rdb:    rdb,
		gen:    gen,
		logger: logger,
		now:    time.Now,
	}
}

// Generate 调用外部服务生成计划，返回校验后的结果（不入库）。
//
// 每个 科目×用户 同一时刻至多一个在途请求；超时或失败不自动重试。
func (s *planService) Generate(ctx context.Context, userID, subjectID string) (*dto.PlanResponse, error) {
	subject, err := s.repo.Subject.GetByIDAndUser(ctx, subjectID, userID)
	if err != nil {
		return nil, ErrSubjectNotFound
	}

	// ── 生成互斥锁 ──
	if s.rdb != nil {
		// 锁 TTL 略长于生成超时，进程崩溃后自动解锁
		lockTTL := s.cfg.Generator.Timeout + 30*time.Second
		ok, err := s.rdb.AcquireGenerationLock(ctx, subjectID, userID, lockTTL)
		if err != nil {
			s.logger.Error("获取生成锁失败", zap.Error(err))
			return nil, err
		}
		if !ok {
			return nil, ErrGenerationInFlight
		}
		defer func() {
			if err := s.rdb.ReleaseGenerationLock(context.WithoutCancel(ctx), subjectID, userID); err != nil {
				s.logger.Warn("释放生成锁失败", zap.Error(err))
			}
		}()
	}

	// ── 素材装载与天数估算 ──
	topics, err := s.repo.Topic.ListBySubjectAndUser(ctx, subjectID, userID)
	if err != nil {
		return nil, err
	}
	questions, err := s.repo.Question.ListBySubjectAndUser(ctx, subjectID, userID)
	if err != nil {
		return nil, err
	}
	flashcards, err := s.repo.Flashcard.ListBySubjectAndUser(ctx, subjectID, userID)
	if err != nil {
		return nil, err
	}

	studyDays, err := planner.EstimateStudyDays(planner.ContentInventory{
		Topics:     int64(len(topics)),
		Questions:  int64(len(questions)),
		Flashcards: int64(len(flashcards)),
	})
	if err != nil {
		return nil, err
	}
	if studyDays == 0 {
		return nil, ErrNoContent
	}

	// ── 偏好与目标（未设置时使用默认值） ──
	prefs := generator.Preferences{BreakInterval: 25}
	if p, err := s.repo.Preference.GetBySubjectAndUser(ctx, subjectID, userID); err == nil {
		prefs = generator.Preferences{
			StudyTime:        p.StudyTime,
			StudyEnvironment: p.StudyEnvironment,
			BreakInterval:    p.BreakInterval,
			LearningStyle:    p.LearningStyle,
		}
	}
	goals := generator.Goals{}
	if g, err := s.repo.Goal.GetBySubjectAndUser(ctx, subjectID, userID); err == nil {
		goals = generator.Goals{
			Daily:    g.DailyGoals,
			Weekly:   g.WeeklyGoals,
			LongTerm: g.LongTermGoals,
		}
	}

	// ── 日历序列（展示时区的今天为首日） ──
	offset := s.cfg.Plan.DisplayOffset
	start := planner.ToDisplayTime(s.now().UTC(), offset)
	days := planner.GenerateCalendarDays(int(studyDays), start)

	input := &generator.PromptInput{
		Subject:     subject.Name,
		StudyDays:   studyDays,
		Preferences: prefs,
		Goals:       goals,
		Topics:      topicNames(topics),
		Questions:   questionTexts(questions),
		Flashcards:  flashcardTexts(flashcards),
		Days:        days,
	}

	raw, err := s.gen.GeneratePlan(ctx, input)
	if err != nil {
		return nil, err
	}

	result, issues, err := planner.ValidateGenerationResponse(raw, planner.WindowOf(days))
	if err != nil {
		s.logger.Warn("生成响应校验失败",
			zap.String("subject_id", subjectID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("计划生成完成",
		zap.String("subject_id", subjectID),
		zap.Int64("study_days", studyDays),
		zap.Int("schedule_days", len(result.Schedule)),
		zap.Int("assignments", len(result.Assignments)),
		zap.Int("dropped", len(issues)),
	)

	return toPlanResponse(subjectID, studyDays, result, issues), nil
}

// Keep 持久化用户确认的计划，覆盖该科目下的既有计划。
//
// 所有展示格式在此处一次性换算为存储格式：
// 日期键减去展示偏移，时间段解析为 24 小时制。
func (s *planService) Keep(ctx context.Context, userID, subjectID string, req *dto.KeepPlanRequest) (*dto.PlanResponse, error) {
	if _, err := s.repo.Subject.GetByIDAndUser(ctx, subjectID, userID); err != nil {
		return nil, ErrSubjectNotFound
	}

	offset := s.cfg.Plan.DisplayOffset

	var activities []model.ScheduleActivity
	for _, day := range req.Schedule {
		date, err := planner.StorageDate(day.Date, offset)
		if err != nil {
			return nil, err
		}
		for _, act := range day.Activities {
			tr, err := planner.ParseDisplayTimeRange(act.Time)
			if err != nil {
				return nil, err
			}
			activities = append(activities, model.ScheduleActivity{
				SubjectID:   subjectID,
				CreatedBy:   userID,
				Date:        date,
				StartTime:   tr.Start,
				EndTime:     tr.End,
				Title:       act.Topic,
				Description: act.Description,
			})
		}
	}

	var assignments []model.Assignment
	for _, asg := range req.Assignments {
		date, err := planner.StorageDate(asg.Date, offset)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, model.Assignment{
			SubjectID:   subjectID,
			CreatedBy:   userID,
			Date:        date,
			Title:       asg.Title,
			Description: asg.Description,
			Duration:    asg.Duration,
			Status:      model.AssignmentStatusPending,
		})
	}

	if err := s.repo.ScheduleActivity.ReplaceBySubjectAndUser(ctx, subjectID, userID, activities); err != nil {
		s.logger.Error("保存日程失败", zap.Error(err))
		return nil, err
	}
	if err := s.repo.Assignment.ReplaceBySubjectAndUser(ctx, subjectID, userID, assignments); err != nil {
		s.logger.Error("保存作业失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("计划已保存",
		zap.String("subject_id", subjectID),
		zap.Int("activities", len(activities)),
		zap.Int("assignments", len(assignments)),
	)

	return s.Get(ctx, userID, subjectID)
}

// Get 读取已保存的计划并换算回展示格式
func (s *planService) Get(ctx context.Context, userID, subjectID string) (*dto.PlanResponse, error) {
	if _, err := s.repo.Subject.GetByIDAndUser(ctx, subjectID, userID); err != nil {
		return nil, ErrSubjectNotFound
	}

	offset := s.cfg.Plan.DisplayOffset

	activities, err := s.repo.ScheduleActivity.ListBySubjectAndUser(ctx, subjectID, userID)
	if err != nil {
		s.logger.Error("查询日程失败", zap.Error(err))
		return nil, err
	}
	assignments, err := s.repo.Assignment.ListBySubjectAndUser(ctx, subjectID, userID)
	if err != nil {
		s.logger.Error("查询作业失败", zap.Error(err))
		return nil, err
	}

	// 按展示日期键重新分组，保持日期与时段有序（List 已按 date, start_time 排序）
	var schedule []dto.PlanDay
	dayIndex := map[string]int{}
	for _, act := range activities {
		key := planner.DisplayDateKey(act.Date, offset)
		idx, ok := dayIndex[key]
		if !ok {
			displayDate, err := planner.ParseISODate(key)
			if err != nil {
				return nil, err
			}
			schedule = append(schedule, dto.PlanDay{
				Date:        key,
				DisplayDate: planner.DisplayLabel(displayDate),
			})
			idx = len(schedule) - 1
			dayIndex[key] = idx
		}

		timeRange, err := planner.FormatDisplayTimeRange(act.StartTime, act.EndTime)
		if err != nil {
			return nil, err
		}
		schedule[idx].Activities = append(schedule[idx].Activities, dto.PlanActivity{
			Time:        timeRange,
			Topic:       act.Title,
			Description: act.Description,
		})
	}

	out := make([]dto.PlanAssignment, len(assignments))
	for i, asg := range assignments {
		key := planner.DisplayDateKey(asg.Date, offset)
		displayDate, err := planner.ParseISODate(key)
		if err != nil {
			return nil, err
		}
		out[i] = dto.PlanAssignment{
			ID:          asg.AssignmentID,
			Date:        key,
			DisplayDate: planner.DisplayLabel(displayDate),
			Title:       asg.Title,
			Description: asg.Description,
			Duration:    asg.Duration,
			Status:      asg.Status,
		}
	}

	if schedule == nil {
		schedule = []dto.PlanDay{}
	}

	return &dto.PlanResponse{
		SubjectID:   subjectID,
		Schedule:    schedule,
		Assignments: out,
	}, nil
}

// Delete 删除该科目下的整个计划
func (s *planService) Delete(ctx context.Context, userID, subjectID string) error {
	if _, err := s.repo.Subject.GetByIDAndUser(ctx, subjectID, userID); err != nil {
		return ErrSubjectNotFound
	}
	if err := s.repo.ScheduleActivity.DeleteBySubjectAndUser(ctx, subjectID, userID); err != nil {
		return err
	}
	return s.repo.Assignment.DeleteBySubjectAndUser(ctx, subjectID, userID)
}

// UpdateAssignmentStatus 更新单条作业的完成状态
func (s *planService) UpdateAssignmentStatus(ctx context.Context, userID, assignmentID, status string) error {
	if !model.ValidAssignmentStatus(status) {
		return planner.ErrInvalidInput
	}
	if _, err := s.repo.Assignment.GetByIDAndUser(ctx, assignmentID, userID); err != nil {
		return ErrAssignmentNotFound
	}
	return s.repo.Assignment.UpdateStatus(ctx, assignmentID, status)
}

// ── 转换辅助 ──

func toPlanResponse(subjectID string, studyDays int64, result *planner.GenerationResult, issues []planner.Issue) *dto.PlanResponse {
	schedule := make([]dto.PlanDay, len(result.Schedule))
	for i, day := range result.Schedule {
		acts := make([]dto.PlanActivity, len(day.Activities))
		for j, act := range day.Activities {
			acts[j] = dto.PlanActivity{
				Time:        act.Time,
				Topic:       act.Topic,
				Description: act.Description,
				Type:        act.Type,
			}
		}
		schedule[i] = dto.PlanDay{
			Date:        day.Date,
			DisplayDate: day.DisplayDate,
			Activities:  acts,
		}
	}

	assignments := make([]dto.PlanAssignment, len(result.Assignments))
	for i, asg := range result.Assignments {
		assignments[i] = dto.PlanAssignment{
			Date:        asg.Date,
			DisplayDate: asg.DisplayDate,
			Title:       asg.Title,
			Description: asg.Description,
			Duration:    asg.Duration,
		}
	}

	var planIssues []dto.PlanIssue
	for _, issue := range issues {
		planIssues = append(planIssues, dto.PlanIssue{
			Section: issue.Section,
			Date:    issue.Date,
			Detail:  issue.Detail,
		})
	}

	return &dto.PlanResponse{
		SubjectID:   subjectID,
		StudyDays:   studyDays,
		Schedule:    schedule,
		Assignments: assignments,
		Issues:      planIssues,
	}
}

func topicNames(topics []model.Topic) []string {
	out := make([]string, len(topics))
	for i, t := range topics {
		out[i] = t.TopicName
	}
	return out
}

func questionTexts(questions []model.Question) []string {
	out := make([]string, len(questions))
	for i, q := range questions {
		out[i] = q.QuestionText
	}
	return out
}

func flashcardTexts(flashcards []model.Flashcard) []string {
	out := make([]string, len(flashcards))
	for i, f := range flashcards {
		out[i] = f.QuestionText
	}
	return out
}

// [自证通过] internal/service/plan_service.go
