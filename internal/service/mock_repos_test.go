package service

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/diyajojo/studyGPT/internal/model"
	"github.com/diyajojo/studyGPT/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[string]*model.Subject
	seq      int
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*model.Subject)}
}

func (m *mockSubjectRepo) Create(_ context.Context, subject *model.Subject) error {
	if subject.SubjectID == "" {
		m.seq++
		subject.SubjectID = fmt.Sprintf("subject-%d", m.seq)
	}
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) GetByIDAndUser(_ context.Context, id, userID string) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok && s.CreatedBy == userID {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) GetByNameAndUser(_ context.Context, name, userID string) (*model.Subject, error) {
	for _, s := range m.subjects {
		if s.Name == name && s.CreatedBy == userID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) ListByUser(_ context.Context, userID string, offset, limit int) ([]model.Subject, int64, error) {
	var result []model.Subject
	for _, s := range m.subjects {
		if s.CreatedBy == userID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SubjectID < result[j].SubjectID })
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockSubjectRepo) Update(_ context.Context, subject *model.Subject) error {
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, id string) error {
	delete(m.subjects, id)
	return nil
}

// ── Mock TopicRepository ──

type mockTopicRepo struct {
	topics map[string]*model.Topic
	seq    int
}

func newMockTopicRepo() *mockTopicRepo {
	return &mockTopicRepo{topics: make(map[string]*model.Topic)}
}

func (m *mockTopicRepo) Create(ctx context.Context, topic *model.Topic) error {
	return m.BatchCreate(ctx, []model.Topic{*topic})
}

func (m *mockTopicRepo) BatchCreate(_ context.Context, topics []model.Topic) error {
	for i := range topics {
		m.seq++
		topics[i].TopicID = fmt.Sprintf("topic-%d", m.seq)
		t := topics[i]
		m.topics[t.TopicID] = &t
	}
	return nil
}

func (m *mockTopicRepo) ListBySubjectAndUser(_ context.Context, subjectID, userID string) ([]model.Topic, error) {
	var result []model.Topic
	for _, t := range m.topics {
		if t.SubjectID == subjectID && t.CreatedBy == userID {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TopicID < result[j].TopicID })
	return result, nil
}

func (m *mockTopicRepo) CountBySubjectAndUser(ctx context.Context, subjectID, userID string) (int64, error) {
	list, _ := m.ListBySubjectAndUser(ctx, subjectID, userID)
	return int64(len(list)), nil
}

func (m *mockTopicRepo) Delete(_ context.Context, id, userID string) error {
	if t, ok := m.topics[id]; ok && t.CreatedBy == userID {
		delete(m.topics, id)
	}
	return nil
}

// ── Mock QuestionRepository ──

type mockQuestionRepo struct {
	questions map[string]*model.Question
	seq       int
}

func newMockQuestionRepo() *mockQuestionRepo {
	return &mockQuestionRepo{questions: make(map[string]*model.Question)}
}

func (m *mockQuestionRepo) Create(ctx context.Context, question *model.Question) error {
	return m.BatchCreate(ctx, []model.Question{*question})
}

func (m *mockQuestionRepo) BatchCreate(_ context.Context, questions []model.Question) error {
	for i := range questions {
		m.seq++
		questions[i].QuestionID = fmt.Sprintf("question-%d", m.seq)
		q := questions[i]
		m.questions[q.QuestionID] = &q
	}
	return nil
}

func (m *mockQuestionRepo) ListBySubjectAndUser(_ context.Context, subjectID, userID string) ([]model.Question, error) {
	var result []model.Question
	for _, q := range m.questions {
		if q.SubjectID == subjectID && q.CreatedBy == userID {
			result = append(result, *q)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].QuestionID < result[j].QuestionID })
	return result, nil
}

func (m *mockQuestionRepo) CountBySubjectAndUser(ctx context.Context, subjectID, userID string) (int64, error) {
	list, _ := m.ListBySubjectAndUser(ctx, subjectID, userID)
	return int64(len(list)), nil
}

func (m *mockQuestionRepo) Delete(_ context.Context, id, userID string) error {
	if q, ok := m.questions[id]; ok && q.CreatedBy == userID {
		delete(m.questions, id)
	}
	return nil
}

// ── Mock FlashcardRepository ──

type mockFlashcardRepo struct {
	flashcards map[string]*model.Flashcard
	seq        int
}

func newMockFlashcardRepo() *mockFlashcardRepo {
	return &mockFlashcardRepo{flashcards: make(map[string]*model.Flashcard)}
}

func (m *mockFlashcardRepo) Create(ctx context.Context, flashcard *model.Flashcard) error {
	return m.BatchCreate(ctx, []model.Flashcard{*flashcard})
}

func (m *mockFlashcardRepo) BatchCreate(_ context.Context, flashcards []model.Flashcard) error {
	for i := range flashcards {
		m.seq++
		flashcards[i].FlashcardID = fmt.Sprintf("flashcard-%d", m.seq)
		f := flashcards[i]
		m.flashcards[f.FlashcardID] = &f
	}
	return nil
}

func (m *mockFlashcardRepo) ListBySubjectAndUser(_ context.Context, subjectID, userID string) ([]model.Flashcard, error) {
	var result []model.Flashcard
	for _, f := range m.flashcards {
		if f.SubjectID == subjectID && f.CreatedBy == userID {
			result = append(result, *f)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FlashcardID < result[j].FlashcardID })
	return result, nil
}

func (m *mockFlashcardRepo) CountBySubjectAndUser(ctx context.Context, subjectID, userID string) (int64, error) {
	list, _ := m.ListBySubjectAndUser(ctx, subjectID, userID)
	return int64(len(list)), nil
}

func (m *mockFlashcardRepo) Delete(_ context.Context, id, userID string) error {
	if f, ok := m.flashcards[id]; ok && f.CreatedBy == userID {
		delete(m.flashcards, id)
	}
	return nil
}

// ── Mock PreferenceRepository / GoalRepository ──

type mockPreferenceRepo struct {
	prefs map[string]*model.UserPreference // key: subjectID:userID
}

func newMockPreferenceRepo() *mockPreferenceRepo {
	return &mockPreferenceRepo{prefs: make(map[string]*model.UserPreference)}
}

func (m *mockPreferenceRepo) Upsert(_ context.Context, pref *model.UserPreference) error {
	m.prefs[pref.SubjectID+":"+pref.CreatedBy] = pref
	return nil
}

func (m *mockPreferenceRepo) GetBySubjectAndUser(_ context.Context, subjectID, userID string) (*model.UserPreference, error) {
	if p, ok := m.prefs[subjectID+":"+userID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type mockGoalRepo struct {
	goals map[string]*model.UserGoal
}

func newMockGoalRepo() *mockGoalRepo {
	return &mockGoalRepo{goals: make(map[string]*model.UserGoal)}
}

func (m *mockGoalRepo) Upsert(_ context.Context, goal *model.UserGoal) error {
	m.goals[goal.SubjectID+":"+goal.CreatedBy] = goal
	return nil
}

func (m *mockGoalRepo) GetBySubjectAndUser(_ context.Context, subjectID, userID string) (*model.UserGoal, error) {
	if g, ok := m.goals[subjectID+":"+userID]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock ScheduleActivityRepository ──

type mockScheduleActivityRepo struct {
	activities []model.ScheduleActivity
	seq        int
}

func newMockScheduleActivityRepo() *mockScheduleActivityRepo {
	return &mockScheduleActivityRepo{}
}

func (m *mockScheduleActivityRepo) ReplaceBySubjectAndUser(ctx context.Context, subjectID, userID string, activities []model.ScheduleActivity) error {
	if err := m.DeleteBySubjectAndUser(ctx, subjectID, userID); err != nil {
		return err
	}
	for i := range activities {
		m.seq++
		activities[i].ScheduleID = fmt.Sprintf("schedule-%d", m.seq)
	}
	m.activities = append(m.activities, activities...)
	return nil
}

func (m *mockScheduleActivityRepo) ListBySubjectAndUser(_ context.Context, subjectID, userID string) ([]model.ScheduleActivity, error) {
	var result []model.ScheduleActivity
	for _, a := range m.activities {
		if a.SubjectID == subjectID && a.CreatedBy == userID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

func (m *mockScheduleActivityRepo) DeleteBySubjectAndUser(_ context.Context, subjectID, userID string) error {
	kept := m.activities[:0]
	for _, a := range m.activities {
		if a.SubjectID != subjectID || a.CreatedBy != userID {
			kept = append(kept, a)
		}
	}
	m.activities = kept
	return nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments []model.Assignment
	seq         int
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{}
}

func (m *mockAssignmentRepo) ReplaceBySubjectAndUser(ctx context.Context, subjectID, userID string, assignments []model.Assignment) error {
	if err := m.DeleteBySubjectAndUser(ctx, subjectID, userID); err != nil {
		return err
	}
	for i := range assignments {
		m.seq++
		assignments[i].AssignmentID = fmt.Sprintf("assignment-%d", m.seq)
	}
	m.assignments = append(m.assignments, assignments...)
	return nil
}

func (m *mockAssignmentRepo) ListBySubjectAndUser(_ context.Context, subjectID, userID string) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.SubjectID == subjectID && a.CreatedBy == userID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockAssignmentRepo) GetByIDAndUser(_ context.Context, id, userID string) (*model.Assignment, error) {
	for i := range m.assignments {
		if m.assignments[i].AssignmentID == id && m.assignments[i].CreatedBy == userID {
			return &m.assignments[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) UpdateStatus(_ context.Context, id, status string) error {
	for i := range m.assignments {
		if m.assignments[i].AssignmentID == id {
			m.assignments[i].Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) DeleteBySubjectAndUser(_ context.Context, subjectID, userID string) error {
	kept := m.assignments[:0]
	for _, a := range m.assignments {
		if a.SubjectID != subjectID || a.CreatedBy != userID {
			kept = append(kept, a)
		}
	}
	m.assignments = kept
	return nil
}

// newTestRepository 装配全 Mock 的 Repository 聚合
func newTestRepository() *repository.Repository {
	return &repository.Repository{
		User:             newMockUserRepo(),
		Subject:          newMockSubjectRepo(),
		Topic:            newMockTopicRepo(),
		Question:         newMockQuestionRepo(),
		Flashcard:        newMockFlashcardRepo(),
		Preference:       newMockPreferenceRepo(),
		Goal:             newMockGoalRepo(),
		ScheduleActivity: newMockScheduleActivityRepo(),
		Assignment:       newMockAssignmentRepo(),
	}
}

// [自证通过] internal/service/mock_repos_test.go
