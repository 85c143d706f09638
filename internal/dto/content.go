package dto

// ── 学习素材模块 DTO ──

// CreateTopicRequest 创建主题请求
type CreateTopicRequest struct {
	TopicName string `json:"topic_name" binding:"required,min=1"`
	ModuleNo  int    `json:"module_no"  binding:"omitempty,min=1"`
}

// CreateQuestionRequest 创建题目请求
type CreateQuestionRequest struct {
	QuestionText string `json:"question_text" binding:"required,min=1"`
	AnswerText   string `json:"answer_text"`
	ModuleNo     int    `json:"module_no" binding:"omitempty,min=1"`
}

// CreateFlashcardRequest 创建记忆卡请求
type CreateFlashcardRequest struct {
	QuestionText string `json:"question_text" binding:"required,min=1"`
	AnswerText   string `json:"answer_text"`
	ModuleNo     int    `json:"module_no" binding:"omitempty,min=1"`
}

// TopicResponse 主题响应
type TopicResponse struct {
	ID        string `json:"id"`
	TopicName string `json:"topic_name"`
	ModuleNo  int    `json:"module_no"`
	CreatedAt string `json:"created_at"`
}

// QuestionResponse 题目响应
type QuestionResponse struct {
	ID           string `json:"id"`
	QuestionText string `json:"question_text"`
	AnswerText   string `json:"answer_text"`
	ModuleNo     int    `json:"module_no"`
	CreatedAt    string `json:"created_at"`
}

// FlashcardResponse 记忆卡响应
type FlashcardResponse struct {
	ID           string `json:"id"`
	QuestionText string `json:"question_text"`
	AnswerText   string `json:"answer_text"`
	ModuleNo     int    `json:"module_no"`
	CreatedAt    string `json:"created_at"`
}

// [自证通过] internal/dto/content.go
