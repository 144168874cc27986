package biz

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"
)

// PlanStep 分析计划中的单个步骤
type PlanStep struct {
	Name       string
	Method     string
	DataNeeded string
}

// Report 投资分析报告
type Report struct {
	ExecutiveSummary string
	DetailedReport   string
	InvestmentRating string
	TargetPrice      string
	RiskFactors      []string
}

// RunSummary 分析运行的摘要信息
type RunSummary struct {
	ID        int
	Query     string
	Stage     string
	CreatedAt string
}

// RunDetail 分析运行详情，含计划、报告与深度分析
type RunDetail struct {
	ID            int
	Query         string
	Stage         string
	CreatedAt     string
	Plan          []PlanStep
	CollectedData string
	Report        *Report
	DeepAnalysis  string
}

type RunRepo interface {
	ListRuns(ctx context.Context, page, pageSize int) ([]*RunSummary, int, error)
	GetRun(ctx context.Context, id int) (*RunDetail, error)
}

// RunUseCase 分析运行业务逻辑
type RunUseCase struct {
	repo RunRepo
	log  *log.Helper
}

// NewRunUseCase 创建分析运行业务逻辑实例
func NewRunUseCase(repo RunRepo, logger log.Logger) *RunUseCase {
	return &RunUseCase{repo: repo, log: log.NewHelper(logger)}
}

// List 分页列出分析运行摘要
func (uc *RunUseCase) List(ctx context.Context, page, pageSize int) ([]*RunSummary, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return uc.repo.ListRuns(ctx, page, pageSize)
}

// Get 根据ID获取分析运行详情
func (uc *RunUseCase) Get(ctx context.Context, id int) (*RunDetail, error) {
	return uc.repo.GetRun(ctx, id)
}
