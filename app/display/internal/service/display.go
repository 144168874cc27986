package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/display/internal/biz"
)

// RunSummaryReply 运行摘要响应
type RunSummaryReply struct {
	ID        int    `json:"id"`
	Query     string `json:"query"`
	Stage     string `json:"stage"`
	CreatedAt string `json:"created_at"`
}

// ListRunsReply 运行列表响应
type ListRunsReply struct {
	Runs  []*RunSummaryReply `json:"runs"`
	Total int                `json:"total"`
}

// PlanStepReply 计划步骤响应
type PlanStepReply struct {
	Name       string `json:"name"`
	Method     string `json:"method"`
	DataNeeded string `json:"data_needed"`
}

// ReportReply 投资分析报告响应
type ReportReply struct {
	ExecutiveSummary string   `json:"executive_summary"`
	DetailedReport   string   `json:"detailed_report"`
	InvestmentRating string   `json:"investment_rating"`
	TargetPrice      string   `json:"target_price"`
	RiskFactors      []string `json:"risk_factors"`
}

// RunDetailReply 运行详情响应
type RunDetailReply struct {
	ID            int             `json:"id"`
	Query         string          `json:"query"`
	Stage         string          `json:"stage"`
	CreatedAt     string          `json:"created_at"`
	Plan          []PlanStepReply `json:"plan"`
	CollectedData string          `json:"collected_data"`
	Report        *ReportReply    `json:"report,omitempty"`
	DeepAnalysis  string          `json:"deep_analysis"`
}

// DisplayService 分析结果展示服务
type DisplayService struct {
	ucRun *biz.RunUseCase
	log   *log.Helper
}

func NewDisplayService(ucRun *biz.RunUseCase, logger log.Logger) *DisplayService {
	return &DisplayService{
		ucRun: ucRun,
		log:   log.NewHelper(logger),
	}
}

// ListRuns 分页列出分析运行
func (s *DisplayService) ListRuns(ctx context.Context, page, pageSize int) (*ListRunsReply, error) {
	runs, total, err := s.ucRun.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]*RunSummaryReply, 0, len(runs))
	for _, r := range runs {
		list = append(list, &RunSummaryReply{
			ID:        r.ID,
			Query:     r.Query,
			Stage:     r.Stage,
			CreatedAt: r.CreatedAt,
		})
	}

	return &ListRunsReply{Runs: list, Total: total}, nil
}

// GetRun 获取分析运行详情
func (s *DisplayService) GetRun(ctx context.Context, id int) (*RunDetailReply, error) {
	r, err := s.ucRun.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	reply := &RunDetailReply{
		ID:            r.ID,
		Query:         r.Query,
		Stage:         r.Stage,
		CreatedAt:     r.CreatedAt,
		CollectedData: r.CollectedData,
		DeepAnalysis:  r.DeepAnalysis,
	}
	for _, step := range r.Plan {
		reply.Plan = append(reply.Plan, PlanStepReply{
			Name:       step.Name,
			Method:     step.Method,
			DataNeeded: step.DataNeeded,
		})
	}
	if r.Report != nil {
		reply.Report = &ReportReply{
			ExecutiveSummary: r.Report.ExecutiveSummary,
			DetailedReport:   r.Report.DetailedReport,
			InvestmentRating: r.Report.InvestmentRating,
			TargetPrice:      r.Report.TargetPrice,
			RiskFactors:      r.Report.RiskFactors,
		}
	}

	return reply, nil
}
