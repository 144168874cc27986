package model

// AnalysisStep 分析计划中的单个步骤
type AnalysisStep struct {
	Name       string // 分析步骤名称
	Method     string // 使用的分析方法
	DataNeeded string // 此步骤需要的数据
}

// AnalysisPlan 有序的分析计划。不变式：步骤序列非空。
type AnalysisPlan struct {
	Steps []AnalysisStep
}

// FinancialReport 投资分析报告。不变式：RiskFactors 非空。
type FinancialReport struct {
	ExecutiveSummary string   // 执行摘要
	DetailedReport   string   // 详细分析报告 (Markdown)
	InvestmentRating string   // 投资评级
	TargetPrice      string   // 目标价位
	RiskFactors      []string // 风险因素
}

// 工作流阶段标识
const (
	StagePlanningComplete  = "planning_complete"
	StageDataCollected     = "data_collected"
	StageReportGenerated   = "report_generated"
	StageAnalysisCompleted = "analysis_completed"
)

// AnalysisResult 一次完整分析的状态与产物
type AnalysisResult struct {
	Query         string
	Plan          *AnalysisPlan
	CollectedData string
	Report        *FinancialReport
	DeepAnalysis  string
	Stage         string
	Messages      []string // 面向用户的 Markdown 过程记录
}
