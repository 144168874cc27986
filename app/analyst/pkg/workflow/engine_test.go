package workflow

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	dm "github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/model"
)

// fakeChatModel 按队列返回预置响应的 LLM 替身
type fakeChatModel struct {
	responses []*schema.Message
	errs      []error
	calls     int
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return nil, errors.New("no more responses")
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported")
}

func (f *fakeChatModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return f, nil
}

func newTestEngine(cm model.ToolCallingChatModel) *Engine {
	return &Engine{
		chatModel: cm,
		limiter:   rate.NewLimiter(rate.Inf, 1),
	}
}

func TestPlanStageExtractsPlan(t *testing.T) {
	cm := &fakeChatModel{
		responses: []*schema.Message{
			schema.AssistantMessage(`<analysis_plan>
<step>
<name>基本面分析</name>
<method>财务指标分析</method>
<data_needed>财务数据</data_needed>
</step>
</analysis_plan>`, nil),
		},
	}
	e := newTestEngine(cm)

	result := &dm.AnalysisResult{Query: "分析贵州茅台"}
	e.planStage(context.Background(), result)

	if result.Stage != dm.StagePlanningComplete {
		t.Fatalf("stage = %q, want %q", result.Stage, dm.StagePlanningComplete)
	}
	if result.Plan == nil || len(result.Plan.Steps) != 1 {
		t.Fatalf("unexpected plan: %+v", result.Plan)
	}
	if got := result.Plan.Steps[0].Name; got != "基本面分析" {
		t.Errorf("step name = %q, want 基本面分析", got)
	}
	if len(result.Messages) != 1 || !strings.Contains(result.Messages[0], "分析计划制定完成") {
		t.Errorf("missing plan message, got %v", result.Messages)
	}
}

func TestPlanStageModelFailureFallsBack(t *testing.T) {
	cm := &fakeChatModel{errs: []error{errors.New("connection refused")}}
	e := newTestEngine(cm)

	result := &dm.AnalysisResult{Query: "分析贵州茅台"}
	e.planStage(context.Background(), result)

	if result.Plan == nil || len(result.Plan.Steps) != 1 {
		t.Fatalf("unexpected fallback plan: %+v", result.Plan)
	}
	step := result.Plan.Steps[0]
	if step.Name != "基础分析" || step.Method != "综合分析" || step.DataNeeded != "基础数据" {
		t.Errorf("fallback step = %+v", step)
	}
	if result.Stage != dm.StagePlanningComplete {
		t.Errorf("stage = %q, want %q", result.Stage, dm.StagePlanningComplete)
	}
}

func TestPlanStageGarbageOutputUsesDefaultPlan(t *testing.T) {
	cm := &fakeChatModel{
		responses: []*schema.Message{
			schema.AssistantMessage("抱歉，我无法给出结构化的计划。", nil),
		},
	}
	e := newTestEngine(cm)

	result := &dm.AnalysisResult{Query: "分析贵州茅台"}
	e.planStage(context.Background(), result)

	if result.Plan == nil || len(result.Plan.Steps) != 3 {
		t.Fatalf("expected canonical 3-step default plan, got %+v", result.Plan)
	}
	if got := result.Plan.Steps[0].Name; got != "基本面分析" {
		t.Errorf("first default step = %q", got)
	}
}

func TestReportStageExtractsReport(t *testing.T) {
	cm := &fakeChatModel{
		responses: []*schema.Message{
			schema.AssistantMessage(`<financial_report>
<executive_summary>摘要</executive_summary>
<detailed_report># 报告</detailed_report>
<investment_rating>买入</investment_rating>
<target_price>2000元</target_price>
<risk_factors>
<risk>政策风险</risk>
</risk_factors>
</financial_report>`, nil),
		},
	}
	e := newTestEngine(cm)

	result := &dm.AnalysisResult{Query: "分析贵州茅台", CollectedData: "数据"}
	e.reportStage(context.Background(), result)

	if result.Stage != dm.StageReportGenerated {
		t.Fatalf("stage = %q, want %q", result.Stage, dm.StageReportGenerated)
	}
	if result.Report.InvestmentRating != "买入" {
		t.Errorf("rating = %q, want 买入", result.Report.InvestmentRating)
	}
	if len(result.Report.RiskFactors) != 1 || result.Report.RiskFactors[0] != "政策风险" {
		t.Errorf("risk factors = %v", result.Report.RiskFactors)
	}
}

func TestReportStageModelFailureUsesDefaultReport(t *testing.T) {
	cm := &fakeChatModel{errs: []error{errors.New("boom")}}
	e := newTestEngine(cm)

	result := &dm.AnalysisResult{Query: "分析贵州茅台"}
	e.reportStage(context.Background(), result)

	if result.Report == nil {
		t.Fatal("report is nil")
	}
	if result.Report.InvestmentRating != "中性" {
		t.Errorf("rating = %q, want 中性", result.Report.InvestmentRating)
	}
	if len(result.Report.RiskFactors) == 0 {
		t.Error("default report has no risk factors")
	}
}

func TestGenerateNonRateLimitErrorNoRetry(t *testing.T) {
	cm := &fakeChatModel{errs: []error{errors.New("invalid api key")}}
	e := newTestEngine(cm)

	_, err := e.generate(context.Background(), []*schema.Message{schema.UserMessage("hi")})
	if err == nil {
		t.Fatal("expected error")
	}
	if cm.calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on non-429 error)", cm.calls)
	}
}

func TestIsRateLimited(t *testing.T) {
	cases := []struct {
		err  string
		want bool
	}{
		{"status code 429", true},
		{"Too Many Requests", true},
		{"connection refused", false},
	}
	for _, c := range cases {
		if got := isRateLimited(errors.New(c.err)); got != c.want {
			t.Errorf("isRateLimited(%q) = %v, want %v", c.err, got, c.want)
		}
	}
}

func TestRunRejectsEmptyQuery(t *testing.T) {
	e := newTestEngine(&fakeChatModel{})

	if _, err := e.Run(context.Background(), RunOptions{Query: "   "}); err == nil {
		t.Fatal("expected error for empty query")
	}
}
