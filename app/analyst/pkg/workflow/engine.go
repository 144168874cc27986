// Package workflow 实现四阶段投资分析流水线：
// 规划 → 数据收集 → 报告生成 → 智能深度分析。
package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/gg/gson"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/flow/agent/react"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/config"
	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/extract"
	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/logger"
	dm "github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/model"
	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/render"
	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/search/factory"
	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/storage"
	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/tools"
)

// Engine 分析工作流引擎
type Engine struct {
	cfg       *config.Config
	store     *storage.Storage
	chatModel model.ToolCallingChatModel
	dataAgent *react.Agent
	deepAgent *react.Agent
	limiter   *rate.Limiter
}

// NewEngine 创建引擎实例。store 允许为 nil，此时结果只输出不落库。
func NewEngine(ctx context.Context, cfg *config.Config, store *storage.Storage) (*Engine, error) {
	// 初始化 LLM
	modelConf := &openai.ChatModelConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	}
	if cfg.LLM.MaxTokens > 0 {
		modelConf.MaxTokens = &cfg.LLM.MaxTokens
	}
	chatModel, err := openai.NewChatModel(ctx, modelConf)
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	// 初始化限流器
	limit := rate.Limit(float64(cfg.Concurrency.RPM) / 60.0)
	limiter := rate.NewLimiter(limit, cfg.Concurrency.QPS)

	// 搜索后端可选：未配置时代理退化为纯模拟工具集
	searcher, err := factory.NewSearcher(cfg)
	if err != nil {
		logger.Log.Warnf("搜索客户端不可用: %v，web_search 工具将被禁用", err)
		searcher = nil
	}

	basicTools, err := tools.Basic(searcher)
	if err != nil {
		return nil, fmt.Errorf("基础工具集初始化失败: %w", err)
	}
	advancedTools, err := tools.Advanced(searcher)
	if err != nil {
		return nil, fmt.Errorf("高级工具集初始化失败: %w", err)
	}

	dataAgent, err := newReactAgent(ctx, chatModel, basicTools, dataCollectionInstructions)
	if err != nil {
		return nil, fmt.Errorf("数据收集代理初始化失败: %w", err)
	}
	deepAgent, err := newReactAgent(ctx, chatModel, advancedTools, deepDiveInstructions)
	if err != nil {
		return nil, fmt.Errorf("深度分析代理初始化失败: %w", err)
	}

	return &Engine{
		cfg:       cfg,
		store:     store,
		chatModel: chatModel,
		dataAgent: dataAgent,
		deepAgent: deepAgent,
		limiter:   limiter,
	}, nil
}

// newReactAgent 构建带固定系统提示词的 ReAct 代理
func newReactAgent(ctx context.Context, cm model.ToolCallingChatModel, toolSet []tool.BaseTool, systemPrompt string) (*react.Agent, error) {
	return react.NewAgent(ctx, &react.AgentConfig{
		ToolCallingModel: cm,
		ToolsConfig: compose.ToolsNodeConfig{
			Tools: toolSet,
		},
		MessageModifier: func(ctx context.Context, input []*schema.Message) []*schema.Message {
			return append([]*schema.Message{schema.SystemMessage(systemPrompt)}, input...)
		},
		MaxStep: 12,
	})
}

// RunOptions 运行选项
type RunOptions struct {
	Query            string
	ProgressCallback func(status string, progress int)
}

// Run 执行一次完整的四阶段分析
func (e *Engine) Run(ctx context.Context, opts RunOptions) (*dm.AnalysisResult, error) {
	query := strings.TrimSpace(opts.Query)
	if query == "" {
		return nil, fmt.Errorf("no query provided")
	}

	logger.Log.Infof("开始执行投资分析工作流: %s", query)
	progress(opts, "starting", 0)

	result := &dm.AnalysisResult{Query: query}

	// 创建本次运行记录
	var runID int
	if e.store != nil {
		rid, err := e.store.CreateRun(query)
		if err != nil {
			logger.Log.Errorf("无法创建运行记录: %v", err)
		} else {
			runID = rid
		}
	}

	// 1. 分析规划
	e.planStage(ctx, result)
	if e.store != nil && runID > 0 {
		if err := e.store.SavePlan(runID, result.Plan); err != nil {
			logger.Log.Errorf("保存分析计划失败: %v", err)
		}
		e.saveStage(runID, result.Stage)
	}
	progress(opts, "planning complete", 25)

	// 2. 数据收集
	if err := e.collectStage(ctx, result); err != nil {
		return nil, err
	}
	if e.store != nil && runID > 0 {
		if err := e.store.SaveCollectedData(runID, result.CollectedData); err != nil {
			logger.Log.Errorf("保存收集数据失败: %v", err)
		}
		e.saveStage(runID, result.Stage)
	}
	progress(opts, "data collected", 55)

	// 3. 报告生成
	e.reportStage(ctx, result)
	if e.store != nil && runID > 0 {
		if err := e.store.SaveReport(runID, result.Report); err != nil {
			logger.Log.Errorf("保存分析报告失败: %v", err)
		}
		e.saveStage(runID, result.Stage)
	}
	progress(opts, "report generated", 80)

	// 4. 智能深度分析
	if err := e.deepDiveStage(ctx, result); err != nil {
		return nil, err
	}
	if e.store != nil && runID > 0 {
		if err := e.store.SaveDeepAnalysis(runID, result.DeepAnalysis); err != nil {
			logger.Log.Errorf("保存深度分析失败: %v", err)
		}
		e.saveStage(runID, result.Stage)
	}
	progress(opts, "completed", 100)

	logger.Log.Info("✅ 投资分析工作流执行完毕")
	return result, nil
}

// planStage 制定分析计划。本阶段永不失败：
// LLM 调用失败时退化为单步兜底计划，解析失败由提取层兜底。
func (e *Engine) planStage(ctx context.Context, result *dm.AnalysisResult) {
	logger.Log.Info("🎯 开始执行分析规划阶段")

	resp, err := e.generate(ctx, []*schema.Message{
		schema.SystemMessage(plannerInstructions),
		schema.UserMessage(result.Query),
	})

	var plan *dm.AnalysisPlan
	if err != nil {
		logger.Log.Errorf("规划阶段执行失败: %v，使用兜底计划", err)
		plan = &dm.AnalysisPlan{
			Steps: []dm.AnalysisStep{
				{Name: "基础分析", Method: "综合分析", DataNeeded: "基础数据"},
			},
		}
	} else {
		logger.Log.Debugf("规划阶段原始输出: %s", gson.ToString(resp))
		plan = extract.ExtractPlan(resp.Content)
	}

	result.Plan = plan
	result.Stage = dm.StagePlanningComplete
	result.Messages = append(result.Messages, render.PlanMessage(plan))
}

// collectStage 按计划驱动数据收集代理
func (e *Engine) collectStage(ctx context.Context, result *dm.AnalysisResult) error {
	logger.Log.Info("📊 开始执行数据收集阶段")

	var sb strings.Builder
	for i, step := range result.Plan.Steps {
		fmt.Fprintf(&sb, "步骤%d: 执行%s，使用%s方法，收集%s\n", i+1, step.Name, step.Method, step.DataNeeded)
		logger.Log.Infof("📋 收集任务%d: %s", i+1, step.Name)
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return err
	}
	out, err := e.dataAgent.Generate(ctx, []*schema.Message{
		schema.UserMessage(sb.String()),
	})
	if err != nil {
		return fmt.Errorf("数据收集失败: %w", err)
	}

	result.CollectedData = out.Content
	result.Stage = dm.StageDataCollected
	result.Messages = append(result.Messages, render.CollectMessage(out.Content))
	logger.Log.Info("✅ 数据收集完成")
	return nil
}

// reportStage 生成投资分析报告。本阶段永不失败：
// LLM 调用失败时使用默认报告，解析失败由提取层兜底。
func (e *Engine) reportStage(ctx context.Context, result *dm.AnalysisResult) {
	logger.Log.Info("📝 开始执行报告生成阶段")

	input := fmt.Sprintf("用户需求: %s\n收集的数据: %s", result.Query, result.CollectedData)
	resp, err := e.generate(ctx, []*schema.Message{
		schema.SystemMessage(reportInstructions),
		schema.UserMessage(input),
	})

	var report *dm.FinancialReport
	if err != nil {
		logger.Log.Errorf("报告生成失败: %v，使用默认报告", err)
		report = extract.DefaultReport()
	} else {
		logger.Log.Debugf("报告阶段原始输出: %s", gson.ToString(resp))
		report = extract.ExtractReport(resp.Content)
	}

	result.Report = report
	result.Stage = dm.StageReportGenerated
	result.Messages = append(result.Messages, render.ReportMessage(report))
	logger.Log.Info("✅ 分析报告生成完成")
}

// deepDiveStage 智能代理深度分析
func (e *Engine) deepDiveStage(ctx context.Context, result *dm.AnalysisResult) error {
	logger.Log.Info("🤖 开始执行智能深度分析阶段")

	if err := e.limiter.Wait(ctx); err != nil {
		return err
	}
	out, err := e.deepAgent.Generate(ctx, []*schema.Message{
		schema.UserMessage(fmt.Sprintf(deepDiveTaskTpl, result.Query)),
	})
	if err != nil {
		return fmt.Errorf("深度分析失败: %w", err)
	}

	result.DeepAnalysis = out.Content
	result.Stage = dm.StageAnalysisCompleted
	result.Messages = append(result.Messages, render.DeepDiveMessage(out.Content))
	logger.Log.Info("✅ 智能深度分析完成")
	return nil
}

// generate 带限流与 429 重试的 LLM 调用
func (e *Engine) generate(ctx context.Context, messages []*schema.Message) (*schema.Message, error) {
	const maxRetries = 3
	baseDelay := 2 * time.Second
	var lastErr error

	for i := 0; i <= maxRetries; i++ {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := e.chatModel.Generate(ctx, messages)
		if err != nil {
			if isRateLimited(err) && i < maxRetries {
				lastErr = err
				delay := baseDelay * time.Duration(1<<i)
				logger.Log.Warnf("触发 429 限流，等待 %v 后重试 (%d/%d)...", delay, i+1, maxRetries)
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(delay):
					continue
				}
			}
			return nil, err
		}
		return resp, nil
	}
	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests")
}

func (e *Engine) saveStage(runID int, stage string) {
	if err := e.store.UpdateRunStage(runID, stage); err != nil {
		logger.Log.Errorf("更新运行阶段失败: %v", err)
	}
}

func progress(opts RunOptions, status string, pct int) {
	if opts.ProgressCallback != nil {
		opts.ProgressCallback(status, pct)
	}
}
