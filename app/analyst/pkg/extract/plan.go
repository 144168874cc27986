package extract

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/logger"
	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/model"
)

const (
	planBeginMarker = "<analysis_plan>"
	planEndMarker   = "</analysis_plan>"

	defaultStepName   = "默认步骤"
	defaultStepMethod = "默认方法"
	defaultStepData   = "基础数据"
)

// DefaultPlan 兜底的三步分析计划。任何解析失败都会落到这份计划上。
func DefaultPlan() *model.AnalysisPlan {
	return &model.AnalysisPlan{
		Steps: []model.AnalysisStep{
			{
				Name:       "基本面分析",
				Method:     "财务指标分析",
				DataNeeded: "股价、财务数据、市场数据",
			},
			{
				Name:       "技术面分析",
				Method:     "技术指标分析",
				DataNeeded: "价格走势、技术指标",
			},
			{
				Name:       "行业分析",
				Method:     "行业比较分析",
				DataNeeded: "行业新闻、市场趋势",
			},
		},
	}
}

// ExtractPlan 将模型输出解析为分析计划。永不失败：
// 解析异常时记录原因并返回默认计划。
func ExtractPlan(raw string) *model.AnalysisPlan {
	plan, err := parsePlan(raw)
	if err != nil {
		logger.Log.Warnf("分析计划解析失败: %v，使用默认计划", err)
		return DefaultPlan()
	}
	logger.Log.Infof("分析计划解析成功，共解析到 %d 个分析步骤", len(plan.Steps))
	return plan
}

func parsePlan(raw string) (*model.AnalysisPlan, error) {
	text := sliceMarked(raw, planBeginMarker, planEndMarker)

	doc, err := xmlquery.Parse(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("XML 解析失败: %w", err)
	}

	root := xmlquery.FindOne(doc, "//analysis_plan")
	if root == nil {
		return nil, fmt.Errorf("缺少 %s 根节点", planBeginMarker)
	}

	var steps []model.AnalysisStep
	for _, el := range xmlquery.Find(root, "step") {
		// 单个字段缺失只影响该字段，兄弟步骤照常提取
		steps = append(steps, model.AnalysisStep{
			Name:       childText(el, "name", defaultStepName),
			Method:     childText(el, "method", defaultStepMethod),
			DataNeeded: childText(el, "data_needed", defaultStepData),
		})
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("计划中不包含任何分析步骤")
	}

	return &model.AnalysisPlan{Steps: steps}, nil
}
