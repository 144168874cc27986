package extract

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/logger"
	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/model"
)

const (
	reportBeginMarker = "<financial_report>"
	reportEndMarker   = "</financial_report>"

	defaultSummary    = "默认摘要"
	defaultDetail     = "# 默认报告\n\n分析完成。"
	defaultRating     = "持有"
	defaultPrice      = "市场价格"
	defaultRiskFactor = "一般风险"
)

// DefaultReport 兜底的分析报告。任何解析失败都会落到这份报告上。
func DefaultReport() *model.FinancialReport {
	return &model.FinancialReport{
		ExecutiveSummary: "生成默认分析报告",
		DetailedReport:   "# 默认投资分析报告\n\n基础分析已完成，建议进一步研究。",
		InvestmentRating: "中性",
		TargetPrice:      "待定",
		RiskFactors:      []string{"一般市场风险"},
	}
}

// ExtractReport 将模型输出解析为投资分析报告。永不失败：
// 解析异常时记录原因并返回默认报告。
func ExtractReport(raw string) *model.FinancialReport {
	report, err := parseReport(raw)
	if err != nil {
		logger.Log.Warnf("报告解析失败: %v，使用默认报告", err)
		return DefaultReport()
	}
	logger.Log.Info("报告解析成功")
	return report
}

func parseReport(raw string) (*model.FinancialReport, error) {
	text := sliceMarked(raw, reportBeginMarker, reportEndMarker)

	doc, err := xmlquery.Parse(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("XML 解析失败: %w", err)
	}

	root := xmlquery.FindOne(doc, "//financial_report")
	if root == nil {
		return nil, fmt.Errorf("缺少 %s 根节点", reportBeginMarker)
	}

	report := &model.FinancialReport{
		ExecutiveSummary: childText(root, "executive_summary", defaultSummary),
		DetailedReport:   childText(root, "detailed_report", defaultDetail),
		InvestmentRating: childText(root, "investment_rating", defaultRating),
		TargetPrice:      childText(root, "target_price", defaultPrice),
	}

	// 风险因素按文档顺序收集，空文本跳过
	if container := root.SelectElement("risk_factors"); container != nil {
		for _, el := range xmlquery.Find(container, "risk") {
			if text := strings.TrimSpace(el.InnerText()); text != "" {
				report.RiskFactors = append(report.RiskFactors, text)
			}
		}
	}
	if len(report.RiskFactors) == 0 {
		report.RiskFactors = []string{defaultRiskFactor}
	}

	return report, nil
}
