// Package render 负责把分析产物渲染为面向用户的 Markdown 过程记录与 HTML 页面。
package render

import (
	"fmt"
	"strings"

	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/model"
)

// PlanMessage 分析计划的过程记录
func PlanMessage(plan *model.AnalysisPlan) string {
	var sb strings.Builder
	sb.WriteString("🎯 **分析计划制定完成**\n\n")
	for i, step := range plan.Steps {
		fmt.Fprintf(&sb, "**步骤 %d: %s**\n", i+1, step.Name)
		fmt.Fprintf(&sb, "• 分析方法: %s\n", step.Method)
		fmt.Fprintf(&sb, "• 所需数据: %s\n\n", step.DataNeeded)
	}
	return sb.String()
}

// CollectMessage 数据收集的过程记录
func CollectMessage(collected string) string {
	return "📊 **数据收集完成**\n\n" + collected
}

// ReportMessage 投资分析报告的过程记录
func ReportMessage(report *model.FinancialReport) string {
	var sb strings.Builder
	sb.WriteString("📊 **投资分析报告**\n\n")
	fmt.Fprintf(&sb, "**🎯 投资评级:** %s\n", report.InvestmentRating)
	fmt.Fprintf(&sb, "**💰 目标价格:** %s\n\n", report.TargetPrice)
	fmt.Fprintf(&sb, "**📋 执行摘要:**\n%s\n\n", report.ExecutiveSummary)
	sb.WriteString("**⚠️ 主要风险因素:**\n")
	for _, risk := range report.RiskFactors {
		fmt.Fprintf(&sb, "• %s\n", risk)
	}
	fmt.Fprintf(&sb, "\n**📈 详细报告:**\n%s", report.DetailedReport)
	return sb.String()
}

// DeepDiveMessage 深度分析的过程记录，附结束横幅
func DeepDiveMessage(analysis string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🤖 **智能深度分析报告**\n\n%s\n\n", analysis)
	sb.WriteString(strings.Repeat("=", 50) + "\n")
	sb.WriteString("🎉 **分析完成！** 感谢使用金融投资分析系统\n")
	sb.WriteString("💡 如需进一步分析，请提出新的问题")
	return sb.String()
}
