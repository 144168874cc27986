package extract

import (
	"reflect"
	"testing"
)

const wellFormedReport = `<financial_report>
<executive_summary>公司基本面稳健，建议关注。</executive_summary>
<detailed_report># 分析报告

盈利能力持续改善。</detailed_report>
<investment_rating>买入</investment_rating>
<target_price>150元</target_price>
<risk_factors>
<risk>A</risk>
<risk>B</risk>
</risk_factors>
</financial_report>`

func TestExtractReportWellFormed(t *testing.T) {
	report := ExtractReport(wellFormedReport)

	if report.ExecutiveSummary != "公司基本面稳健，建议关注。" {
		t.Errorf("ExecutiveSummary = %q", report.ExecutiveSummary)
	}
	if report.InvestmentRating != "买入" {
		t.Errorf("InvestmentRating = %q, want 买入", report.InvestmentRating)
	}
	if report.TargetPrice != "150元" {
		t.Errorf("TargetPrice = %q, want 150元", report.TargetPrice)
	}
	if want := []string{"A", "B"}; !reflect.DeepEqual(report.RiskFactors, want) {
		t.Errorf("RiskFactors = %v, want %v (order preserved)", report.RiskFactors, want)
	}
}

func TestExtractReportNoRisks(t *testing.T) {
	raw := `<financial_report>
<executive_summary>摘要</executive_summary>
<detailed_report>正文</detailed_report>
<investment_rating>持有</investment_rating>
<target_price>100元</target_price>
<risk_factors>
</risk_factors>
</financial_report>`

	report := ExtractReport(raw)
	if len(report.RiskFactors) != 1 || report.RiskFactors[0] != defaultRiskFactor {
		t.Errorf("RiskFactors = %v, want [%s]", report.RiskFactors, defaultRiskFactor)
	}
}

func TestExtractReportMissingFields(t *testing.T) {
	raw := `<financial_report>
<investment_rating>卖出</investment_rating>
</financial_report>`

	report := ExtractReport(raw)

	// 各字段独立兜底，已有字段保持原值
	if report.ExecutiveSummary != defaultSummary {
		t.Errorf("ExecutiveSummary = %q, want %q", report.ExecutiveSummary, defaultSummary)
	}
	if report.DetailedReport != defaultDetail {
		t.Errorf("DetailedReport = %q, want %q", report.DetailedReport, defaultDetail)
	}
	if report.InvestmentRating != "卖出" {
		t.Errorf("InvestmentRating = %q, want 卖出", report.InvestmentRating)
	}
	if report.TargetPrice != defaultPrice {
		t.Errorf("TargetPrice = %q, want %q", report.TargetPrice, defaultPrice)
	}
	if len(report.RiskFactors) != 1 || report.RiskFactors[0] != defaultRiskFactor {
		t.Errorf("RiskFactors = %v, want [%s]", report.RiskFactors, defaultRiskFactor)
	}
}

func TestExtractReportSurroundingProse(t *testing.T) {
	wrapped := "以下是投资分析报告：\n" + wellFormedReport + "\n以上，仅供参考。"

	got := ExtractReport(wrapped)
	want := ExtractReport(wellFormedReport)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("prose-wrapped report differs from bare fragment:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestExtractReportFallback(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty input", ""},
		{"unclosed markup", "garbage <not closed"},
		{"wrong root", "<plan><foo/></plan>"},
	}

	want := DefaultReport()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractReport(tc.raw)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("ExtractReport(%q) = %+v, want canonical default", tc.raw, got)
			}
		})
	}
}

func TestExtractReportIdempotent(t *testing.T) {
	inputs := []string{wellFormedReport, "", "garbage <not closed"}
	for _, raw := range inputs {
		first := ExtractReport(raw)
		second := ExtractReport(raw)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("ExtractReport(%q) not idempotent", raw)
		}
	}
}
