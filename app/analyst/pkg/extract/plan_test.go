package extract

import (
	"reflect"
	"testing"

	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/model"
)

const wellFormedPlan = `<analysis_plan>
<step>
<name>基本面分析</name>
<method>财务指标分析</method>
<data_needed>财报数据</data_needed>
</step>
<step>
<name>技术面分析</name>
<method>K线形态分析</method>
<data_needed>历史价格</data_needed>
</step>
</analysis_plan>`

func TestExtractPlanWellFormed(t *testing.T) {
	plan := ExtractPlan(wellFormedPlan)

	want := []model.AnalysisStep{
		{Name: "基本面分析", Method: "财务指标分析", DataNeeded: "财报数据"},
		{Name: "技术面分析", Method: "K线形态分析", DataNeeded: "历史价格"},
	}
	if !reflect.DeepEqual(plan.Steps, want) {
		t.Errorf("ExtractPlan() steps = %+v, want %+v", plan.Steps, want)
	}
}

func TestExtractPlanMissingField(t *testing.T) {
	raw := `<analysis_plan>
<step>
<name>基本面分析</name>
<data_needed>财报数据</data_needed>
</step>
<step>
<name>技术面分析</name>
<method>K线形态分析</method>
<data_needed>历史价格</data_needed>
</step>
</analysis_plan>`

	plan := ExtractPlan(raw)
	if len(plan.Steps) != 2 {
		t.Fatalf("ExtractPlan() step count = %d, want 2", len(plan.Steps))
	}

	// 缺失的 method 单独兜底，不影响同一步骤的其他字段
	if plan.Steps[0].Method != defaultStepMethod {
		t.Errorf("step[0].Method = %q, want %q", plan.Steps[0].Method, defaultStepMethod)
	}
	if plan.Steps[0].Name != "基本面分析" || plan.Steps[0].DataNeeded != "财报数据" {
		t.Errorf("step[0] other fields changed: %+v", plan.Steps[0])
	}
	// 兄弟步骤不受影响
	if plan.Steps[1].Method != "K线形态分析" {
		t.Errorf("step[1].Method = %q, want K线形态分析", plan.Steps[1].Method)
	}
}

func TestExtractPlanSurroundingProse(t *testing.T) {
	wrapped := "好的，以下是分析计划：\n" + wellFormedPlan + "\n希望对你有帮助。"

	got := ExtractPlan(wrapped)
	want := ExtractPlan(wellFormedPlan)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("prose-wrapped plan differs from bare fragment:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestExtractPlanFallback(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty input", ""},
		{"unclosed markup", "garbage <not closed"},
		{"no plan root", "<other><step><name>x</name></step></other>"},
		{"plan without steps", "<analysis_plan></analysis_plan>"},
	}

	want := DefaultPlan()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractPlan(tc.raw)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("ExtractPlan(%q) = %+v, want canonical default", tc.raw, got)
			}
		})
	}
}

func TestExtractPlanIdempotent(t *testing.T) {
	inputs := []string{wellFormedPlan, "", "garbage <not closed"}
	for _, raw := range inputs {
		first := ExtractPlan(raw)
		second := ExtractPlan(raw)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("ExtractPlan(%q) not idempotent: %+v vs %+v", raw, first, second)
		}
	}
}
