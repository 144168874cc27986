package render

import (
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/model"
)

// htmlData 模板渲染数据
type htmlData struct {
	Date   string
	Result *model.AnalysisResult
}

const htmlTpl = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>投资分析报告</title>
    <script src="https://cdn.jsdelivr.net/npm/marked/marked.min.js"></script>
    <style>
        :root {
            --primary-color: #2563eb;
            --bg-color: #f8fafc;
            --card-bg: #ffffff;
            --text-main: #1e293b;
            --text-secondary: #64748b;
            --border-color: #e2e8f0;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            background-color: var(--bg-color);
            color: var(--text-main);
            line-height: 1.6;
            margin: 0;
            padding: 20px;
        }
        .container { max-width: 900px; margin: 0 auto; }
        header { text-align: center; margin-bottom: 40px; padding: 20px 0; }
        h1 { font-size: 2.2rem; margin: 0 0 10px 0; }
        .date-info { color: var(--text-secondary); }
        .card {
            background: var(--card-bg);
            border-radius: 12px;
            padding: 24px;
            margin-bottom: 30px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.05);
            border: 1px solid var(--border-color);
        }
        .card-title { font-size: 1.4rem; font-weight: bold; margin-bottom: 16px; border-bottom: 2px solid var(--primary-color); padding-bottom: 8px; display: inline-block; }
        .rating-row { display: flex; gap: 16px; margin-bottom: 16px; }
        .rating-badge { background: #dcfce7; color: #166534; padding: 4px 14px; border-radius: 20px; font-weight: bold; }
        .price-badge { background: #eff6ff; color: #1d4ed8; padding: 4px 14px; border-radius: 20px; font-weight: bold; }
        .plan-step { background: #f8fafc; padding: 14px 18px; border-radius: 8px; border-left: 4px solid var(--primary-color); margin-bottom: 12px; }
        .plan-step .step-name { font-weight: bold; }
        .risks li { margin-bottom: 6px; color: #991b1b; }
        .markdown-body { color: #334155; }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>📈 投资分析报告</h1>
            <div class="date-info">{{ .Date }} • {{ .Result.Query }}</div>
        </header>

        {{if .Result.Plan}}
        <div class="card">
            <div class="card-title">🎯 分析计划</div>
            {{range $i, $step := .Result.Plan.Steps}}
            <div class="plan-step">
                <div class="step-name">{{ $step.Name }}</div>
                <div>分析方法: {{ $step.Method }}</div>
                <div>所需数据: {{ $step.DataNeeded }}</div>
            </div>
            {{end}}
        </div>
        {{end}}

        {{if .Result.Report}}
        <div class="card">
            <div class="card-title">📊 投资结论</div>
            <div class="rating-row">
                <span class="rating-badge">评级: {{ .Result.Report.InvestmentRating }}</span>
                <span class="price-badge">目标价: {{ .Result.Report.TargetPrice }}</span>
            </div>
            <p>{{ .Result.Report.ExecutiveSummary }}</p>
            <h4>⚠️ 主要风险因素</h4>
            <ul class="risks">
                {{range .Result.Report.RiskFactors}}
                <li>{{ . }}</li>
                {{end}}
            </ul>
            <h4>📈 详细报告</h4>
            <div class="markdown-body" id="detail"></div>
            <div style="display:none" id="raw-detail">{{ .Result.Report.DetailedReport }}</div>
        </div>
        {{end}}

        {{if .Result.DeepAnalysis}}
        <div class="card">
            <div class="card-title">🤖 智能深度分析</div>
            <div class="markdown-body" id="deep"></div>
            <div style="display:none" id="raw-deep">{{ .Result.DeepAnalysis }}</div>
        </div>
        {{end}}
    </div>

    <script>
        document.addEventListener('DOMContentLoaded', function() {
            const detailRaw = document.getElementById('raw-detail');
            if (detailRaw) document.getElementById('detail').innerHTML = marked.parse(detailRaw.textContent);

            const deepRaw = document.getElementById('raw-deep');
            if (deepRaw) document.getElementById('deep').innerHTML = marked.parse(deepRaw.textContent);
        });
    </script>
</body>
</html>
`

// WriteHTML 将分析结果渲染到 HTML 文件
func WriteHTML(path string, result *model.AnalysisResult) error {
	t, err := template.New("report").Parse(htmlTpl)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	data := htmlData{
		Date:   time.Now().Format("2006-01-02"),
		Result: result,
	}
	return t.Execute(f, data)
}
