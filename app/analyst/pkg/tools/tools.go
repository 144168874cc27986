// Package tools 提供数据收集与深度分析代理可调用的工具集。
//
// 除 web_search 外，其余工具返回确定性的演示数据，真实行情接入不在
// 当前范围内，但工具的入参契约与真实实现保持一致。
package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"

	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/logger"
	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/search"
)

// Basic 基础工具集：股票数据、财经新闻、技术分析，外加网络搜索（如可用）
func Basic(searcher search.Searcher) ([]tool.BaseTool, error) {
	stock, err := newStockDataTool()
	if err != nil {
		return nil, err
	}
	news, err := newFinancialNewsTool()
	if err != nil {
		return nil, err
	}
	technical, err := newTechnicalAnalysisTool()
	if err != nil {
		return nil, err
	}

	set := []tool.BaseTool{stock, news, technical}
	if searcher != nil {
		webSearch, err := newWebSearchTool(searcher)
		if err != nil {
			return nil, err
		}
		set = append(set, webSearch)
	}
	return set, nil
}

// Advanced 高级工具集：基础工具集之上追加组合优化与风险评估
func Advanced(searcher search.Searcher) ([]tool.BaseTool, error) {
	set, err := Basic(searcher)
	if err != nil {
		return nil, err
	}

	portfolio, err := newPortfolioOptimizationTool()
	if err != nil {
		return nil, err
	}
	risk, err := newRiskAssessmentTool()
	if err != nil {
		return nil, err
	}
	return append(set, portfolio, risk), nil
}

// StockDataArgs 股票数据工具入参
type StockDataArgs struct {
	Symbol string `json:"symbol" jsonschema:"description=股票代码"`
	Period string `json:"period,omitempty" jsonschema:"description=时间周期，默认 1y"`
}

func newStockDataTool() (tool.InvokableTool, error) {
	return utils.InferTool("get_stock_data", "获取股票基础数据",
		func(ctx context.Context, args *StockDataArgs) (string, error) {
			if args.Period == "" {
				args.Period = "1y"
			}
			logger.Log.Infof("📊 调用股票数据工具 - 股票代码: %s, 周期: %s", args.Symbol, args.Period)
			return fmt.Sprintf(`股票代码: %s
时间周期: %s

📈 基础数据:
• 当前价格: $125.50
• 市值: 500亿美元
• P/E比率: 18.5
• P/B比率: 2.3
• ROE: 15.2%%
• 52周高点: $145.20
• 52周低点: $98.30

📊 近期表现:
• 日涨跌幅: +2.1%%
• 周涨跌幅: +5.3%%
• 月涨跌幅: +12.8%%`, args.Symbol, args.Period), nil
		})
}

// FinancialNewsArgs 财经新闻工具入参
type FinancialNewsArgs struct {
	Keyword string `json:"keyword" jsonschema:"description=检索关键词"`
	Days    int    `json:"days,omitempty" jsonschema:"description=时间范围（天），默认 7"`
}

func newFinancialNewsTool() (tool.InvokableTool, error) {
	return utils.InferTool("get_financial_news", "获取金融新闻信息",
		func(ctx context.Context, args *FinancialNewsArgs) (string, error) {
			if args.Days == 0 {
				args.Days = 7
			}
			logger.Log.Infof("📰 调用财经新闻工具 - 关键词: %s, 天数: %d", args.Keyword, args.Days)
			return fmt.Sprintf(`关键词: %s
时间范围: 最近%d天

🔥 主要新闻:
1. 📋 公司发布Q3财报，营收同比增长15%%
2. 🏆 获得重要政府订单，总价值约10亿元
3. 💰 董事会批准股份回购计划
4. 📈 分析师上调目标价至$150
5. 🎯 行业政策利好，相关板块普涨`, args.Keyword, args.Days), nil
		})
}

// TechnicalAnalysisArgs 技术分析工具入参
type TechnicalAnalysisArgs struct {
	Symbol    string `json:"symbol" jsonschema:"description=股票代码"`
	Indicator string `json:"indicator,omitempty" jsonschema:"description=技术指标类型，默认 MA"`
}

func newTechnicalAnalysisTool() (tool.InvokableTool, error) {
	return utils.InferTool("technical_analysis", "技术分析工具",
		func(ctx context.Context, args *TechnicalAnalysisArgs) (string, error) {
			if args.Indicator == "" {
				args.Indicator = "MA"
			}
			logger.Log.Infof("📉 调用技术分析工具 - 股票: %s, 指标: %s", args.Symbol, args.Indicator)
			return fmt.Sprintf(`技术指标分析 - %s
指标类型: %s

📊 移动平均线:
• MA5: $123.45 (支撑位)
• MA20: $118.20 (强支撑)
• MA60: $115.80 (长期趋势线)

🎯 技术信号:
• MACD: 金叉信号，多头排列 ✅
• RSI: 65 (略偏强势区域) ⚠️
• 成交量: 较前期放大30%% 📈

🎪 关键价位:
• 支撑位: $120.00
• 阻力位: $130.00`, args.Symbol, args.Indicator), nil
		})
}

// PortfolioOptimizationArgs 组合优化工具入参
type PortfolioOptimizationArgs struct {
	Assets    string `json:"assets" jsonschema:"description=资产类别描述"`
	RiskLevel string `json:"risk_level,omitempty" jsonschema:"description=风险级别，默认 medium"`
}

func newPortfolioOptimizationTool() (tool.InvokableTool, error) {
	return utils.InferTool("portfolio_optimization", "投资组合优化分析",
		func(ctx context.Context, args *PortfolioOptimizationArgs) (string, error) {
			if args.RiskLevel == "" {
				args.RiskLevel = "medium"
			}
			logger.Log.Infof("📊 调用投资组合优化工具 - 资产: %s, 风险级别: %s", args.Assets, args.RiskLevel)
			return fmt.Sprintf(`💼 投资组合优化结果:
资产类别: %s
风险水平: %s

🎯 建议配置:
• 股票: 60%% (蓝筹股40%% + 成长股20%%)
• 债券: 30%% (政府债券20%% + 企业债10%%)
• 现金: 10%%

📈 预期表现:
• 预期收益: 8-12%%
• 最大回撤: 15%%
• 夏普比率: 1.2`, args.Assets, args.RiskLevel), nil
		})
}

// RiskAssessmentArgs 风险评估工具入参
type RiskAssessmentArgs struct {
	PositionSize string `json:"position_size" jsonschema:"description=持仓规模"`
	MarketCap    string `json:"market_cap" jsonschema:"description=市值规模"`
}

func newRiskAssessmentTool() (tool.InvokableTool, error) {
	return utils.InferTool("risk_assessment", "风险评估工具",
		func(ctx context.Context, args *RiskAssessmentArgs) (string, error) {
			logger.Log.Infof("⚠️ 调用风险评估工具 - 持仓: %s, 市值: %s", args.PositionSize, args.MarketCap)
			return fmt.Sprintf(`🛡️ 风险评估报告:
持仓规模: %s
市值规模: %s

📊 风险指标:
• VaR (95%%): 单日最大损失2.5%%
• Beta系数: 1.2 (高于市场平均)
• 流动性风险: 低 ✅
• 信用风险: 中等 ⚠️
• 行业集中度: 偏高 🔥

💡 风险建议: 适当分散投资，控制单一持仓比例`, args.PositionSize, args.MarketCap), nil
		})
}
