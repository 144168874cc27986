package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	readability "github.com/go-shiori/go-readability"

	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/logger"
	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/search"
)

// WebSearchArgs 网络搜索工具入参
type WebSearchArgs struct {
	Query string `json:"query" jsonschema:"description=搜索关键词"`
}

// newWebSearchTool 网络搜索补充信息。摘要过短时尝试抓取原文正文。
func newWebSearchTool(searcher search.Searcher) (tool.InvokableTool, error) {
	return utils.InferTool("web_search", "网络搜索补充信息",
		func(ctx context.Context, args *WebSearchArgs) (string, error) {
			logger.Log.Infof("🔍 调用网络搜索工具 - 关键词: %s", args.Query)

			resp, err := searcher.Search(ctx, &search.Request{
				Query:      args.Query,
				Topic:      "news",
				MaxResults: 5,
			})
			if err != nil {
				return "", fmt.Errorf("搜索失败: %w", err)
			}
			if len(resp.Results) == 0 {
				return "未搜索到相关结果。", nil
			}

			var sb strings.Builder
			for i, item := range resp.Results {
				content := item.Content
				if len(content) < 200 {
					if fetched, err := fetchAndCleanContent(item.URL); err == nil && len(fetched) > len(content) {
						content = fetched
					}
				}
				if len(content) > 2000 {
					content = content[:2000]
				}
				fmt.Fprintf(&sb, "结果 %d: %s\n链接: %s\n发布时间: %s\n%s\n\n",
					i+1, item.Title, item.URL, item.PublishedDate, content)
			}
			return sb.String(), nil
		})
}

// fetchAndCleanContent 抓取 URL 并提取核心文本
func fetchAndCleanContent(url string) (string, error) {
	article, err := readability.FromURL(url, 30*time.Second)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}
