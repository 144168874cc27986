package factory

import (
	"fmt"

	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/config"
	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/search"
	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/search/searxng"
	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/search/tavily"
)

// NewSearcher 根据配置创建搜索实例
func NewSearcher(cfg *config.Config) (search.Searcher, error) {
	provider := cfg.Search.Provider
	if provider == "" {
		// 默认回退逻辑：配置了 tavily key 就用 tavily
		if cfg.Search.Tavily.APIKey != "" {
			provider = "tavily"
		} else {
			return nil, fmt.Errorf("search provider not configured")
		}
	}

	switch provider {
	case "tavily":
		if cfg.Search.Tavily.APIKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		return tavily.NewClient(cfg.Search.Tavily.APIKey), nil

	case "searxng":
		if cfg.Search.SearXNG.BaseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return searxng.NewClient(cfg.Search.SearXNG.BaseURL, cfg.Search.SearXNG.Timeout), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", provider)
	}
}
