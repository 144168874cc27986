package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"

	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/config"
	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/logger"
	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/render"
	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/storage"
	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/workflow"
)

var (
	confPath = flag.String("conf", "configs/config.yaml", "配置文件路径")
	htmlOut  = flag.String("html", "", "HTML 报告输出路径，留空则使用配置文件中的路径")
	noStore  = flag.Bool("no-store", false, "不写入数据库，仅输出结果")
)

func main() {
	flag.Parse()

	// .env 可选，主要用于本地开发注入 API Key
	_ = godotenv.Load()

	// 1. 加载配置
	cfg, err := config.LoadConfig(*confPath)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}
	if cfg.LLM.APIKey == "" {
		log.Fatal("配置错误: 未设置 llm.api_key (或环境变量 LLM_API_KEY)")
	}

	// 2. 初始化日志
	if err = logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动金融投资分析系统...")

	query := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if query == "" {
		log.Fatal("用法: analyst [-conf 配置文件] <投资分析需求>")
	}

	ctx := context.Background()

	// 3. 初始化存储（可选）
	var store *storage.Storage
	if !*noStore && cfg.DB.Host != "" {
		store, err = storage.NewStorage(cfg.DB)
		if err != nil {
			logger.Log.Warnf("数据库不可用: %v，结果将不落库", err)
		} else {
			defer store.Close()
		}
	}

	// 4. 初始化工作流引擎
	engine, err := workflow.NewEngine(ctx, cfg, store)
	if err != nil {
		logger.Log.Fatalf("工作流引擎初始化失败: %v", err)
	}

	// 5. 执行四阶段分析
	result, err := engine.Run(ctx, workflow.RunOptions{
		Query: query,
		ProgressCallback: func(status string, progress int) {
			logger.Log.Infof("进度 %d%%: %s", progress, status)
		},
	})
	if err != nil {
		logger.Log.Fatalf("分析工作流执行失败: %v", err)
	}

	// 6. 输出过程记录
	for _, msg := range result.Messages {
		fmt.Println(msg)
		fmt.Println()
	}

	// 7. 渲染 HTML 报告
	outPath := *htmlOut
	if outPath == "" {
		outPath = cfg.Output.HTML
	}
	if outPath != "" {
		if err := render.WriteHTML(outPath, result); err != nil {
			logger.Log.Errorf("HTML 报告生成失败: %v", err)
		} else {
			logger.Log.Infof("HTML 报告已生成: %s", outPath)
		}
	}
}
