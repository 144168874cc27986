package main

import (
	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/display/internal/biz"
	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/display/internal/conf"
	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/display/internal/data"
	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/display/internal/server"
	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/display/internal/service"
)

// initApp 按 data → biz → service → server 的顺序手工装配依赖
func initApp(cs *conf.Server, cd *conf.Data, logger log.Logger) (*kratos.App, func(), error) {
	d, cleanup, err := data.NewData(cd, logger)
	if err != nil {
		return nil, nil, err
	}

	runRepo := data.NewRunRepo(d, logger)
	runUseCase := biz.NewRunUseCase(runRepo, logger)
	displayService := service.NewDisplayService(runUseCase, logger)
	httpServer := server.NewHTTPServer(cs, displayService, logger)

	return newApp(logger, httpServer), cleanup, nil
}

func newApp(logger log.Logger, hs *http.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(hs),
	)
}
