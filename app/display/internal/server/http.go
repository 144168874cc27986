package server

import (
	"embed"
	"encoding/json"
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/display/internal/conf"
	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/display/internal/service"
)

//go:embed assets/*
var assets embed.FS

func NewHTTPServer(c *conf.Server, s *service.DisplayService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c.Http.Addr != "" {
		opts = append(opts, http.Address(c.Http.Addr))
	}
	if c.Http.Timeout != "" {
		if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)

	srv.HandleFunc("/api/runs", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

		reply, err := s.ListRuns(r.Context(), page, pageSize)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, reply)
	})

	srv.HandleFunc("/api/runs/detail", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, err := strconv.Atoi(r.URL.Query().Get("id"))
		if err != nil {
			writeError(w, errors.BadRequest("INVALID_ID", "invalid run id"))
			return
		}

		reply, err := s.GetRun(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, reply)
	})

	// 首页直接返回嵌入的静态页面
	srv.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path == "/" {
			content, _ := assets.ReadFile("assets/index.html")
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(content)
			return
		}
	})

	return srv
}

func writeJSON(w nethttp.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(v)
}

func writeError(w nethttp.ResponseWriter, err error) {
	se := errors.FromError(err)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(int(se.Code))
	json.NewEncoder(w).Encode(map[string]string{
		"reason":  se.Reason,
		"message": se.Message,
	})
}
