package data

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/display/internal/biz"
)

type runRepo struct {
	data *Data
	log  *log.Helper
}

func NewRunRepo(data *Data, logger log.Logger) biz.RunRepo {
	return &runRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *runRepo) ListRuns(ctx context.Context, page, pageSize int) ([]*biz.RunSummary, int, error) {
	offset := (page - 1) * pageSize

	rows, err := r.data.db.QueryContext(ctx, `
		SELECT id, query, COALESCE(stage, ''), created_at
		FROM analysis_runs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var summaries []*biz.RunSummary
	for rows.Next() {
		var s biz.RunSummary
		var createdAt time.Time
		if err := rows.Scan(&s.ID, &s.Query, &s.Stage, &createdAt); err != nil {
			return nil, 0, err
		}
		s.CreatedAt = createdAt.Format("2006-01-02 15:04:05")
		summaries = append(summaries, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.data.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analysis_runs`).Scan(&total); err != nil {
		return nil, 0, err
	}

	return summaries, total, nil
}

func (r *runRepo) GetRun(ctx context.Context, id int) (*biz.RunDetail, error) {
	detail := &biz.RunDetail{}
	var createdAt time.Time
	err := r.data.db.QueryRowContext(ctx, `
		SELECT id, query, COALESCE(stage, ''), COALESCE(collected_data, ''), COALESCE(deep_analysis, ''), created_at
		FROM analysis_runs
		WHERE id = $1`, id).
		Scan(&detail.ID, &detail.Query, &detail.Stage, &detail.CollectedData, &detail.DeepAnalysis, &createdAt)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("RUN_NOT_FOUND", "analysis run not found")
	}
	if err != nil {
		return nil, err
	}
	detail.CreatedAt = createdAt.Format("2006-01-02 15:04:05")

	if err := r.loadPlan(ctx, detail); err != nil {
		return nil, err
	}
	if err := r.loadReport(ctx, detail); err != nil {
		return nil, err
	}

	return detail, nil
}

func (r *runRepo) loadPlan(ctx context.Context, detail *biz.RunDetail) error {
	rows, err := r.data.db.QueryContext(ctx, `
		SELECT name, method, data_needed
		FROM plan_steps
		WHERE run_id = $1
		ORDER BY position`, detail.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var step biz.PlanStep
		if err := rows.Scan(&step.Name, &step.Method, &step.DataNeeded); err != nil {
			return err
		}
		detail.Plan = append(detail.Plan, step)
	}
	return rows.Err()
}

func (r *runRepo) loadReport(ctx context.Context, detail *biz.RunDetail) error {
	var reportID int
	report := &biz.Report{}
	err := r.data.db.QueryRowContext(ctx, `
		SELECT id, executive_summary, detailed_report, investment_rating, target_price
		FROM reports
		WHERE run_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, detail.ID).
		Scan(&reportID, &report.ExecutiveSummary, &report.DetailedReport,
			&report.InvestmentRating, &report.TargetPrice)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}

	rows, err := r.data.db.QueryContext(ctx, `
		SELECT content
		FROM risk_factors
		WHERE report_id = $1
		ORDER BY position`, reportID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var risk string
		if err := rows.Scan(&risk); err != nil {
			return err
		}
		report.RiskFactors = append(report.RiskFactors, risk)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	detail.Report = report
	return nil
}
