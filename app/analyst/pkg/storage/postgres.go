package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/config"
	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/model"
)

// Storage 分析结果的 PostgreSQL 持久化层
type Storage struct {
	db *sql.DB
}

// NewStorage 建立数据库连接并初始化表结构
func NewStorage(cfg config.DBConfig) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// Close 关闭数据库连接
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id SERIAL PRIMARY KEY,
			query TEXT NOT NULL,
			stage TEXT,
			collected_data TEXT,
			deep_analysis TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS plan_steps (
			id SERIAL PRIMARY KEY,
			run_id INTEGER REFERENCES analysis_runs(id),
			position INTEGER,
			name TEXT,
			method TEXT,
			data_needed TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS reports (
			id SERIAL PRIMARY KEY,
			run_id INTEGER REFERENCES analysis_runs(id),
			executive_summary TEXT,
			detailed_report TEXT,
			investment_rating TEXT,
			target_price TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS risk_factors (
			id SERIAL PRIMARY KEY,
			report_id INTEGER REFERENCES reports(id),
			position INTEGER,
			content TEXT
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query %s: %w", query, err)
		}
	}

	return nil
}

// CreateRun 创建一次分析运行记录，返回 run ID
func (s *Storage) CreateRun(query string) (int, error) {
	var id int
	err := s.db.QueryRow(`
		INSERT INTO analysis_runs (query, stage)
		VALUES ($1, '')
		RETURNING id`, query).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis run: %w", err)
	}
	return id, nil
}

// UpdateRunStage 更新运行所处的工作流阶段
func (s *Storage) UpdateRunStage(runID int, stage string) error {
	_, err := s.db.Exec(`UPDATE analysis_runs SET stage = $1 WHERE id = $2`, stage, runID)
	return err
}

// SavePlan 保存分析计划的全部步骤
func (s *Storage) SavePlan(runID int, plan *model.AnalysisPlan) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, step := range plan.Steps {
		_, err = tx.Exec(`
			INSERT INTO plan_steps (run_id, position, name, method, data_needed)
			VALUES ($1, $2, $3, $4, $5)`,
			runID, i, step.Name, step.Method, step.DataNeeded)
		if err != nil {
			return fmt.Errorf("failed to insert plan step: %w", err)
		}
	}

	return tx.Commit()
}

// SaveCollectedData 保存数据收集阶段的产出
func (s *Storage) SaveCollectedData(runID int, collected string) error {
	_, err := s.db.Exec(`UPDATE analysis_runs SET collected_data = $1 WHERE id = $2`, collected, runID)
	return err
}

// SaveReport 保存投资分析报告及风险因素
func (s *Storage) SaveReport(runID int, report *model.FinancialReport) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var reportID int
	err = tx.QueryRow(`
		INSERT INTO reports (run_id, executive_summary, detailed_report, investment_rating, target_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		runID, report.ExecutiveSummary, report.DetailedReport,
		report.InvestmentRating, report.TargetPrice).Scan(&reportID)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}

	for i, risk := range report.RiskFactors {
		_, err = tx.Exec(`
			INSERT INTO risk_factors (report_id, position, content)
			VALUES ($1, $2, $3)`,
			reportID, i, risk)
		if err != nil {
			return fmt.Errorf("failed to insert risk factor: %w", err)
		}
	}

	return tx.Commit()
}

// SaveDeepAnalysis 保存深度分析文本
func (s *Storage) SaveDeepAnalysis(runID int, analysis string) error {
	_, err := s.db.Exec(`UPDATE analysis_runs SET deep_analysis = $1 WHERE id = $2`, analysis, runID)
	return err
}
