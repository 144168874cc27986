package biz

import (
	"context"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
)

// mockRunRepo 模拟运行仓库
type mockRunRepo struct {
	lastPage     int
	lastPageSize int
}

func (m *mockRunRepo) ListRuns(ctx context.Context, page, pageSize int) ([]*RunSummary, int, error) {
	m.lastPage = page
	m.lastPageSize = pageSize
	return []*RunSummary{{ID: 1, Query: "分析贵州茅台", Stage: "analysis_completed"}}, 1, nil
}

func (m *mockRunRepo) GetRun(ctx context.Context, id int) (*RunDetail, error) {
	return &RunDetail{ID: id, Query: "分析贵州茅台"}, nil
}

func TestRunUseCase_List(t *testing.T) {
	repo := &mockRunRepo{}
	uc := NewRunUseCase(repo, log.DefaultLogger)

	runs, total, err := uc.List(context.Background(), 1, 10)
	if err != nil {
		t.Errorf("List() error = %v", err)
		return
	}
	if total != 1 {
		t.Errorf("List() total = %v, want 1", total)
	}
	if len(runs) != 1 || runs[0].Query != "分析贵州茅台" {
		t.Errorf("List() runs = %v", runs)
	}
}

func TestRunUseCase_ListNormalizesPaging(t *testing.T) {
	repo := &mockRunRepo{}
	uc := NewRunUseCase(repo, log.DefaultLogger)

	if _, _, err := uc.List(context.Background(), 0, -5); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if repo.lastPage != 1 || repo.lastPageSize != 10 {
		t.Errorf("paging = (%d, %d), want (1, 10)", repo.lastPage, repo.lastPageSize)
	}
}

func TestRunUseCase_Get(t *testing.T) {
	repo := &mockRunRepo{}
	uc := NewRunUseCase(repo, log.DefaultLogger)

	run, err := uc.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if run.ID != 7 {
		t.Errorf("Get() ID = %v, want 7", run.ID)
	}
}
