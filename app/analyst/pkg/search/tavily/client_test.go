package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DHU-JinQi/Langgraph-workflow-architecture/app/analyst/pkg/search"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}

		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Query != "贵州茅台 财报" {
			t.Errorf("query = %q", req.Query)
		}
		if req.Topic != "news" {
			t.Errorf("topic = %q, want news (default)", req.Topic)
		}
		if req.MaxResults != 5 {
			t.Errorf("max_results = %d, want 5 (default)", req.MaxResults)
		}

		json.NewEncoder(w).Encode(searchResponse{
			Query: req.Query,
			Results: []searchResult{
				{Title: "茅台发布年报", URL: "https://example.com/1", Content: "营收增长", Score: 0.9},
			},
		})
	}))
	defer srv.Close()

	c := NewClient("test-key")
	c.baseURL = srv.URL

	resp, err := c.Search(context.Background(), &search.Request{Query: "贵州茅台 财报"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(resp.Results))
	}
	if resp.Results[0].Title != "茅台发布年报" {
		t.Errorf("title = %q", resp.Results[0].Title)
	}
}

func TestSearchAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient("bad-key")
	c.baseURL = srv.URL

	if _, err := c.Search(context.Background(), &search.Request{Query: "test"}); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}
