package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/unp-digital/sciencebot/internal/core/domain"
)

type limitRecordingIndex struct {
	gotLimit int
	matches  []domain.PageMatch
}

func (f *limitRecordingIndex) SearchPages(_ context.Context, _ []float32, _ string, limit int) ([]domain.PageMatch, error) {
	f.gotLimit = limit
	return f.matches, nil
}

func TestSearchPagesDefaultsLimit(t *testing.T) {
	index := &limitRecordingIndex{}
	engine := NewPageSearchEngine(&fakeEmbedder{vector: []float32{1}}, index)

	if _, err := engine.SearchPages(context.Background(), []float32{1}, "Doc", 0); err != nil {
		t.Fatalf("SearchPages: %v", err)
	}
	if index.gotLimit != defaultPageLimit {
		t.Errorf("limit = %d, want default %d", index.gotLimit, defaultPageLimit)
	}

	if _, err := engine.SearchPages(context.Background(), []float32{1}, "Doc", 7); err != nil {
		t.Fatalf("SearchPages: %v", err)
	}
	if index.gotLimit != 7 {
		t.Errorf("limit = %d, want 7", index.gotLimit)
	}
}

func TestSearchComposesEmbedAndSearch(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.5}}
	index := &fakeIndex{matches: map[string][]domain.PageMatch{
		"Doc": pagesWithScores("Doc", 0.9),
	}}
	engine := NewPageSearchEngine(embedder, index)

	matches, err := engine.Search(context.Background(), "q", "Doc", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if embedder.calls != 1 {
		t.Errorf("embedder calls = %d, want 1", embedder.calls)
	}
	if len(matches) != 1 || matches[0].FileName != "Doc" {
		t.Errorf("matches = %v", matches)
	}
}

func TestSearchEmbedErrorStopsSearch(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("embedding service down")}
	index := &fakeIndex{}
	engine := NewPageSearchEngine(embedder, index)

	if _, err := engine.Search(context.Background(), "q", "Doc", 5); err == nil {
		t.Fatal("expected error")
	}
	if len(index.queried) != 0 {
		t.Errorf("index queried despite embed failure: %v", index.queried)
	}
}
