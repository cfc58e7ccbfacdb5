package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/unp-digital/sciencebot/internal/core/domain"
	"github.com/unp-digital/sciencebot/internal/core/ports"
)

const defaultMaxPages = 5

// PipelineConfig holds the orchestrator knobs. MaxCandidates bounds the
// fallback loop; AcceptThreshold is the mean-score gate for early exit.
type PipelineConfig struct {
	RankTopK        int
	MaxCandidates   int
	AcceptThreshold float64
}

func (c PipelineConfig) normalize() PipelineConfig {
	out := c
	if out.RankTopK <= 0 {
		out.RankTopK = defaultRankTopK
	}
	if out.MaxCandidates <= 0 {
		out.MaxCandidates = defaultRankTopK
	}
	if out.AcceptThreshold <= 0 {
		out.AcceptThreshold = 0.75
	}
	return out
}

// SearchPipeline sequences catalog resolution, LLM ranking, confidence-gated
// page search, and answer synthesis. Every failure mode is normalized into a
// PipelineResult; nothing escapes SearchAndAnswer.
type SearchPipeline struct {
	catalog     ports.DocumentCatalog
	ranker      *DocumentRanker
	engine      *PageSearchEngine
	synthesizer *AnswerSynthesizer
	events      ports.EventPublisher
	observer    ports.SearchObserver
	cfg         PipelineConfig
}

func NewSearchPipeline(
	catalog ports.DocumentCatalog,
	ranker *DocumentRanker,
	engine *PageSearchEngine,
	synthesizer *AnswerSynthesizer,
	events ports.EventPublisher,
	cfg PipelineConfig,
) *SearchPipeline {
	return &SearchPipeline{
		catalog:     catalog,
		ranker:      ranker,
		engine:      engine,
		synthesizer: synthesizer,
		events:      events,
		cfg:         cfg.normalize(),
	}
}

// Instrument attaches an optional metrics observer.
func (p *SearchPipeline) Instrument(observer ports.SearchObserver) {
	p.observer = observer
}

// SearchAndAnswer runs the full pipeline for one query. It never returns an
// error: stage failures, external-call errors, and panics all collapse into
// a PipelineResult with Success=false.
func (p *SearchPipeline) SearchAndAnswer(ctx context.Context, query string, school domain.School, maxPages int) (result domain.PipelineResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result = domain.PipelineResult{
				Success: false,
				Message: fmt.Sprintf("Search error: panic: %v", r),
			}
		}
		p.publishEvent(ctx, school, result, time.Since(start))
	}()

	res, err := p.run(ctx, query, school, maxPages)
	if err != nil {
		return failureResult(err)
	}
	return res
}

func (p *SearchPipeline) run(ctx context.Context, query string, school domain.School, maxPages int) (domain.PipelineResult, error) {
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	documents, err := p.resolveCatalog(ctx, school)
	if err != nil {
		return domain.PipelineResult{}, err
	}
	if len(documents) == 0 {
		return domain.PipelineResult{
			Success: false,
			Message: fmt.Sprintf("No documents found for school: %s", school),
		}, nil
	}

	candidates, err := p.ranker.Rank(ctx, query, documents, p.cfg.RankTopK)
	if err != nil {
		return domain.PipelineResult{}, err
	}
	if len(candidates) == 0 {
		return domain.PipelineResult{
			Success: false,
			Message: "Could not select documents for the question",
		}, nil
	}

	best, firstTried, err := p.searchCandidates(ctx, query, candidates, maxPages)
	if err != nil {
		return domain.PipelineResult{}, err
	}
	if best == nil {
		return domain.PipelineResult{
			Success:      false,
			Message:      fmt.Sprintf("No relevant information found in selected document: %s", firstTried),
			DocumentUsed: firstTried,
		}, nil
	}

	if p.observer != nil && best.Document != firstTried {
		p.observer.ObserveFallbackWin()
	}

	synthesis, err := p.synthesizer.Generate(ctx, query, best.Document, best.Matches)
	if err != nil {
		return domain.PipelineResult{}, err
	}

	return domain.PipelineResult{
		Success:      true,
		Message:      synthesis.Answer,
		DocumentUsed: synthesis.DocumentUsed,
		PagesCount:   len(best.Matches),
	}, nil
}

// resolveCatalog concatenates school documents with the shared
// general-information bucket, in that order, without deduplication.
func (p *SearchPipeline) resolveCatalog(ctx context.Context, school domain.School) ([]domain.DocumentInfo, error) {
	schoolDocs, err := p.catalog.ListBySchool(ctx, school)
	if err != nil {
		return nil, err
	}
	generalDocs, err := p.catalog.ListBySchool(ctx, domain.SchoolGeneral)
	if err != nil {
		return nil, err
	}
	return append(schoolDocs, generalDocs...), nil
}

// searchCandidates implements the confidence-gated fallback: candidates are
// tried in rank order, a mean score at or above the threshold accepts
// immediately, otherwise the best-scoring attempt so far is retained. A
// candidate with zero matches records no score. At most MaxCandidates
// entries are attempted.
func (p *SearchPipeline) searchCandidates(ctx context.Context, query string, candidates []string, maxPages int) (*domain.SearchAttempt, string, error) {
	vector, err := p.engine.EmbedQuery(ctx, query)
	if err != nil {
		return nil, "", err
	}

	if len(candidates) > p.cfg.MaxCandidates {
		candidates = candidates[:p.cfg.MaxCandidates]
	}
	firstTried := candidates[0]

	var best *domain.SearchAttempt
	for _, candidate := range candidates {
		matches, err := p.engine.SearchPages(ctx, vector, candidate, maxPages)
		if err != nil {
			return nil, firstTried, err
		}
		if len(matches) == 0 {
			continue
		}

		attempt := domain.SearchAttempt{
			Document:  candidate,
			Matches:   matches,
			MeanScore: domain.MeanScore(matches),
		}
		if p.observer != nil {
			p.observer.ObserveCandidateAttempt(attempt.MeanScore)
		}
		if attempt.MeanScore >= p.cfg.AcceptThreshold {
			return &attempt, firstTried, nil
		}
		if best == nil || attempt.MeanScore > best.MeanScore {
			best = &attempt
		}
	}
	return best, firstTried, nil
}

func (p *SearchPipeline) publishEvent(ctx context.Context, school domain.School, result domain.PipelineResult, elapsed time.Duration) {
	if p.events == nil {
		return
	}

	event := domain.QueryEvent{
		School:       school.String(),
		Success:      result.Success,
		DocumentUsed: result.DocumentUsed,
		PagesCount:   result.PagesCount,
		DurationMS:   elapsed.Milliseconds(),
		At:           time.Now().UTC(),
	}
	if err := p.events.PublishQueryCompleted(context.WithoutCancel(ctx), event); err != nil {
		slog.Warn("query_event_publish_failed", "school", event.School, "error", err)
	}
}

func failureResult(err error) domain.PipelineResult {
	message := "Search error: " + err.Error()
	if domain.IsKind(err, domain.ErrTimeout) {
		message = "Search timed out: " + err.Error()
	}
	return domain.PipelineResult{
		Success: false,
		Message: message,
	}
}
