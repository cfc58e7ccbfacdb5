package usecase

import (
	"context"
	"testing"

	"github.com/unp-digital/sciencebot/internal/core/domain"
)

type stubSearchService struct {
	result   domain.PipelineResult
	gotQuery string
	gotPages int
}

func (s *stubSearchService) SearchAndAnswer(_ context.Context, query string, _ domain.School, maxPages int) domain.PipelineResult {
	s.gotQuery = query
	s.gotPages = maxPages
	return s.result
}

func TestProcessMessageRecordsBothTurns(t *testing.T) {
	search := &stubSearchService{result: domain.PipelineResult{Success: true, Message: "the answer"}}
	history := NewHistoryManager(10)
	chat := NewChatUseCase(search, history, 5)

	reply, err := chat.ProcessMessage(context.Background(), "wa-123", "¿Cuántos créditos?", domain.SchoolInformatica)
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if reply != "the answer" {
		t.Errorf("reply = %q", reply)
	}
	if search.gotQuery != "¿Cuántos créditos?" {
		t.Errorf("query = %q", search.gotQuery)
	}
	if search.gotPages != 5 {
		t.Errorf("maxPages = %d, want 5", search.gotPages)
	}

	turns := history.Recent("wa-123")
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want user + assistant", len(turns))
	}
	if turns[0].Role != domain.RoleUser || turns[1].Role != domain.RoleAssistant {
		t.Errorf("turn roles = %q, %q", turns[0].Role, turns[1].Role)
	}
	if turns[1].Content != "the answer" {
		t.Errorf("assistant turn = %q", turns[1].Content)
	}
}

func TestProcessMessageRejectsEmptyMessage(t *testing.T) {
	search := &stubSearchService{}
	history := NewHistoryManager(10)
	chat := NewChatUseCase(search, history, 5)

	_, err := chat.ProcessMessage(context.Background(), "wa-123", "   ", domain.SchoolInformatica)
	if err == nil {
		t.Fatal("expected error for blank message")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Errorf("error kind = %v, want ErrInvalidInput", err)
	}
	if len(history.Recent("wa-123")) != 0 {
		t.Error("blank message must not be recorded")
	}
}

func TestProcessMessageFallsBackOnEmptyResult(t *testing.T) {
	search := &stubSearchService{result: domain.PipelineResult{Success: false, Message: ""}}
	history := NewHistoryManager(10)
	chat := NewChatUseCase(search, history, 5)

	reply, err := chat.ProcessMessage(context.Background(), "wa-123", "hola", domain.SchoolEconomia)
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if reply != fallbackReply {
		t.Errorf("reply = %q, want fallback", reply)
	}
}
