package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGenerateBuildsGroundedPrompt(t *testing.T) {
	chat := &scriptedChat{replies: []string{"The course has 4 credits (page 2)."}}
	synthesizer := NewAnswerSynthesizer(chat)

	pages := pagesWithScores("Plan de Estudios 2023", 0.85, 0.80)
	synthesis, err := synthesizer.Generate(context.Background(), "credits?", "Plan de Estudios 2023", pages)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if synthesis.Answer != "The course has 4 credits (page 2)." {
		t.Errorf("Answer = %q", synthesis.Answer)
	}
	if synthesis.DocumentUsed != "Plan de Estudios 2023" {
		t.Errorf("DocumentUsed = %q", synthesis.DocumentUsed)
	}
	if len(synthesis.PagesReferenced) != 2 || synthesis.PagesReferenced[0] != 1 || synthesis.PagesReferenced[1] != 2 {
		t.Errorf("PagesReferenced = %v, want [1 2]", synthesis.PagesReferenced)
	}

	prompt := chat.users[0]
	for _, fragment := range []string{
		"DOCUMENT SOURCE: Plan de Estudios 2023",
		"[Page 1]",
		"[Page 2]",
		"(Relevance: 0.8500)",
		"credits?",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("prompt missing %q:\n%s", fragment, prompt)
		}
	}
}

func TestGeneratePropagatesChatError(t *testing.T) {
	chat := &scriptedChat{err: errors.New("model unavailable")}
	synthesizer := NewAnswerSynthesizer(chat)

	if _, err := synthesizer.Generate(context.Background(), "q", "Doc", nil); err == nil {
		t.Fatal("expected error")
	}
}
