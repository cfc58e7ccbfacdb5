package usecase

import (
	"fmt"
	"strings"

	"github.com/unp-digital/sciencebot/internal/core/domain"
)

func buildRankerSystemPrompt(topK int) string {
	return fmt.Sprintf(`You are an expert assistant in analyzing academic documents from Universidad Nacional de Piura.
Given a user question and a list of available documents, select the documents most likely to contain the answer.

Rules:
- Return at most %d document names, one per line, most relevant first.
- Each line must match exactly one of the listed document names.
- Do not invent document names.
- Do not add punctuation, numbering, explanations, or any other text.`, topK)
}

func buildRankerUserPrompt(query string, documents []domain.DocumentInfo) string {
	var b strings.Builder
	for _, doc := range documents {
		fmt.Fprintf(&b, "Document: %s\nSchool: %s\nDescription: %s\n\n", doc.Name, doc.School, doc.Description)
	}

	return fmt.Sprintf(`USER QUESTION:
%s

AVAILABLE DOCUMENTS:
%s`, query, b.String())
}

const answerSystemPrompt = `You are an academic assistant from Universidad Nacional de Piura (UNP).
Generate precise and complete answers based EXCLUSIVELY on the document content provided.

Instructions:
- Answer only from the provided pages; do not invent information.
- Cite page numbers when mentioning specific data.
- If the information is not in the content, state that explicitly.
- Use clear, professional, and friendly language.`

func buildAnswerUserPrompt(query, documentName string, pages []domain.PageMatch) string {
	blocks := make([]string, 0, len(pages))
	for _, page := range pages {
		blocks = append(blocks, fmt.Sprintf("[Page %d]\n%s\n(Relevance: %.4f)", page.Page, page.Text, page.Score))
	}

	return fmt.Sprintf(`USER QUESTION:
%s

DOCUMENT SOURCE: %s

RELEVANT CONTENT FOUND:
%s

Generate a complete and accurate answer based on the provided content.`, query, documentName, strings.Join(blocks, "\n\n---\n\n"))
}
