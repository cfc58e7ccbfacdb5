package domain

// DocumentInfo is catalog metadata for one indexed document. Entries are
// read-only from the pipeline's point of view: the ingestion side owns them.
type DocumentInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	School      string `json:"school"`
}

// PageMatch is one page returned by the vector index for a query.
type PageMatch struct {
	ID       string  `json:"id"`
	FileName string  `json:"file_name"`
	Page     int     `json:"page"`
	Text     string  `json:"text"`
	Score    float64 `json:"score"`
}

// SearchAttempt records the outcome of searching one ranked candidate.
// MeanScore is only meaningful when Matches is non-empty.
type SearchAttempt struct {
	Document  string      `json:"document"`
	Matches   []PageMatch `json:"matches"`
	MeanScore float64     `json:"mean_score"`
}

// Synthesis is the raw output of the answer generation stage.
type Synthesis struct {
	Answer          string `json:"answer"`
	DocumentUsed    string `json:"document_used"`
	PagesReferenced []int  `json:"pages_referenced"`
}

// PipelineResult is the single externally visible artifact of one pipeline
// run. Success implies DocumentUsed is set and PagesCount >= 1.
type PipelineResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	DocumentUsed string `json:"document_used,omitempty"`
	PagesCount   int    `json:"pages_count"`
}

// MeanScore returns the arithmetic mean of the match scores, 0 for no matches.
func MeanScore(matches []PageMatch) float64 {
	if len(matches) == 0 {
		return 0
	}
	var sum float64
	for _, m := range matches {
		sum += m.Score
	}
	return sum / float64(len(matches))
}
