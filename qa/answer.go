// Package qa answers questions about the bank against one static context
// paragraph. Every answer is a verbatim span of that context.
package qa

import (
	"context"
	"errors"
)

// Answer sources
const (
	SourceLLM        = "llm"
	SourceExtractive = "extractive"
)

// MaxQuestionRunes bounds the accepted question length
const MaxQuestionRunes = 500

var (
	ErrEmptyQuestion   = errors.New("question is empty")
	ErrQuestionTooLong = errors.New("question is too long")
)

// Answer is the top answer span. Text == context[Start:End].
type Answer struct {
	Question string  `json:"question"`
	Text     string  `json:"answer"`
	Start    int     `json:"start"`
	End      int     `json:"end"`
	Score    float64 `json:"score"`
	Source   string  `json:"source"`
	Cached   bool    `json:"cached"`
}

// Answerer finds the answer span for a question within contextText
type Answerer interface {
	Answer(ctx context.Context, contextText, question string) (Answer, error)
}
