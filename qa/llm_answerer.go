package qa

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// SpanExtractor asks a language model for an answer span
type SpanExtractor interface {
	ExtractSpan(ctx context.Context, contextText, question string) (string, error)
}

// LLMAnswerer answers with a language model and aligns the reply onto the
// context. Replies that cannot be aligned, and model failures, fall back.
type LLMAnswerer struct {
	model    SpanExtractor
	fallback Answerer
}

// NewLLMAnswerer creates an LLM-backed answerer with an extractive fallback
func NewLLMAnswerer(model SpanExtractor) *LLMAnswerer {
	return &LLMAnswerer{model: model, fallback: ExtractiveAnswerer{}}
}

func (a *LLMAnswerer) Answer(ctx context.Context, contextText, question string) (Answer, error) {
	reply, err := a.model.ExtractSpan(ctx, contextText, question)
	if err != nil {
		if ctx.Err() != nil {
			return Answer{}, ctx.Err()
		}
		zap.S().Warnf("⚠️  LLM answer failed, using extractive fallback: %v", err)
		return a.fallback.Answer(ctx, contextText, question)
	}

	start, end, ok := Align(contextText, reply)
	if !ok {
		zap.S().Debugf("LLM reply %q is not a span of the context, using extractive fallback", reply)
		return a.fallback.Answer(ctx, contextText, question)
	}

	return Answer{
		Question: question,
		Text:     contextText[start:end],
		Start:    start,
		End:      end,
		Score:    overlapScore(contentTokens(question), contextText[start:end]),
		Source:   SourceLLM,
	}, nil
}

const spanTrimChars = "\"'`“”‘’ .,;:!?\n\t"

// Align locates reply inside contextText: exactly, then case-insensitively,
// then with surrounding quotes and punctuation removed.
func Align(contextText, reply string) (int, int, bool) {
	for _, candidate := range []string{reply, strings.Trim(reply, spanTrimChars)} {
		if candidate == "" {
			continue
		}
		if i := strings.Index(contextText, candidate); i >= 0 {
			return i, i + len(candidate), true
		}
		lowerCtx, lowerCand := strings.ToLower(contextText), strings.ToLower(candidate)
		// byte offsets only carry over when lowering kept lengths
		if len(lowerCtx) == len(contextText) && len(lowerCand) == len(candidate) {
			if i := strings.Index(lowerCtx, lowerCand); i >= 0 {
				return i, i + len(candidate), true
			}
		}
	}
	return 0, 0, false
}
