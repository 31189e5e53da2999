package qa

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"fcnca-dashboard/database"
)

// AnswerCache stores answers by key
type AnswerCache interface {
	GetAnswer(ctx context.Context, key string) (*Answer, bool)
	SetAnswer(ctx context.Context, key string, answer Answer, ttl time.Duration) error
}

// HistoryStore persists answered questions
type HistoryStore interface {
	SaveQALog(log *database.QALog) error
}

// Broadcaster publishes dashboard events to connected browsers
type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

// Service answers questions against the fixed context paragraph
type Service struct {
	contextText string
	answerer    Answerer
	cache       AnswerCache
	cacheTTL    time.Duration
	history     HistoryStore
	broadcaster Broadcaster
}

// NewService creates a QA service. cache, history and broadcaster are optional
// and may be set with the setters.
func NewService(contextText string, answerer Answerer) *Service {
	return &Service{
		contextText: contextText,
		answerer:    answerer,
		cacheTTL:    24 * time.Hour,
	}
}

// SetCache enables answer caching
func (s *Service) SetCache(cache AnswerCache, ttl time.Duration) {
	s.cache = cache
	s.cacheTTL = ttl
}

// SetHistoryStore enables QA log persistence
func (s *Service) SetHistoryStore(store HistoryStore) {
	s.history = store
}

// SetBroadcaster sets the event sink notified after each answer
func (s *Service) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Context returns the paragraph questions are answered against
func (s *Service) Context() string {
	return s.contextText
}

// ValidateQuestion trims q and checks it is non-empty and bounded
func ValidateQuestion(q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", ErrEmptyQuestion
	}
	if utf8.RuneCountInString(q) > MaxQuestionRunes {
		return "", ErrQuestionTooLong
	}
	return q, nil
}

// CacheKey derives a stable key from the context and the normalized question
func CacheKey(contextText, question string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(question)), " ")
	h := sha256.New()
	h.Write([]byte(contextText))
	h.Write([]byte{0})
	h.Write([]byte(normalized))
	return hex.EncodeToString(h.Sum(nil)[:16])
}

// Ask answers a question. Cache, history and broadcast failures are logged
// and never fail the request.
func (s *Service) Ask(ctx context.Context, question string) (Answer, error) {
	q, err := ValidateQuestion(question)
	if err != nil {
		return Answer{}, err
	}

	key := CacheKey(s.contextText, q)
	var ans Answer
	cached := false
	if s.cache != nil {
		if hit, ok := s.cache.GetAnswer(ctx, key); ok {
			ans = *hit
			ans.Question = q
			ans.Cached = true
			cached = true
		}
	}

	if !cached {
		ans, err = s.answerer.Answer(ctx, s.contextText, q)
		if err != nil {
			return Answer{}, fmt.Errorf("answer question: %w", err)
		}
		ans.Question = q
	}

	if ans.Start < 0 || ans.End > len(s.contextText) || ans.Start > ans.End || s.contextText[ans.Start:ans.End] != ans.Text {
		return Answer{}, fmt.Errorf("answer %q is not a span of the context", ans.Text)
	}

	if !cached && s.cache != nil {
		if err := s.cache.SetAnswer(ctx, key, ans, s.cacheTTL); err != nil {
			zap.S().Warnf("⚠️  Failed to cache answer: %v", err)
		}
	}

	if s.history != nil {
		entry := &database.QALog{
			Question:  ans.Question,
			Answer:    ans.Text,
			SpanStart: ans.Start,
			SpanEnd:   ans.End,
			Score:     ans.Score,
			Source:    ans.Source,
			CacheHit:  ans.Cached,
			CacheKey:  key,
		}
		if err := s.history.SaveQALog(entry); err != nil {
			zap.S().Warnf("⚠️  Failed to record QA log: %v", err)
		}
	}

	if s.broadcaster != nil {
		s.broadcaster.Broadcast("qa_answered", ans)
	}
	return ans, nil
}
