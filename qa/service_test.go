package qa

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fcnca-dashboard/database"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]Answer
	ttl     time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]Answer)}
}

func (c *memoryCache) GetAnswer(ctx context.Context, key string) (*Answer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return &a, true
}

func (c *memoryCache) SetAnswer(ctx context.Context, key string, answer Answer, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = answer
	c.ttl = ttl
	return nil
}

type memoryHistory struct {
	logs []*database.QALog
	err  error
}

func (h *memoryHistory) SaveQALog(log *database.QALog) error {
	h.logs = append(h.logs, log)
	return h.err
}

type countingAnswerer struct {
	inner Answerer
	calls int
}

func (a *countingAnswerer) Answer(ctx context.Context, contextText, question string) (Answer, error) {
	a.calls++
	return a.inner.Answer(ctx, contextText, question)
}

type eventRecorder struct {
	events []string
}

func (r *eventRecorder) Broadcast(event string, payload interface{}) {
	r.events = append(r.events, event)
}

func TestServiceAskCachesRecordsAndBroadcasts(t *testing.T) {
	ctxText := dashboardContext(t)
	answerer := &countingAnswerer{inner: ExtractiveAnswerer{}}
	cache := newMemoryCache()
	history := &memoryHistory{}
	events := &eventRecorder{}

	svc := NewService(ctxText, answerer)
	svc.SetCache(cache, time.Hour)
	svc.SetHistoryStore(history)
	svc.SetBroadcaster(events)

	first, err := svc.Ask(context.Background(), "  When was the bank founded? ")
	require.NoError(t, err)
	assert.Equal(t, "When was the bank founded?", first.Question)
	assert.False(t, first.Cached)
	assert.True(t, strings.Contains(ctxText, first.Text))

	// same question with different spacing and case hits the cache
	second, err := svc.Ask(context.Background(), "when  was the BANK founded?")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Text, second.Text)

	assert.Equal(t, 1, answerer.calls)
	assert.Equal(t, time.Hour, cache.ttl)
	require.Len(t, history.logs, 2)
	assert.Equal(t, first.Text, history.logs[0].Answer)
	assert.True(t, history.logs[1].CacheHit)
	assert.Equal(t, []string{"qa_answered", "qa_answered"}, events.events)
}

func TestServiceAskValidation(t *testing.T) {
	svc := NewService("Some context.", ExtractiveAnswerer{})

	_, err := svc.Ask(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)

	_, err = svc.Ask(context.Background(), strings.Repeat("é", MaxQuestionRunes+1))
	assert.ErrorIs(t, err, ErrQuestionTooLong)

	_, err = svc.Ask(context.Background(), strings.Repeat("é", MaxQuestionRunes))
	assert.NoError(t, err)
}

func TestServiceHistoryFailureDoesNotFailRequest(t *testing.T) {
	svc := NewService("The bank was founded in 1898.", ExtractiveAnswerer{})
	svc.SetHistoryStore(&memoryHistory{err: errors.New("db down")})

	ans, err := svc.Ask(context.Background(), "When was it founded?")
	require.NoError(t, err)
	assert.Equal(t, "The bank was founded in 1898.", ans.Text)
}

type badAnswerer struct{}

func (badAnswerer) Answer(ctx context.Context, contextText, question string) (Answer, error) {
	return Answer{Text: "invented", Start: 0, End: 8}, nil
}

func TestServiceRejectsNonSpanAnswers(t *testing.T) {
	svc := NewService("The bank was founded in 1898.", badAnswerer{})
	_, err := svc.Ask(context.Background(), "When?")
	assert.Error(t, err)
}

func TestCacheKeyNormalizesQuestion(t *testing.T) {
	assert.Equal(t, CacheKey("ctx", "Who is CEO?"), CacheKey("ctx", "  who  is ceo? "))
	assert.NotEqual(t, CacheKey("ctx", "Who is CEO?"), CacheKey("other ctx", "Who is CEO?"))
}
