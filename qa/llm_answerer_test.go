package qa

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModel struct {
	reply string
	err   error
	calls int
}

func (m *stubModel) ExtractSpan(ctx context.Context, contextText, question string) (string, error) {
	m.calls++
	return m.reply, m.err
}

const shortContext = "The bank was founded in 1898 in Smithfield, North Carolina. It trades as FCNCA."

func TestLLMAnswererAlignsReply(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{name: "exact", reply: "1898", want: "1898"},
		{name: "case differs", reply: "smithfield, north carolina", want: "Smithfield, North Carolina"},
		{name: "quoted with period", reply: "\"in 1898.\"", want: "in 1898"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewLLMAnswerer(&stubModel{reply: tt.reply})
			ans, err := a.Answer(context.Background(), shortContext, "When was the bank founded?")
			require.NoError(t, err)

			assert.Equal(t, tt.want, ans.Text)
			assert.Equal(t, shortContext[ans.Start:ans.End], ans.Text)
			assert.Equal(t, SourceLLM, ans.Source)
		})
	}
}

func TestLLMAnswererFallsBackOnParaphrase(t *testing.T) {
	a := NewLLMAnswerer(&stubModel{reply: "It was established in the late nineteenth century."})
	ans, err := a.Answer(context.Background(), shortContext, "When was the bank founded?")
	require.NoError(t, err)

	assert.Equal(t, SourceExtractive, ans.Source)
	assert.Equal(t, "The bank was founded in 1898 in Smithfield, North Carolina.", ans.Text)
}

func TestLLMAnswererFallsBackOnModelError(t *testing.T) {
	a := NewLLMAnswerer(&stubModel{err: errors.New("503")})
	ans, err := a.Answer(context.Background(), shortContext, "What does it trade as?")
	require.NoError(t, err)

	assert.Equal(t, SourceExtractive, ans.Source)
	assert.Equal(t, "It trades as FCNCA.", ans.Text)
}

func TestLLMAnswererReturnsContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := NewLLMAnswerer(&stubModel{err: context.Canceled})
	_, err := a.Answer(ctx, shortContext, "When?")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAlignRejectsMissingAndEmpty(t *testing.T) {
	_, _, ok := Align(shortContext, "")
	assert.False(t, ok)
	_, _, ok = Align(shortContext, "Raleigh")
	assert.False(t, ok)
}
