package llm

import (
	"context"
	"fmt"
	"strings"
)

// spanSystemMessage instructs the model to behave like an extractive reader
const spanSystemMessage = "You are an extractive question answering model. " +
	"Answer ONLY by copying the shortest exact span of the context that answers the question. " +
	"Do not paraphrase, do not add words, do not explain. " +
	"If the context does not contain the answer, reply with the single most relevant sentence copied verbatim."

// SpanMessages builds the chat messages for an extractive answer request
func SpanMessages(contextText, question string) []Message {
	prompt := fmt.Sprintf("Context:\n%s\n\nQuestion: %s\n\nAnswer span:", contextText, question)
	return []Message{
		{Role: "system", Content: spanSystemMessage},
		{Role: "user", Content: prompt},
	}
}

// ExtractSpan asks the model for the answer span. The reply is returned
// trimmed but is not guaranteed to occur in contextText; callers align it.
func (c *Client) ExtractSpan(ctx context.Context, contextText, question string) (string, error) {
	reply, err := c.ChatCompletion(ctx, SpanMessages(contextText, question), 0, 128)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}
