package qa

import (
	"context"
	"strings"
	"unicode"
)

var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "do": true, "does": true, "did": true, "of": true, "in": true,
	"on": true, "at": true, "to": true, "for": true, "by": true, "with": true, "and": true,
	"or": true, "as": true, "it": true, "its": true, "this": true, "that": true, "what": true,
	"which": true, "who": true, "whom": true, "when": true, "where": true, "why": true,
	"how": true, "from": true, "under": true, "has": true, "have": true, "had": true,
	"i": true, "you": true, "me": true, "tell": true, "about": true,
}

// abbreviations that end in a period without ending the sentence
var abbreviations = map[string]bool{
	"jr": true, "sr": true, "mr": true, "mrs": true, "ms": true, "dr": true,
	"inc": true, "co": true, "corp": true, "st": true, "no": true, "u.s": true,
}

type span struct {
	start, end int
}

// ExtractiveAnswerer returns the context sentence sharing the most content
// words with the question. It needs no model and is used as the fallback.
type ExtractiveAnswerer struct{}

// Answer implements Answerer. With no overlap the first sentence is returned
// with a zero score.
func (ExtractiveAnswerer) Answer(_ context.Context, contextText, question string) (Answer, error) {
	sentences := splitSentences(contextText)
	if len(sentences) == 0 {
		return Answer{Question: question, Source: SourceExtractive}, nil
	}

	qTokens := contentTokens(question)
	best, bestScore := sentences[0], 0.0
	for _, s := range sentences {
		score := overlapScore(qTokens, contextText[s.start:s.end])
		if score > bestScore {
			best, bestScore = s, score
		}
	}

	return Answer{
		Question: question,
		Text:     contextText[best.start:best.end],
		Start:    best.start,
		End:      best.end,
		Score:    bestScore,
		Source:   SourceExtractive,
	}, nil
}

// overlapScore is the fraction of question content words found in text
func overlapScore(qTokens map[string]bool, text string) float64 {
	if len(qTokens) == 0 {
		return 0
	}
	tTokens := contentTokens(text)
	hits := 0
	for tok := range qTokens {
		if tTokens[tok] {
			hits++
		}
	}
	return float64(hits) / float64(len(qTokens))
}

func contentTokens(text string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if !stopwords[w] {
			out[stem(w)] = true
		}
	}
	return out
}

// stem folds simple plurals so "trades" matches "trade"
func stem(w string) string {
	if len(w) > 3 && strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") {
		return w[:len(w)-1]
	}
	return w
}

// splitSentences returns trimmed sentence byte ranges of text
func splitSentences(text string) []span {
	var out []span
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		atEnd := i+1 == len(text)
		if !atEnd && text[i+1] != ' ' && text[i+1] != '\n' && text[i+1] != '\t' {
			continue
		}
		if c == '.' && isAbbreviation(text[start:i]) {
			continue
		}
		if s, ok := trimSpan(text, start, i+1); ok {
			out = append(out, s)
		}
		start = i + 1
	}
	if s, ok := trimSpan(text, start, len(text)); ok {
		out = append(out, s)
	}
	return out
}

// isAbbreviation reports whether the word right before a period is an
// initial ("B.") or a known abbreviation ("Jr.")
func isAbbreviation(before string) bool {
	idx := strings.LastIndexAny(before, " \n\t(")
	word := strings.ToLower(before[idx+1:])
	if len(word) == 1 && unicode.IsLetter(rune(word[0])) {
		return true
	}
	return abbreviations[word]
}

func trimSpan(text string, start, end int) (span, bool) {
	for start < end && unicode.IsSpace(rune(text[start])) {
		start++
	}
	for end > start && unicode.IsSpace(rune(text[end-1])) {
		end--
	}
	return span{start: start, end: end}, end > start
}
