package generation

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// Budget caps prompt size in tokens. Counting uses the cl100k_base encoding,
// loaded on first use; if it cannot be loaded a max(runes/4, words) heuristic
// is used instead.
type Budget struct {
	limit int

	once sync.Once
	enc  *tiktoken.Tiktoken
}

// NewBudget returns nil for a non-positive limit, which disables truncation.
func NewBudget(limit int) *Budget {
	if limit <= 0 {
		return nil
	}
	return &Budget{limit: limit}
}

// Limit reports the configured token limit.
func (b *Budget) Limit() int {
	if b == nil {
		return 0
	}
	return b.limit
}

func (b *Budget) encoding() *tiktoken.Tiktoken {
	b.once.Do(func() {
		if enc, err := tiktoken.GetEncoding("cl100k_base"); err == nil {
			b.enc = enc
		}
	})
	return b.enc
}

// Count returns the token count of text.
func (b *Budget) Count(text string) int {
	if b != nil {
		if enc := b.encoding(); enc != nil {
			return len(enc.Encode(text, nil, nil))
		}
	}
	return EstimateTokens(text)
}

// Fit truncates text to the limit.
func (b *Budget) Fit(text string) string {
	if b == nil || b.limit <= 0 {
		return text
	}
	if enc := b.encoding(); enc != nil {
		tokens := enc.Encode(text, nil, nil)
		if len(tokens) <= b.limit {
			return text
		}
		return enc.Decode(tokens[:b.limit])
	}
	return truncateRunes(text, b.limit)
}

// EstimateTokens is the heuristic used when no encoding is available.
func EstimateTokens(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	estimate := len([]rune(trimmed)) / 4
	if words := len(strings.Fields(trimmed)); estimate < words {
		estimate = words
	}
	return max(estimate, 1)
}

func truncateRunes(text string, maxTokens int) string {
	runes := []rune(text)
	limit := maxTokens * 4
	if limit >= len(runes) {
		return text
	}
	return string(runes[:limit])
}
