package extract

import (
	"strings"

	"github.com/ppiankov/qticonv/internal/cache"
	"golang.org/x/net/html"
)

// PlainText returns the character data of an HTML fragment with all tags
// and attributes removed. Text order and internal whitespace are kept as is
// and entities are decoded. Malformed markup never fails; whatever text the
// tokenizer can recover is returned.
func PlainText(fragment string) string {
	if fragment == "" {
		return ""
	}

	var buf strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a tokenizer error, either way we are done
			return buf.String()
		case html.TextToken:
			buf.Write(z.Text())
		}
	}
}

// TextReducer strips markup from fragments and memoizes the result.
// Exported question banks repeat the same answer texts heavily.
type TextReducer struct {
	cache cache.Cache
}

// NewTextReducer creates a reducer backed by c. A nil cache disables memoization.
func NewTextReducer(c cache.Cache) *TextReducer {
	if c == nil {
		c = cache.Noop{}
	}
	return &TextReducer{cache: c}
}

// Reduce returns PlainText(fragment), consulting the cache first
func (r *TextReducer) Reduce(fragment string) string {
	if fragment == "" {
		return ""
	}

	key := cache.Key(fragment)
	if text, found := r.cache.Get(key); found {
		return text
	}

	text := PlainText(fragment)
	r.cache.Set(key, text)
	return text
}
