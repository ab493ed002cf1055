package intent

// Option applies a configuration option to the KeywordClassifier.
type Option func(*KeywordClassifier)

// WithKeyword prepends a keyword -> intent mapping, taking precedence
// over the built-in table.
func WithKeyword(keyword, intentLabel string) Option {
	return func(c *KeywordClassifier) {
		if keyword != "" && intentLabel != "" {
			c.keywords = append([]keywordEntry{{keyword: keyword, intent: intentLabel}}, c.keywords...)
		}
	}
}
