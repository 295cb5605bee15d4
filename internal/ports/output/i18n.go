package output

// Translator renders user-facing messages for a guild locale.
type Translator interface {
	// T renders key for locale. data fills template placeholders and may
	// be nil. Unknown keys fall back to the default locale, then to key.
	T(locale, key string, data map[string]any) string
	// N is T for messages with plural forms.
	N(locale, key string, count int, data map[string]any) string
}
