package ruleset

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// maxEntityPasses bounds entity decoding of nested escapes like "&amp;lt;".
const maxEntityPasses = 3

var (
	messagePolicyOnce sync.Once
	messagePolicy     *bluemonday.Policy

	// plainTextEntities restores the entities bluemonday emits for harmless
	// characters. "&lt;" and "&gt;" stay escaped.
	plainTextEntities = strings.NewReplacer(
		"&amp;", "&",
		"&#39;", "'",
		"&#34;", `"`,
		"&quot;", `"`,
	)
)

// SanitizeMessage strips markup from a rule message so documents edited
// outside the codebase cannot inject HTML into screens that render messages
// inline. Entities are decoded before sanitising, so escaped markup is
// stripped too; the result never contains a raw '<' or '>'.
func SanitizeMessage(raw string) string {
	decoded := strings.TrimSpace(raw)
	if decoded == "" {
		return ""
	}
	for i := 0; i < maxEntityPasses; i++ {
		next := html.UnescapeString(decoded)
		if next == decoded {
			break
		}
		decoded = next
	}
	cleaned := messageSanitizer().Sanitize(decoded)
	return strings.TrimSpace(plainTextEntities.Replace(cleaned))
}

func messageSanitizer() *bluemonday.Policy {
	messagePolicyOnce.Do(func() {
		messagePolicy = bluemonday.StrictPolicy()
	})
	return messagePolicy
}
