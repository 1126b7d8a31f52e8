package compiler

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	annotationPolicyOnce sync.Once
	annotationPolicy     *bluemonday.Policy
)

// SanitizeText strips unsafe markup from annotation text. Basic inline
// formatting survives; scripts, handlers and styles do not. Text is returned
// HTML-escaped, which is how form renderers expect to receive it.
func SanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(annotationSanitizer().Sanitize(trimmed))
}

func annotationSanitizer() *bluemonday.Policy {
	annotationPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "code", "br", "p", "ul", "ol", "li")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		annotationPolicy = policy
	})
	return annotationPolicy
}
