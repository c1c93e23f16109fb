package policy

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	exportPolicy     *bluemonday.Policy
	exportPolicyOnce sync.Once
)

var (
	classRegexp      = regexp.MustCompile(`^[a-z0-9 -]+$`)
	styleValueRegexp = regexp.MustCompile(`^[\w\s#.,%()'"+-]+$`)
)

// ExportPolicy returns the policy markup goes through before it is written
// to the clipboard. It admits the block vocabulary of the surface, line
// breaks, formatting tags and spans, class attributes and the clipboard
// style properties.
func ExportPolicy() *bluemonday.Policy {
	exportPolicyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowElements("p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "br", "span")
		p.AllowElements(FormattingTags()...)
		p.AllowAttrs("class").Matching(classRegexp).Globally()
		p.AllowStyles(ClipboardStyleProperties...).Matching(styleValueRegexp).Globally()
		exportPolicy = p
	})
	return exportPolicy
}

// SanitizeExport runs markup through the export policy.
func SanitizeExport(markup string) string {
	if markup == "" {
		return ""
	}
	return ExportPolicy().Sanitize(markup)
}
