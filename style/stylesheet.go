// Package style resolves the effective style of document nodes and writes
// it inline, so that formatting survives when markup leaves the surface.
package style

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"github.com/burntcarrot/richpad/dom"
)

//go:embed default.css
var defaultCSS []byte

// Selector is a simple selector: `*`, `tag`, `.class` or `tag.class`.
type Selector struct {
	Raw   string
	Tag   string
	Class string
}

func (s Selector) specificity() int {
	n := 0
	if s.Tag != "" {
		n++
	}
	if s.Class != "" {
		n += 10
	}
	return n
}

func (s Selector) matches(n *dom.Node) bool {
	if n.Type != dom.ElementNode {
		return false
	}
	if s.Tag != "" && s.Tag != n.Tag {
		return false
	}
	if s.Class != "" && !hasClass(n.Class, s.Class) {
		return false
	}
	return true
}

func hasClass(classes, class string) bool {
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}

// Rule is a selector with its declarations.
type Rule struct {
	Selector     Selector
	Declarations dom.Declarations
}

// Stylesheet is an ordered list of rules.
type Stylesheet struct {
	Rules []Rule

	// Warnings lists the selectors and at-rules that were skipped.
	Warnings []string
}

// DefaultStylesheet returns the built-in editor stylesheet.
func DefaultStylesheet() *Stylesheet {
	return ParseStylesheet(defaultCSS)
}

// LoadStylesheet reads and parses a stylesheet file.
func LoadStylesheet(path string) (*Stylesheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read stylesheet: %w", err)
	}
	return ParseStylesheet(data), nil
}

// ParseStylesheet parses CSS text. Only simple selectors are kept.
func ParseStylesheet(data []byte) *Stylesheet {
	sheet := &Stylesheet{}

	// selectors of a comma separated group arrive one by one as qualified
	// rules, the last one opens the ruleset
	var selectors []string

	p := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			return sheet
		case css.BeginAtRuleGrammar:
			sheet.Warnings = append(sheet.Warnings, "skipped at-rule "+string(data))
			skipAtRule(p)
		case css.AtRuleGrammar:
			sheet.Warnings = append(sheet.Warnings, "skipped at-rule "+string(data))
		case css.QualifiedRuleGrammar:
			selectors = append(selectors, selectorsOf(data, p.Values())...)
		case css.BeginRulesetGrammar:
			selectors = append(selectors, selectorsOf(data, p.Values())...)
			decls := parseDeclarations(p)
			for _, raw := range selectors {
				sel, ok := parseSelector(raw)
				if !ok {
					sheet.Warnings = append(sheet.Warnings, "unsupported selector "+raw)
					continue
				}
				sheet.Rules = append(sheet.Rules, Rule{
					Selector:     sel,
					Declarations: append(dom.Declarations(nil), decls...),
				})
			}
			selectors = nil
		}
	}
}

func skipAtRule(p *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := p.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar:
			depth++
		case css.EndAtRuleGrammar:
			depth--
		}
	}
}

func selectorsOf(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var out []string
	for _, s := range strings.Split(sb.String(), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseDeclarations(p *css.Parser) dom.Declarations {
	var decls dom.Declarations
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls
		case css.DeclarationGrammar:
			if value := dom.TokensValue(p.Values()); value != "" {
				decls.Set(strings.ToLower(string(data)), value)
			}
		}
	}
}

func parseSelector(raw string) (Selector, bool) {
	sel := Selector{Raw: raw}
	if raw == "*" {
		return sel, true
	}
	if strings.ContainsAny(raw, " \t\n>+~[]:#*") {
		return sel, false
	}

	tag, class, found := strings.Cut(raw, ".")
	if found && (class == "" || strings.Contains(class, ".")) {
		return sel, false
	}
	sel.Tag = strings.ToLower(tag)
	sel.Class = class
	return sel, sel.Tag != "" || sel.Class != ""
}
