package dom

import (
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Declaration is a single "property: value" pair.
type Declaration struct {
	Property string
	Value    string
}

// Declarations is an ordered list of style declarations, as found in a style
// attribute.
type Declarations []Declaration

// Get returns the value of a property.
func (ds Declarations) Get(property string) (string, bool) {
	for _, d := range ds {
		if d.Property == property {
			return d.Value, true
		}
	}
	return "", false
}

// Set replaces the value of a property or appends it.
func (ds *Declarations) Set(property, value string) {
	for i := range *ds {
		if (*ds)[i].Property == property {
			(*ds)[i].Value = value
			return
		}
	}
	*ds = append(*ds, Declaration{Property: property, Value: value})
}

// Remove deletes a property.
func (ds *Declarations) Remove(property string) {
	out := (*ds)[:0]
	for _, d := range *ds {
		if d.Property != property {
			out = append(out, d)
		}
	}
	*ds = out
}

// String renders the declarations the way a style attribute holds them.
func (ds Declarations) String() string {
	parts := make([]string, 0, len(ds))
	for _, d := range ds {
		parts = append(parts, d.Property+": "+d.Value)
	}
	return strings.Join(parts, "; ")
}

// ParseDeclarations parses the content of a style attribute. Malformed
// declarations are skipped.
func ParseDeclarations(s string) Declarations {
	var ds Declarations

	p := css.NewParser(parse.NewInputString(s), true)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			return ds
		case css.DeclarationGrammar:
			if value := TokensValue(p.Values()); value != "" {
				ds.Set(strings.ToLower(string(data)), value)
			}
		}
	}
}

// TokensValue joins the value tokens of a declaration, collapsing
// whitespace and dropping a trailing !important.
func TokensValue(tokens []css.Token) string {
	var sb strings.Builder
	pendingSpace := false
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			pendingSpace = sb.Len() > 0
			continue
		}
		if pendingSpace {
			sb.WriteByte(' ')
			pendingSpace = false
		}
		sb.Write(t.Data)
	}
	value := strings.TrimSpace(sb.String())
	value = strings.TrimSpace(strings.TrimSuffix(value, "!important"))
	return value
}
