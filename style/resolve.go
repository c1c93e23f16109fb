package style

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/burntcarrot/richpad/dom"
	"github.com/burntcarrot/richpad/policy"
)

// Computed maps a property to its resolved value.
type Computed map[string]string

const rootFontSize = 16.0

var initialValues = map[string]string{
	"color":           "rgb(0, 0, 0)",
	"font-size":       "16px",
	"font-style":      "normal",
	"font-weight":     "400",
	"font-family":     "serif",
	"font-variant":    "normal",
	"text-transform":  "none",
	"text-decoration": "none",
	"line-height":     "normal",
	"margin":          "0px",
}

var inherited = map[string]bool{
	"color":          true,
	"font-size":      true,
	"font-style":     true,
	"font-weight":    true,
	"font-family":    true,
	"font-variant":   true,
	"text-transform": true,
	"line-height":    true,
}

// user agent defaults, applied below any stylesheet rule
var agentDefaults = map[string]dom.Declarations{
	"b":      {{Property: "font-weight", Value: "bold"}},
	"strong": {{Property: "font-weight", Value: "bold"}},
	"i":      {{Property: "font-style", Value: "italic"}},
	"em":     {{Property: "font-style", Value: "italic"}},
	"u":      {{Property: "text-decoration", Value: "underline"}},
	"s":      {{Property: "text-decoration", Value: "line-through"}},
	"p":      {{Property: "margin", Value: "1em 0"}},
	"h1":     {{Property: "font-size", Value: "2em"}, {Property: "font-weight", Value: "bold"}, {Property: "margin", Value: "0.67em 0"}},
	"h2":     {{Property: "font-size", Value: "1.5em"}, {Property: "font-weight", Value: "bold"}, {Property: "margin", Value: "0.83em 0"}},
	"h3":     {{Property: "font-size", Value: "1.17em"}, {Property: "font-weight", Value: "bold"}, {Property: "margin", Value: "1em 0"}},
	"h4":     {{Property: "font-weight", Value: "bold"}, {Property: "margin", Value: "1.33em 0"}},
	"h5":     {{Property: "font-size", Value: "0.83em"}, {Property: "font-weight", Value: "bold"}, {Property: "margin", Value: "1.67em 0"}},
	"h6":     {{Property: "font-size", Value: "0.67em"}, {Property: "font-weight", Value: "bold"}, {Property: "margin", Value: "2.33em 0"}},
}

var absoluteSizes = map[string]float64{
	"xx-small": 9,
	"x-small":  10,
	"small":    13,
	"medium":   16,
	"large":    18,
	"x-large":  24,
	"xx-large": 32,
}

// Resolver computes the effective style of nodes against a stylesheet.
type Resolver struct {
	sheet *Stylesheet
	rules []Rule
}

// NewResolver returns a resolver for sheet, or for the default stylesheet
// when sheet is nil.
func NewResolver(sheet *Stylesheet) *Resolver {
	if sheet == nil {
		sheet = DefaultStylesheet()
	}
	rules := append([]Rule(nil), sheet.Rules...)
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Selector.specificity() < rules[j].Selector.specificity()
	})
	return &Resolver{sheet: sheet, rules: rules}
}

// Compute returns the resolved style of a node, taking its ancestors into
// account. Non-element nodes take the style of their parent.
func (r *Resolver) Compute(doc *dom.Document, id dom.NodeID) Computed {
	var chain []dom.NodeID
	for n := id; n != dom.None; n = doc.Parent(n) {
		chain = append(chain, n)
	}

	var c Computed
	for i := len(chain) - 1; i >= 0; i-- {
		c = r.computeWith(doc, chain[i], c)
	}
	return c
}

// computeWith resolves a node whose parent resolved to parent (nil for a
// root).
func (r *Resolver) computeWith(doc *dom.Document, id dom.NodeID, parent Computed) Computed {
	n := doc.Node(id)
	if n.Type != dom.ElementNode {
		if parent == nil {
			return initialComputed()
		}
		return parent
	}

	specified := map[string]string{}
	for _, d := range agentDefaults[n.Tag] {
		specified[d.Property] = d.Value
	}
	for _, rule := range r.rules {
		if rule.Selector.matches(n) {
			for _, d := range rule.Declarations {
				specified[d.Property] = d.Value
			}
		}
	}
	for _, d := range n.Style {
		specified[d.Property] = d.Value
	}

	out := Computed{}
	// font-size first: em lengths of other properties depend on it
	for _, prop := range append([]string{"font-size"}, policy.ClipboardStyleProperties...) {
		if _, done := out[prop]; done {
			continue
		}
		v, ok := specified[prop]
		switch {
		case !ok && inherited[prop] && parent != nil, v == "inherit" && parent != nil:
			out[prop] = parent[prop]
			continue
		case !ok, v == "initial", v == "inherit":
			v = initialValues[prop]
		}
		out[prop] = normalize(prop, v, parent, out)
	}
	return out
}

func initialComputed() Computed {
	c := Computed{}
	for k, v := range initialValues {
		c[k] = v
	}
	return c
}

// normalize turns a specified value into the form a browser reports as
// computed: relative font sizes and em lengths become px and weight
// keywords become numbers.
func normalize(prop, v string, parent, self Computed) string {
	parentSize := rootFontSize
	if parent != nil {
		if px, ok := pixels(parent["font-size"]); ok {
			parentSize = px
		}
	}

	switch prop {
	case "font-size":
		if px, ok := absoluteSizes[v]; ok {
			return formatPx(px)
		}
		switch v {
		case "larger":
			return formatPx(parentSize * 1.2)
		case "smaller":
			return formatPx(parentSize / 1.2)
		}
		if strings.HasSuffix(v, "%") {
			if f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64); err == nil {
				return formatPx(parentSize * f / 100)
			}
		}
		return resolveLengths(v, parentSize)
	case "font-weight":
		parentWeight := 400.0
		if parent != nil {
			if f, err := strconv.ParseFloat(parent["font-weight"], 64); err == nil {
				parentWeight = f
			}
		}
		switch v {
		case "normal":
			return "400"
		case "bold":
			return "700"
		case "bolder":
			if parentWeight < 600 {
				return "700"
			}
			return "900"
		case "lighter":
			if parentWeight > 500 {
				return "400"
			}
			return "100"
		}
		return v
	case "margin", "line-height":
		ownSize := parentSize
		if px, ok := pixels(self["font-size"]); ok {
			ownSize = px
		}
		return resolveLengths(v, ownSize)
	}
	return v
}

// resolveLengths rewrites every em and unitless zero length of a value to
// px.
func resolveLengths(v string, em float64) string {
	fields := strings.Fields(v)
	for i, f := range fields {
		switch {
		case f == "0":
			fields[i] = "0px"
		case strings.HasSuffix(f, "rem"):
			if n, err := strconv.ParseFloat(strings.TrimSuffix(f, "rem"), 64); err == nil {
				fields[i] = formatPx(n * rootFontSize)
			}
		case strings.HasSuffix(f, "em"):
			if n, err := strconv.ParseFloat(strings.TrimSuffix(f, "em"), 64); err == nil {
				fields[i] = formatPx(n * em)
			}
		}
	}
	return strings.Join(fields, " ")
}

func pixels(v string) (float64, bool) {
	if !strings.HasSuffix(v, "px") {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	return f, err == nil
}

func formatPx(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64) + "px"
}
