// Package router provides the core routing engine: pattern compilation,
// ordered method+path matching, middleware dispatch, and reverse URL
// generation from named routes.
package router

import (
	"regexp"
	"strings"
)

// tokenRegexp matches a named placeholder such as ":id" inside a pattern.
var tokenRegexp = regexp.MustCompile(`:([A-Za-z_][A-Za-z0-9_]*)`)

// innerGroupRegexp matches an innermost parenthesized group, i.e. one that
// contains no nested parentheses.
var innerGroupRegexp = regexp.MustCompile(`\(([^()]*)\)`)

// Pattern is the compiled form of a path template. A template consists of
// literal segments, ":name" placeholders matching one or more non-slash
// characters, and trailing parenthesized groups that are optional as a
// whole and may nest:
//
//	/books/:id
//	/archive/:year(/:month(/:day))
//
// Compilation is deterministic; a Pattern is immutable after Compile.
type Pattern struct {
	raw    string
	re     *regexp.Regexp
	tokens []string // placeholder names in declaration order
}

// Compile translates a path template into a Pattern. It returns a
// *PatternError for unbalanced group parentheses or a placeholder name
// used twice within the same template.
func Compile(raw string) (*Pattern, error) {
	var (
		expr   strings.Builder
		tokens []string
		depth  int
	)

	expr.WriteString("^")
	for i := 0; i < len(raw); i++ {
		switch c := raw[i]; c {
		case '(':
			depth++
			expr.WriteString("(?:")
		case ')':
			depth--
			if depth < 0 {
				return nil, &PatternError{Pattern: raw, Reason: "unbalanced group parentheses"}
			}
			expr.WriteString(")?")
		case ':':
			loc := tokenRegexp.FindStringSubmatchIndex(raw[i:])
			if loc == nil || loc[0] != 0 {
				return nil, &PatternError{Pattern: raw, Reason: "empty placeholder name"}
			}
			name := raw[i:][loc[2]:loc[3]]
			for _, seen := range tokens {
				if seen == name {
					return nil, &PatternError{Pattern: raw, Reason: "duplicate placeholder :" + name}
				}
			}
			tokens = append(tokens, name)
			expr.WriteString("([^/]+)")
			i += len(name)
		default:
			expr.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	if depth != 0 {
		return nil, &PatternError{Pattern: raw, Reason: "unbalanced group parentheses"}
	}
	expr.WriteString("$")

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, &PatternError{Pattern: raw, Reason: err.Error()}
	}

	return &Pattern{raw: raw, re: re, tokens: tokens}, nil
}

// String returns the original template text.
func (p *Pattern) String() string { return p.raw }

// Tokens returns the placeholder names in declaration order. The returned
// slice is a copy.
func (p *Pattern) Tokens() []string {
	return append([]string(nil), p.tokens...)
}

// Match tests path against the compiled template. On success it returns
// the captured values keyed by placeholder name; placeholders inside an
// absent optional group are omitted from the result.
func (p *Pattern) Match(path string) (map[string]string, bool) {
	m := p.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}
	params := make(map[string]string, len(p.tokens))
	for i, name := range p.tokens {
		if v := m[i+1]; v != "" {
			params[name] = v
		}
	}
	return params, true
}

// Expand substitutes params into the template and returns the resulting
// path. Placeholders present in params are replaced with their values;
// any optional group containing an unpopulated placeholder is stripped,
// parentheses included, while the parentheses of fully populated groups
// are dropped. Groups are resolved on the template before any value is
// substituted, so parameter values containing parentheses or ":word"
// sequences pass through verbatim. Expand never mutates the Pattern.
func (p *Pattern) Expand(params map[string]string) string {
	// Resolve groups innermost first so that nested optional segments
	// collapse before the group that encloses them.
	out := p.raw
	for {
		loc := innerGroupRegexp.FindStringSubmatchIndex(out)
		if loc == nil {
			break
		}
		content := out[loc[2]:loc[3]]
		if !tokensPopulated(content, params) {
			content = ""
		}
		out = out[:loc[0]] + content + out[loc[1]:]
	}

	return tokenRegexp.ReplaceAllStringFunc(out, func(tok string) string {
		if v, ok := params[tok[1:]]; ok {
			return v
		}
		return tok
	})
}

// tokensPopulated reports whether every placeholder in segment has a
// value in params. A segment with no placeholders is trivially
// populated.
func tokensPopulated(segment string, params map[string]string) bool {
	for _, m := range tokenRegexp.FindAllStringSubmatch(segment, -1) {
		if _, ok := params[m[1]]; !ok {
			return false
		}
	}
	return true
}
