// SPDX-License-Identifier: MPL-2.0

package chorefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"chore-cli/pkg/types"
)

// ErrParse is the sentinel error wrapped by ParseError.
var ErrParse = errors.New("chorefile syntax error")

// ParseError reports a syntax error with its offending source line.
type ParseError struct {
	Path string
	Line int
	Msg  string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

// Unwrap returns ErrParse so callers can use errors.Is for programmatic detection.
func (e *ParseError) Unwrap() error { return ErrParse }

// parser holds the line-by-line state while reading a single source.
type parser struct {
	path string
	cf   *Chorefile

	// current is the recipe whose body lines are being collected, nil at top level.
	current *Recipe
	// indent is the leading whitespace of current's first body line; every
	// further body line must start with the same prefix.
	indent string

	// pendingAttrs are annotations waiting for the next recipe header.
	pendingAttrs []Attribute
	// pendingDesc is the comment line immediately preceding the next header.
	pendingDesc string

	seen map[types.RecipeName]int
}

// Parse reads a single chorefile source. Declaration order is preserved;
// imports must precede all recipe declarations. Parse does not follow
// imports (see Load) and does not cross-check alias targets (see resolve).
func Parse(r io.Reader, path string) (*Chorefile, error) {
	p := &parser{
		path: path,
		cf:   &Chorefile{Path: path},
		seen: make(map[types.RecipeName]int),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		if err := p.parseLine(strings.TrimRight(scanner.Text(), "\r"), lineno); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if len(p.pendingAttrs) > 0 {
		return nil, p.errorf(p.pendingAttrs[0].Line, "attribute %q is not followed by a recipe", p.pendingAttrs[0].Name)
	}
	for _, recipe := range p.cf.Recipes {
		if err := recipe.Validate(); err != nil {
			return nil, p.errorf(recipe.HeaderLine, "%v", err)
		}
	}
	return p.cf, nil
}

func (p *parser) errorf(line int, format string, args ...any) error {
	return &ParseError{Path: p.path, Line: line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseLine(raw string, lineno int) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		// A blank line detaches any pending description comment but does
		// not terminate a body: bodies end at the next top-level line.
		p.pendingDesc = ""
		return nil
	}

	if raw[0] == ' ' || raw[0] == '\t' {
		return p.parseBodyLine(raw, lineno)
	}

	// Any top-level construct terminates the current body.
	p.current = nil
	p.indent = ""

	switch {
	case strings.HasPrefix(trimmed, "#"):
		p.pendingDesc = strings.TrimSpace(strings.TrimPrefix(trimmed, "#"))
		return nil
	case strings.HasPrefix(trimmed, "["):
		return p.parseAttribute(trimmed, lineno)
	case trimmed == "import" || strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "import? "):
		return p.parseImport(trimmed, lineno)
	case strings.HasPrefix(trimmed, "alias "):
		return p.parseAlias(trimmed, lineno)
	default:
		return p.parseHeader(trimmed, lineno)
	}
}

func (p *parser) parseBodyLine(raw string, lineno int) error {
	if p.current == nil {
		return p.errorf(lineno, "indented line outside a recipe body")
	}
	if p.indent == "" {
		p.indent = raw[:len(raw)-len(strings.TrimLeft(raw, " \t"))]
	}
	if !strings.HasPrefix(raw, p.indent) {
		return p.errorf(lineno, "inconsistent indentation in body of recipe %q", p.current.Name)
	}

	text := raw[len(p.indent):]
	if strings.HasPrefix(strings.TrimSpace(text), "#") {
		return nil
	}

	line := Line{Kind: LineShell, Text: text, Number: lineno}
	if strings.HasPrefix(line.Text, "@") {
		line.Quiet = true
		line.Text = line.Text[1:]
	}
	if strings.HasPrefix(line.Text, ">") {
		line.Kind = LineInvoke
		line.Text = strings.TrimSpace(line.Text[1:])
		if line.Text == "" {
			return p.errorf(lineno, "recipe invocation line names no recipe")
		}
	}
	if strings.TrimSpace(line.Text) == "" {
		return p.errorf(lineno, "empty command line in body of recipe %q", p.current.Name)
	}

	p.current.Lines = append(p.current.Lines, line)
	return nil
}

func (p *parser) parseAttribute(trimmed string, lineno int) error {
	if !strings.HasSuffix(trimmed, "]") {
		return p.errorf(lineno, "unterminated attribute %q", trimmed)
	}
	inner := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	attr := Attribute{Line: lineno}
	if name, param, ok := strings.Cut(inner, ":"); ok {
		value, err := unquote(strings.TrimSpace(param))
		if err != nil {
			return p.errorf(lineno, "attribute %q: %v", strings.TrimSpace(name), err)
		}
		attr.Name = AttributeName(strings.TrimSpace(name))
		attr.Param = value
	} else {
		attr.Name = AttributeName(inner)
	}
	if _, known := knownAttributes[attr.Name]; !known {
		return p.errorf(lineno, "unknown attribute %q", attr.Name)
	}
	p.pendingAttrs = append(p.pendingAttrs, attr)
	return nil
}

func (p *parser) parseImport(trimmed string, lineno int) error {
	if len(p.cf.Recipes) > 0 || len(p.cf.Aliases) > 0 {
		return p.errorf(lineno, "imports must precede recipe and alias declarations")
	}
	if len(p.pendingAttrs) > 0 {
		return p.errorf(p.pendingAttrs[0].Line, "attribute %q is not followed by a recipe", p.pendingAttrs[0].Name)
	}
	p.pendingDesc = ""

	imp := Import{Line: lineno}
	rest := strings.TrimPrefix(trimmed, "import")
	if strings.HasPrefix(rest, "?") {
		imp.Optional = true
		rest = rest[1:]
	}
	path, err := unquote(strings.TrimSpace(rest))
	if err != nil {
		return p.errorf(lineno, "import: %v", err)
	}
	if path == "" {
		return p.errorf(lineno, "import names no file")
	}
	imp.Path = path
	p.cf.Imports = append(p.cf.Imports, imp)
	return nil
}

func (p *parser) parseAlias(trimmed string, lineno int) error {
	if len(p.pendingAttrs) > 0 {
		return p.errorf(p.pendingAttrs[0].Line, "attribute %q is not followed by a recipe", p.pendingAttrs[0].Name)
	}
	p.pendingDesc = ""

	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "alias "))
	name, target, ok := strings.Cut(rest, ":=")
	if !ok {
		return p.errorf(lineno, "malformed alias (expected \"alias name := target\")")
	}
	alias := Alias{
		Name:   types.RecipeName(strings.TrimSpace(name)),
		Target: types.RecipeName(strings.TrimSpace(target)),
		Line:   lineno,
	}
	if err := alias.Name.Validate(); err != nil {
		return p.errorf(lineno, "alias: %v", err)
	}
	if err := alias.Target.Validate(); err != nil {
		return p.errorf(lineno, "alias target: %v", err)
	}
	p.cf.Aliases = append(p.cf.Aliases, alias)
	return nil
}

func (p *parser) parseHeader(trimmed string, lineno int) error {
	if !strings.HasSuffix(trimmed, ":") {
		return p.errorf(lineno, "malformed recipe header %q (expected trailing ':')", trimmed)
	}
	tokens, err := splitHeader(strings.TrimSpace(trimmed[:len(trimmed)-1]))
	if err != nil {
		return p.errorf(lineno, "malformed recipe header: %v", err)
	}
	if len(tokens) == 0 {
		return p.errorf(lineno, "recipe header names no recipe")
	}

	recipe := &Recipe{
		Name:        types.RecipeName(tokens[0]),
		Description: p.pendingDesc,
		Attributes:  p.pendingAttrs,
		SourcePath:  p.path,
		HeaderLine:  lineno,
	}
	if err := recipe.Name.Validate(); err != nil {
		return p.errorf(lineno, "%v", err)
	}
	if prev, dup := p.seen[recipe.Name]; dup {
		return p.errorf(lineno, "recipe %q already defined on line %d", recipe.Name, prev)
	}

	for _, tok := range tokens[1:] {
		param := Parameter{Name: tok}
		if name, def, ok := strings.Cut(tok, "="); ok {
			value, err := unquote(def)
			if err != nil {
				return p.errorf(lineno, "parameter %q: %v", name, err)
			}
			param = Parameter{Name: name, Default: value, HasDefault: true}
		}
		recipe.Params = append(recipe.Params, param)
	}

	p.seen[recipe.Name] = lineno
	p.cf.Recipes = append(p.cf.Recipes, recipe)
	p.current = recipe
	p.indent = ""
	p.pendingAttrs = nil
	p.pendingDesc = ""
	return nil
}

// splitHeader splits a recipe header on whitespace, keeping quoted default
// values (which may contain spaces) attached to their parameter token.
func splitHeader(s string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			cur.WriteByte(c)
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
			cur.WriteByte(c)
		case c == ' ' || c == '\t':
			if cur.Len() > 0 {
				tokens = append(tokens, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteByte(c)
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote")
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}

// unquote strips a matching pair of single or double quotes. Quoting is
// mandatory for values in attribute parameters, import paths, and
// parameter defaults.
func unquote(s string) (string, error) {
	if len(s) < 2 {
		return "", fmt.Errorf("expected a quoted value, got %q", s)
	}
	open := s[0]
	if open != '"' && open != '\'' {
		return "", fmt.Errorf("expected a quoted value, got %q", s)
	}
	if s[len(s)-1] != open {
		return "", fmt.Errorf("unterminated quote in %q", s)
	}
	return s[1 : len(s)-1], nil
}
