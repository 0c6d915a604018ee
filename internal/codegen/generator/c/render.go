package cgen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/smolos/drvgen/internal/codegen/genctx"
	"github.com/smolos/drvgen/internal/codegen/marker"
	"github.com/smolos/drvgen/internal/codegen/meta"
	"github.com/smolos/drvgen/internal/drvconf"
)

// Flavor selects which file of the C pair a template renders.
type Flavor int

const (
	Source Flavor = iota
	Header
)

func (f Flavor) String() string {
	if f == Header {
		return "header"
	}
	return "source"
}

// Ext is the file extension of the flavor, dot included.
func (f Flavor) Ext() string {
	if f == Header {
		return ".h"
	}
	return ".c"
}

// Request is what a marker handler sees.
type Request struct {
	Ctx      *genctx.Context
	Config   *drvconf.Config
	Analysis *meta.Analysis
	Flavor   Flavor
}

// FileName is the target file name with extension.
func (r *Request) FileName() string {
	return r.Config.TargetC.Name + r.Flavor.Ext()
}

// Handler renders one marker kind. Exactly one of Inline and Block is set:
// Inline markers are replaced in place within their line, Block markers
// replace the whole template line with generated lines.
type Handler struct {
	Inline func(r *Request) (string, error)
	Block  func(r *Request) ([]string, error)
}

// Registry maps marker kinds to their handlers.
type Registry map[marker.Kind]Handler

// Renderer expands the markers of one template flavor.
type Renderer struct {
	flavor  Flavor
	markers Registry
}

// NewRenderer returns a renderer preloaded with the built-in markers of flavor.
func NewRenderer(flavor Flavor) *Renderer {
	markers := SourceMarkers()
	if flavor == Header {
		markers = HeaderMarkers()
	}
	return &Renderer{flavor: flavor, markers: markers}
}

// Register adds or replaces the handler of a marker kind.
func (r *Renderer) Register(kind marker.Kind, h Handler) {
	r.markers[kind] = h
}

// Flavor returns the flavor the renderer was built for.
func (r *Renderer) Flavor() Flavor { return r.flavor }

// Render expands tmpl line by line. Lines without markers are copied as is.
// Unknown markers are reported and left untouched. CRLF templates are read
// as LF, and the output always ends with a newline unless it is empty.
func (r *Renderer) Render(gc *genctx.Context, cfg *drvconf.Config, a *meta.Analysis, tmpl string) (string, error) {
	req := &Request{Ctx: gc, Config: cfg, Analysis: a, Flavor: r.flavor}

	var out []string
	for n, line := range splitLines(tmpl) {
		tokens := marker.Scan(line)
		if len(tokens) == 0 {
			out = append(out, line)
			continue
		}
		expanded, err := r.expandLine(req, line, tokens)
		if err != nil {
			return "", fmt.Errorf("%s template line %d: %w", r.flavor, n+1, err)
		}
		out = append(out, expanded...)
	}

	if len(out) == 0 {
		return "", nil
	}
	return strings.Join(out, "\n") + "\n", nil
}

// expandLine handles a line holding at least one marker. Markers are taken
// left to right: block markers contribute their lines; the first inline or
// unknown marker contributes the line itself, rewritten with every inline
// substitution and with block marker tokens removed.
func (r *Renderer) expandLine(req *Request, line string, tokens []marker.Token) ([]string, error) {
	rewritten := line
	for _, tok := range tokens {
		h, ok := r.markers[tok.Kind]
		switch {
		case !ok:
			req.Ctx.Logger.Warn("unknown marker", "marker", tok.Text(), "template", r.flavor.String())
		case h.Inline != nil:
			v, err := h.Inline(req)
			if err != nil {
				return nil, fmt.Errorf("marker %s: %w", tok.Kind, err)
			}
			rewritten = replaceToken(rewritten, tok.Text(), v)
		default:
			rewritten = replaceToken(rewritten, tok.Text(), "")
		}
	}

	var out []string
	lineEmitted := false
	for _, tok := range tokens {
		h, ok := r.markers[tok.Kind]
		if ok && h.Block != nil {
			block, err := h.Block(req)
			if err != nil {
				return nil, fmt.Errorf("marker %s: %w", tok.Kind, err)
			}
			out = append(out, block...)
			continue
		}
		if !lineEmitted {
			out = append(out, rewritten)
			lineEmitted = true
		}
	}
	return out, nil
}

// replaceToken replaces every occurrence of tok that ends a word, so that
// "@@marker:date" does not eat into "@@marker:dates".
func replaceToken(line, tok, value string) string {
	var b strings.Builder
	for {
		i := strings.Index(line, tok)
		if i < 0 {
			b.WriteString(line)
			return b.String()
		}
		end := i + len(tok)
		if end < len(line) && !unicode.IsSpace(rune(line[end])) {
			b.WriteString(line[:end])
			line = line[end:]
			continue
		}
		b.WriteString(line[:i])
		b.WriteString(value)
		line = line[end:]
	}
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
