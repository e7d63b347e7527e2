// Package html extracts plain text from chat message markup using the
// golang.org/x/net/html tokenizer.
package html

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/chatwatch"
	"golang.org/x/net/html"
)

// Glyph descriptors outside this length range are not treated as glyphs.
const (
	MinGlyphDescriptorLen = 1
	MaxGlyphDescriptorLen = 3
)

// Ensure Extractor implements chatwatch.FragmentExtractor at compile time.
var _ chatwatch.FragmentExtractor = (*Extractor)(nil)

// Extractor converts message markup that interleaves plain text and inline
// glyph images (emoji) into a single string.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the reading-order text of fragment. Glyph images are
// replaced by their short alt descriptor; other markup is dropped.
func (e *Extractor) Extract(fragment string) string {
	return Extract(fragment)
}

// scanState is the scanner position relative to glyph wrappers.
type scanState int

const (
	statePlain scanState = iota
	stateWrapper
)

// frame buffers one open <span>. all holds everything produced inside it;
// kept holds only glyphs and the output of closed child spans.
type frame struct {
	all      strings.Builder
	kept     strings.Builder
	hasGlyph bool
}

// scanner walks tokens in one of two states. In statePlain text goes
// straight to out. In stateWrapper text is held in the innermost open span
// until it closes: a span that directly holds a glyph releases only kept,
// any other span releases all of its content to its parent.
type scanner struct {
	out   strings.Builder
	stack []*frame
}

// Extract is the package-level form of Extractor.Extract.
func Extract(fragment string) string {
	s := &scanner{}
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		tok := z.Token()
		switch tt {
		case html.TextToken:
			s.text(tok.Data)
		case html.StartTagToken:
			s.start(tok, false)
		case html.SelfClosingTagToken:
			s.start(tok, true)
		case html.EndTagToken:
			s.end(tok)
		}
	}
	s.flush()
	return s.out.String()
}

func (s *scanner) state() scanState {
	if len(s.stack) == 0 {
		return statePlain
	}
	return stateWrapper
}

func (s *scanner) top() *frame {
	return s.stack[len(s.stack)-1]
}

func (s *scanner) text(data string) {
	if s.state() == statePlain {
		s.out.WriteString(data)
		return
	}
	s.top().all.WriteString(data)
}

// emit passes finished output to the enclosing span, or to out.
func (s *scanner) emit(data string) {
	if s.state() == statePlain {
		s.out.WriteString(data)
		return
	}
	f := s.top()
	f.all.WriteString(data)
	f.kept.WriteString(data)
}

func (s *scanner) start(tok html.Token, selfClosing bool) {
	switch tok.Data {
	case "span":
		if selfClosing {
			return
		}
		s.stack = append(s.stack, &frame{})
	case "img":
		alt, ok := glyphDescriptor(tok)
		if !ok {
			return
		}
		if s.state() == stateWrapper {
			s.top().hasGlyph = true
		}
		s.emit(alt)
	case "br":
		s.text("\n")
	}
}

func (s *scanner) end(tok html.Token) {
	if tok.Data != "span" || s.state() != stateWrapper {
		return
	}
	s.closeSpan()
}

// closeSpan pops the innermost span and hands its output to the parent.
func (s *scanner) closeSpan() {
	f := s.top()
	s.stack = s.stack[:len(s.stack)-1]
	if f.hasGlyph {
		s.emit(f.kept.String())
		return
	}
	s.emit(f.all.String())
}

// flush closes any spans left open at the end of input.
func (s *scanner) flush() {
	for s.state() == stateWrapper {
		s.closeSpan()
	}
}

// glyphDescriptor returns the alt text of an image if it is short enough to
// stand for a single glyph.
func glyphDescriptor(tok html.Token) (string, bool) {
	for _, a := range tok.Attr {
		if a.Key != "alt" {
			continue
		}
		n := utf8.RuneCountInString(a.Val)
		if n < MinGlyphDescriptorLen || n > MaxGlyphDescriptorLen {
			return "", false
		}
		return a.Val, true
	}
	return "", false
}
