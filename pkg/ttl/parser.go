package ttl

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/taxonomy"
)

var (
	// ErrInputNotFound is returned by [ParseFile] when the file does not exist.
	ErrInputNotFound = errors.New("input not found")

	// ErrDuplicateConcept is returned in strict mode when two blocks declare
	// the same concept id.
	ErrDuplicateConcept = errors.New("duplicate concept")
)

// Predicates understood by the parser. Anything else is ignored.
const (
	PredPrefLabel  = "skos:prefLabel"
	PredAltLabel   = "skos:altLabel"
	PredDefinition = "skos:definition"
	PredExample    = "skos:example"
	PredScopeNote  = "skos:scopeNote"
	PredBroader    = "skos:broader"
	PredNarrower   = "skos:narrower"
)

// Options configures parsing.
type Options struct {
	// Strict turns a repeated concept id into ErrDuplicateConcept instead
	// of letting the later block replace the earlier one.
	Strict bool
}

// Skip records a block that did not start with a concept id.
type Skip struct {
	Line   int
	Reason string
}

// Duplicate records a concept id declared by more than one block.
type Duplicate struct {
	ID        string
	FirstLine int
	Line      int
}

// Warning records a statement the parser could not make sense of and
// stepped over.
type Warning struct {
	Line    int
	Message string
}

func (w Warning) String() string { return fmt.Sprintf("line %d: %s", w.Line, w.Message) }

// Result is the outcome of parsing a catalogue.
type Result struct {
	Concepts   taxonomy.Catalogue
	Skipped    []Skip
	Duplicates []Duplicate
	Warnings   []Warning
}

// Block is a run of non-blank lines.
type Block struct {
	Line int // 1-based line number of the first line
	Text string
}

// Blocks splits text at every run of one or more blank (whitespace-only)
// lines.
func Blocks(text string) []Block {
	var (
		blocks []Block
		cur    []string
		start  int
	)
	flush := func() {
		if len(cur) > 0 {
			blocks = append(blocks, Block{Line: start, Text: strings.Join(cur, "\n")})
			cur = nil
		}
	}
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if len(cur) == 0 {
			start = i + 1
		}
		cur = append(cur, line)
	}
	flush()
	return blocks
}

// Parse reads a catalogue with default options. Later blocks win over
// earlier ones that declare the same id.
func Parse(text string) *Result {
	res, _ := ParseWithOptions(text, Options{})
	return res
}

// ParseWithOptions reads a catalogue. It only fails in strict mode; every
// other problem is recorded on the Result and parsing carries on.
func ParseWithOptions(text string, opts Options) (*Result, error) {
	res := &Result{Concepts: taxonomy.Catalogue{}}
	firstLine := map[string]int{}

	for _, b := range Blocks(text) {
		p := &parser{toks: Lex(b.Text, b.Line), res: res}
		for _, st := range p.block(b.Line) {
			if line, ok := firstLine[st.concept.ID]; ok {
				res.Duplicates = append(res.Duplicates, Duplicate{ID: st.concept.ID, FirstLine: line, Line: st.line})
				if opts.Strict {
					return nil, fmt.Errorf("%w: %s (lines %d and %d)", ErrDuplicateConcept, st.concept.ID, line, st.line)
				}
			} else {
				firstLine[st.concept.ID] = st.line
			}
			res.Concepts[st.concept.ID] = st.concept
		}
	}
	return res, nil
}

// ParseFile reads and parses the catalogue at path. A missing file yields
// an error matching ErrInputNotFound.
func ParseFile(path string, opts Options) (*Result, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", ErrInputNotFound, err)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseWithOptions(string(data), opts)
}

type statement struct {
	concept taxonomy.Concept
	line    int
}

type parser struct {
	toks []Token
	pos  int
	res  *Result
}

func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.toks) {
		return Token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) next() (Token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func (p *parser) warn(line int, format string, args ...any) {
	p.res.Warnings = append(p.res.Warnings, Warning{Line: line, Message: fmt.Sprintf(format, args...)})
}

// block parses: directive* subject predicateObjectList '.'? (subject ...)*
func (p *parser) block(line int) []statement {
	for {
		t, ok := p.peek()
		if !ok || t.Kind != Directive {
			break
		}
		p.pos++
	}

	t, ok := p.peek()
	switch {
	case !ok && p.pos > 0:
		p.res.Skipped = append(p.res.Skipped, Skip{Line: line, Reason: "prologue"})
		return nil
	case !ok:
		return nil
	case t.Kind != Name || t.Text == "":
		p.res.Skipped = append(p.res.Skipped, Skip{Line: t.Line, Reason: fmt.Sprintf("block starts with %s, not a concept id", t.Kind)})
		return nil
	}

	var out []statement
	for {
		t, ok := p.peek()
		if !ok {
			return out
		}
		if t.Kind != Name || t.Text == "" {
			p.warn(t.Line, "unexpected %s after end of statement", t)
			return out
		}
		if len(out) > 0 {
			p.warn(t.Line, "second subject :%s in the same block", t.Text)
		}
		p.pos++
		out = append(out, statement{concept: p.predicates(t.Text), line: t.Line})
	}
}

// predicates parses verb objectList (';' verb objectList)* up to '.' or the
// end of the block.
func (p *parser) predicates(id string) taxonomy.Concept {
	c := taxonomy.Concept{ID: id}
	set := map[string]bool{}

	for {
		t, ok := p.next()
		if !ok || t.Kind == Dot {
			return c
		}
		if t.Kind == Semicolon {
			continue
		}
		if t.Kind != QName && t.Kind != Keyword {
			p.warn(t.Line, "expected predicate, got %s", t)
			p.skipStatement()
			continue
		}

		objects := p.objects()
		p.apply(&c, t, objects, set)

		next, ok := p.peek()
		if !ok {
			return c
		}
		switch next.Kind {
		case Semicolon:
			p.pos++
		case Dot:
		case QName, Keyword:
			// A missing ';' before the next predicate.
			p.warn(next.Line, "missing ';' before %s", next.Text)
		default:
			p.warn(next.Line, "expected ';' or '.' after %s objects, got %s", t.Text, next)
			p.skipStatement()
		}
	}
}

// skipStatement skips to just past the next ';', or up to (not past) the next '.'.
func (p *parser) skipStatement() {
	for {
		t, ok := p.peek()
		if !ok || t.Kind == Dot {
			return
		}
		p.pos++
		if t.Kind == Semicolon {
			return
		}
	}
}

// objects parses object (',' object)*.
func (p *parser) objects() []Token {
	var out []Token
	for {
		if obj, ok := p.object(); ok {
			out = append(out, obj)
		}
		t, ok := p.peek()
		if !ok || t.Kind != Comma {
			return out
		}
		p.pos++
	}
}

func (p *parser) object() (Token, bool) {
	t, ok := p.peek()
	if !ok {
		return Token{}, false
	}
	switch t.Kind {
	case Name, QName, IRI, Word, Keyword:
		p.pos++
		return t, true
	case String:
		p.pos++
		p.literalSuffix()
		return t, true
	default:
		p.warn(t.Line, "expected object, got %s", t)
		return Token{}, false
	}
}

// literalSuffix consumes an optional @lang or ^^datatype after a string.
func (p *parser) literalSuffix() {
	t, ok := p.peek()
	if !ok {
		return
	}
	switch t.Kind {
	case LangTag:
		p.pos++
	case Datatype:
		p.pos++
		if dt, ok := p.peek(); ok && (dt.Kind == QName || dt.Kind == IRI || dt.Kind == Name) {
			p.pos++
		}
	}
}

func (p *parser) apply(c *taxonomy.Concept, verb Token, objects []Token, set map[string]bool) {
	text := func(field *string) {
		for _, o := range objects {
			if o.Kind != String {
				p.warn(o.Line, "%s expects a quoted string, got %s", verb.Text, o.Kind)
				continue
			}
			if !set[verb.Text] {
				*field = o.Text
				set[verb.Text] = true
			}
		}
	}
	refs := func(field *[]string) {
		for _, o := range objects {
			if o.Kind != Name || o.Text == "" {
				p.warn(o.Line, "%s expects a :concept reference, got %s", verb.Text, o.Kind)
				continue
			}
			if !slices.Contains(*field, o.Text) {
				*field = append(*field, o.Text)
			}
		}
	}

	switch verb.Text {
	case PredPrefLabel:
		text(&c.Label)
	case PredDefinition:
		text(&c.Definition)
	case PredExample:
		text(&c.Example)
	case PredScopeNote:
		text(&c.ScopeNote)
	case PredAltLabel:
		for _, o := range objects {
			if o.Kind == String {
				c.AltLabels = append(c.AltLabels, o.Text)
			}
		}
	case PredBroader:
		refs(&c.Broader)
	case PredNarrower:
		refs(&c.Narrower)
	}
}
