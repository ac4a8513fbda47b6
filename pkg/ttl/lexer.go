package ttl

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind identifies the type of a [Token].
type Kind int

const (
	Illegal   Kind = iota // unexpected character or unterminated literal
	Name                  // ":id" - a concept in the default namespace
	QName                 // "skos:broader" - a prefixed name
	Keyword               // "a"
	Word                  // any other bare word (numbers, booleans)
	String                // quoted literal, Text holds the unescaped value
	LangTag               // "@en" directly after a string
	Datatype              // "^^"
	IRI                   // "<http://...>", Text holds the IRI without brackets
	Directive             // "@prefix ... ." or "@base ... ." up to end of line
	Semicolon             // ";"
	Comma                 // ","
	Dot                   // "."
)

var kindNames = [...]string{
	Illegal:   "illegal",
	Name:      "name",
	QName:     "qname",
	Keyword:   "keyword",
	Word:      "word",
	String:    "string",
	LangTag:   "langtag",
	Datatype:  "datatype",
	IRI:       "iri",
	Directive: "directive",
	Semicolon: "';'",
	Comma:     "','",
	Dot:       "'.'",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Token is a lexical unit of the catalogue dialect.
type Token struct {
	Kind Kind
	// Text is the token value: the local part for Name, "prefix:local" for
	// QName, the unescaped content for String.
	Text string
	Line int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q (line %d)", t.Kind, t.Text, t.Line)
}

// Lex splits src into tokens. Comments are dropped. Lexing never fails:
// problems surface as [Illegal] tokens for the parser to report. line is
// the line number of the first line of src.
func Lex(src string, line int) []Token {
	l := &lexer{src: src, line: line}
	l.run()
	return l.tokens
}

type lexer struct {
	src    string
	pos    int
	line   int
	tokens []Token
}

func (l *lexer) emit(k Kind, text string, line int) {
	l.tokens = append(l.tokens, Token{Kind: k, Text: text, Line: line})
}

func (l *lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return r
}

func (l *lexer) next() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r, w := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += w
	if r == '\n' {
		l.line++
	}
	return r
}

func (l *lexer) run() {
	for l.pos < len(l.src) {
		start := l.line
		r := l.peek()
		switch {
		case unicode.IsSpace(r):
			l.next()
		case r == '#':
			l.skipLine()
		case r == ';':
			l.next()
			l.emit(Semicolon, ";", start)
		case r == ',':
			l.next()
			l.emit(Comma, ",", start)
		case r == '.':
			l.next()
			l.emit(Dot, ".", start)
		case r == '"':
			l.lexString()
		case r == '<':
			l.lexIRI()
		case r == '@':
			l.lexAt()
		case r == '^' && strings.HasPrefix(l.src[l.pos:], "^^"):
			l.pos += 2
			l.emit(Datatype, "^^", start)
		case r == ':' || isWordRune(r):
			l.lexName()
		default:
			l.next()
			l.emit(Illegal, string(r), start)
		}
	}
}

func (l *lexer) skipLine() {
	for l.pos < len(l.src) && l.peek() != '\n' {
		l.next()
	}
}

// lexAt handles "@prefix"/"@base" directives and language tags.
func (l *lexer) lexAt() {
	start := l.line
	begin := l.pos
	l.next()
	for isWordRune(l.peek()) || l.peek() == '-' {
		l.next()
	}
	word := l.src[begin+1 : l.pos]

	prev := Illegal
	if n := len(l.tokens); n > 0 {
		prev = l.tokens[n-1].Kind
	}
	if prev == String && word != "prefix" && word != "base" {
		l.emit(LangTag, word, start)
		return
	}
	l.skipLine()
	l.emit(Directive, strings.TrimSpace(l.src[begin:l.pos]), start)
}

func (l *lexer) lexIRI() {
	start := l.line
	l.next()
	begin := l.pos
	for l.pos < len(l.src) {
		switch l.peek() {
		case '>':
			text := l.src[begin:l.pos]
			l.next()
			l.emit(IRI, text, start)
			return
		case '\n':
			l.emit(Illegal, "<"+l.src[begin:l.pos], start)
			return
		}
		l.next()
	}
	l.emit(Illegal, "<"+l.src[begin:], start)
}

// lexString reads "..." or """...""" with backslash escapes.
func (l *lexer) lexString() {
	start := l.line
	delim := `"`
	if strings.HasPrefix(l.src[l.pos:], `"""`) {
		delim = `"""`
	}
	l.pos += len(delim)
	begin := l.pos

	var b strings.Builder
	for l.pos < len(l.src) {
		if strings.HasPrefix(l.src[l.pos:], delim) {
			l.pos += len(delim)
			l.emit(String, b.String(), start)
			return
		}
		r := l.next()
		if r == '\\' && l.pos < len(l.src) {
			b.WriteRune(unescape(l.next()))
			continue
		}
		b.WriteRune(r)
	}
	l.emit(Illegal, delim+l.src[begin:], start)
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return r
	}
}

// lexName reads ":local", "prefix:local", the keyword "a" or a bare word.
func (l *lexer) lexName() {
	start := l.line
	begin := l.pos
	for isWordRune(l.peek()) || l.peek() == '-' {
		l.next()
	}
	prefix := l.src[begin:l.pos]
	if l.peek() != ':' {
		if prefix == "a" {
			l.emit(Keyword, prefix, start)
		} else {
			l.emit(Word, prefix, start)
		}
		return
	}
	l.next()
	localBegin := l.pos
	for isWordRune(l.peek()) {
		l.next()
	}
	local := l.src[localBegin:l.pos]
	if prefix == "" {
		l.emit(Name, local, start)
		return
	}
	l.emit(QName, prefix+":"+local, start)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
