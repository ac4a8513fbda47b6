package ttl

import (
	"reflect"
	"testing"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLex(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		kinds []Kind
		texts []string
	}{
		{
			name:  "statement",
			src:   `:x a skos:Concept ; skos:prefLabel "X" .`,
			kinds: []Kind{Name, Keyword, QName, Semicolon, QName, String, Dot},
			texts: []string{"x", "a", "skos:Concept", ";", "skos:prefLabel", "X", "."},
		},
		{
			name:  "comment dropped",
			src:   "# heading\n:x # trailing\n.",
			kinds: []Kind{Name, Dot},
			texts: []string{"x", "."},
		},
		{
			name:  "escapes and punctuation inside string",
			src:   `"He said \"die\"; then, fell."`,
			kinds: []Kind{String},
			texts: []string{`He said "die"; then, fell.`},
		},
		{
			name:  "long string",
			src:   `"""multi "quoted" text"""`,
			kinds: []Kind{String},
			texts: []string{`multi "quoted" text`},
		},
		{
			name:  "language tag and datatype",
			src:   `"Tod"@de "x"^^xsd:string`,
			kinds: []Kind{String, LangTag, String, Datatype, QName},
			texts: []string{"Tod", "de", "x", "^^", "xsd:string"},
		},
		{
			name:  "prefix directive",
			src:   "@prefix skos: <http://www.w3.org/2004/02/skos/core#> .",
			kinds: []Kind{Directive},
			texts: []string{"@prefix skos: <http://www.w3.org/2004/02/skos/core#> ."},
		},
		{
			name:  "iri",
			src:   `<http://example.org/x>`,
			kinds: []Kind{IRI},
			texts: []string{"http://example.org/x"},
		},
		{
			name:  "unterminated string",
			src:   `"never ends`,
			kinds: []Kind{Illegal},
			texts: []string{`"never ends`},
		},
		{
			name:  "comma separated names",
			src:   `:a, :b_2`,
			kinds: []Kind{Name, Comma, Name},
			texts: []string{"a", ",", "b_2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := Lex(tt.src, 1)
			if got := kinds(toks); !reflect.DeepEqual(got, tt.kinds) {
				t.Fatalf("Lex() kinds = %v, want %v", got, tt.kinds)
			}
			for i, tok := range toks {
				if tok.Text != tt.texts[i] {
					t.Errorf("token %d text = %q, want %q", i, tok.Text, tt.texts[i])
				}
			}
		})
	}
}

func TestLexLineNumbers(t *testing.T) {
	toks := Lex(":x\n  skos:broader\n  :y .", 10)
	want := []int{10, 11, 12, 12}
	for i, tok := range toks {
		if tok.Line != want[i] {
			t.Errorf("token %d line = %d, want %d", i, tok.Line, want[i])
		}
	}
}
