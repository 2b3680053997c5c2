package scene

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// sceneAST is the root of a parsed scene description
type sceneAST struct {
	Nodes []*nodeAST `parser:"@@*"`
}

// nodeAST is one node: a name, an optional owner marker, an optional
// component list and an optional child block
type nodeAST struct {
	Pos        lexer.Position
	Name       string          `parser:"( @Ident | @String )"`
	Owner      *ownerAST       `parser:"@@?"`
	Components []*componentAST `parser:"( '[' ( @@ ( ','? @@ )* )? ']' )?"`
	Children   []*nodeAST      `parser:"( '{' @@* '}' )?"`
}

// ownerAST is "@owner" with optional key = value options
type ownerAST struct {
	Pos     lexer.Position
	Keyword string       `parser:"'@' @Ident"`
	Options []*optionAST `parser:"( '(' ( @@ ( ',' @@ )* )? ')' )?"`
}

type optionAST struct {
	Pos   lexer.Position
	Key   string `parser:"@Ident '='"`
	Value string `parser:"( @String | @Ident )"`
}

type componentAST struct {
	Pos  lexer.Position
	Type string `parser:"@String"`
}

var sceneLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `(?:#|//)[^\n]*`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[@{}\[\](),=]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var sceneParser = participle.MustBuild[sceneAST](
	participle.Lexer(sceneLexer),
	participle.Unquote("String"),
	participle.Elide("Whitespace", "Comment"),
)
