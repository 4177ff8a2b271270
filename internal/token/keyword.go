package token

// Keyword is the closed set of reserved words of the language.
type Keyword int

const (
	NoKeyword Keyword = iota
	Class
	Constructor
	Function
	Method
	Field
	Static
	Var
	Int
	Char
	Boolean
	Void
	True
	False
	Null
	This
	Let
	Do
	If
	Else
	While
	Return
)

var keywordNames = [...]string{
	NoKeyword:   "",
	Class:       "class",
	Constructor: "constructor",
	Function:    "function",
	Method:      "method",
	Field:       "field",
	Static:      "static",
	Var:         "var",
	Int:         "int",
	Char:        "char",
	Boolean:     "boolean",
	Void:        "void",
	True:        "true",
	False:       "false",
	Null:        "null",
	This:        "this",
	Let:         "let",
	Do:          "do",
	If:          "if",
	Else:        "else",
	While:       "while",
	Return:      "return",
}

var keywordsByName = func() map[string]Keyword {
	m := make(map[string]Keyword, len(keywordNames))
	for kw, name := range keywordNames {
		if name != "" {
			m[name] = Keyword(kw)
		}
	}
	return m
}()

// LookupKeyword returns the keyword spelled by name, if any.
func LookupKeyword(name string) (Keyword, bool) {
	kw, ok := keywordsByName[name]
	return kw, ok
}

func (k Keyword) String() string {
	if k < 0 || int(k) >= len(keywordNames) {
		return ""
	}
	return keywordNames[k]
}
