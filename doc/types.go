package doc

import (
	"fmt"
	"strings"
)

// Language is the source language attached to generated code samples. It is
// cosmetic: no language aware processing happens.
type Language int

const (
	LanguageJavaScript Language = iota
	LanguageTypeScript
	LanguagePython
	LanguageJava
	LanguageCSharp
)

var languageSlugs = []string{"javascript", "typescript", "python", "java", "csharp"}
var languageLabels = []string{"JavaScript", "TypeScript", "Python", "Java", "C#"}

// Languages returns every language in menu order.
func Languages() []Language {
	return []Language{LanguageJavaScript, LanguageTypeScript, LanguagePython, LanguageJava, LanguageCSharp}
}

// Valid reports whether l is one of the declared languages.
func (l Language) Valid() bool {
	return l >= LanguageJavaScript && l <= LanguageCSharp
}

// String returns the slug used in code fences, e.g. "javascript".
func (l Language) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Language(%d)", int(l))
	}
	return languageSlugs[l]
}

// Label returns the human readable name, e.g. "C#".
func (l Language) Label() string {
	if !l.Valid() {
		return l.String()
	}
	return languageLabels[l]
}

// ParseLanguage parses a slug such as "typescript". Matching is case insensitive.
func ParseLanguage(s string) (Language, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, slug := range languageSlugs {
		if slug == s {
			return Language(i), nil
		}
	}
	return 0, fmt.Errorf("unknown language %q (want one of %s)", s, strings.Join(languageSlugs, ", "))
}

func (l Language) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid language %d", int(l))
	}
	return []byte(l.String()), nil
}

func (l *Language) UnmarshalText(text []byte) error {
	parsed, err := ParseLanguage(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// DocType is the documentation style the user asked for.
type DocType int

const (
	DocTypeAPI DocType = iota
	DocTypeFunction
	DocTypeClass
	DocTypeModule
)

var docTypeSlugs = []string{"api", "function", "class", "module"}
var docTypeLabels = []string{"API Documentation", "Function Docs", "Class Documentation", "Module Overview"}

// DocTypes returns every doc type in menu order.
func DocTypes() []DocType {
	return []DocType{DocTypeAPI, DocTypeFunction, DocTypeClass, DocTypeModule}
}

func (d DocType) Valid() bool {
	return d >= DocTypeAPI && d <= DocTypeModule
}

func (d DocType) String() string {
	if !d.Valid() {
		return fmt.Sprintf("DocType(%d)", int(d))
	}
	return docTypeSlugs[d]
}

func (d DocType) Label() string {
	if !d.Valid() {
		return d.String()
	}
	return docTypeLabels[d]
}

// ParseDocType parses a slug such as "module". Matching is case insensitive.
func ParseDocType(s string) (DocType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, slug := range docTypeSlugs {
		if slug == s {
			return DocType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown doc type %q (want one of %s)", s, strings.Join(docTypeSlugs, ", "))
}

func (d DocType) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid doc type %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *DocType) UnmarshalText(text []byte) error {
	parsed, err := ParseDocType(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
