package doc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	for _, l := range Languages() {
		parsed, err := ParseLanguage(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, parsed)
	}

	l, err := ParseLanguage("  CSharp ")
	require.NoError(t, err)
	assert.Equal(t, LanguageCSharp, l)

	_, err = ParseLanguage("cobol")
	assert.Error(t, err)
}

func TestParseDocType(t *testing.T) {
	for _, d := range DocTypes() {
		parsed, err := ParseDocType(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}

	_, err := ParseDocType("tutorial")
	assert.Error(t, err)
}

func TestZeroValuesAreDefaults(t *testing.T) {
	var l Language
	var d DocType
	assert.Equal(t, LanguageJavaScript, l)
	assert.Equal(t, DocTypeAPI, d)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "C#", LanguageCSharp.Label())
	assert.Equal(t, "Module Overview", DocTypeModule.Label())
	assert.False(t, Language(9).Valid())
	assert.Equal(t, "Language(9)", Language(9).Label())
}

func TestTextMarshaling(t *testing.T) {
	type settings struct {
		Language Language `json:"language"`
		DocType  DocType  `json:"doc_type"`
	}

	data, err := json.Marshal(settings{Language: LanguagePython, DocType: DocTypeClass})
	require.NoError(t, err)
	assert.JSONEq(t, `{"language":"python","doc_type":"class"}`, string(data))

	var s settings
	require.NoError(t, json.Unmarshal([]byte(`{"language":"java","doc_type":"module"}`), &s))
	assert.Equal(t, LanguageJava, s.Language)
	assert.Equal(t, DocTypeModule, s.DocType)

	assert.Error(t, json.Unmarshal([]byte(`{"language":"rust"}`), &s))

	_, err = json.Marshal(settings{Language: Language(12)})
	assert.Error(t, err)
}
