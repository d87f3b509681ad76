package i18n

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	b, err := Load()
	require.NoError(t, err)

	cases := []struct {
		name   string
		lang   string
		accept string
		want   language.Tag
	}{
		{"default", "", "", language.English},
		{"explicit japanese", "ja", "", language.Japanese},
		{"explicit beats header", "en", "ja-JP,ja;q=0.9", language.English},
		{"header only", "", "ja-JP,ja;q=0.9,en;q=0.5", language.Japanese},
		{"regional english", "en-GB", "", language.English},
		{"unsupported falls back", "", "fr-FR", language.English},
		{"garbage lang uses header", "%%", "ja", language.Japanese},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, b.Match(c.lang, c.accept))
		})
	}
}

func TestTranslator(t *testing.T) {
	b, err := Load()
	require.NoError(t, err)

	en := b.Translator(language.English)
	ja := b.Translator(language.Japanese)

	assert.Equal(t, "Night Hours (After 22:00)", en.T("night_hours"))
	assert.Equal(t, "夜間時間（22:00以降）", ja.T("night_hours"))
	assert.Equal(t, "unknown_key", ja.T("unknown_key"))
	assert.Equal(t, "Monday", en.Weekday(time.Monday))
	assert.Equal(t, "月", ja.Weekday(time.Monday))
}

func TestMessageSetsHaveSameKeys(t *testing.T) {
	b, err := Load()
	require.NoError(t, err)

	en := b.messages[language.English]
	ja := b.messages[language.Japanese]
	for key := range en {
		_, ok := ja[key]
		assert.True(t, ok, "missing ja translation for %q", key)
	}
	assert.Len(t, ja, len(en))
}
