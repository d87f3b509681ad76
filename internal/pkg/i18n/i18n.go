// Package i18n holds the translated labels used by exported reports.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"golang.org/x/text/language"
)

//go:embed messages/*.json
var messagesFS embed.FS

// Supported report languages, first one is the fallback.
var Supported = []language.Tag{language.English, language.Japanese}

type Bundle struct {
	messages map[language.Tag]map[string]string
	matcher  language.Matcher
}

func Load() (*Bundle, error) {
	b := &Bundle{
		messages: make(map[language.Tag]map[string]string, len(Supported)),
		matcher:  language.NewMatcher(Supported),
	}
	for _, tag := range Supported {
		base, _ := tag.Base()
		data, err := messagesFS.ReadFile(path.Join("messages", base.String()+".json"))
		if err != nil {
			return nil, fmt.Errorf("failed to read messages for %s: %w", tag, err)
		}
		var msgs map[string]string
		if err := json.Unmarshal(data, &msgs); err != nil {
			return nil, fmt.Errorf("failed to parse messages for %s: %w", tag, err)
		}
		b.messages[tag] = msgs
	}
	return b, nil
}

// Match picks a supported language. An explicit lang value ("ja", "en-US")
// wins over the Accept-Language header.
func (b *Bundle) Match(lang, acceptLanguage string) language.Tag {
	var wanted []language.Tag
	if lang = strings.TrimSpace(lang); lang != "" {
		if tag, err := language.Parse(lang); err == nil {
			wanted = append(wanted, tag)
		}
	}
	if len(wanted) == 0 && acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
			wanted = tags
		}
	}
	if len(wanted) == 0 {
		return Supported[0]
	}
	_, idx, confidence := b.matcher.Match(wanted...)
	if confidence == language.No {
		return Supported[0]
	}
	return Supported[idx]
}

func (b *Bundle) Translator(tag language.Tag) Translator {
	msgs, ok := b.messages[tag]
	if !ok {
		tag = Supported[0]
		msgs = b.messages[tag]
	}
	return Translator{tag: tag, msgs: msgs, fallback: b.messages[Supported[0]]}
}

// Translator resolves keys for one language, falling back to English and
// then to the key itself.
type Translator struct {
	tag      language.Tag
	msgs     map[string]string
	fallback map[string]string
}

func (t Translator) Language() language.Tag {
	return t.tag
}

func (t Translator) T(key string) string {
	if v, ok := t.msgs[key]; ok {
		return v
	}
	if v, ok := t.fallback[key]; ok {
		return v
	}
	return key
}

func (t Translator) Weekday(d time.Weekday) string {
	return t.T("weekday_" + strings.ToLower(d.String()))
}
