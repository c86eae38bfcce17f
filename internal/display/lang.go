package display

import (
	"fmt"
	"strings"

	"github.com/TinyKitten/trainlcd-cli/internal/models"
)

// Lang is a header display language
type Lang int

const (
	LangBase Lang = iota
	LangPhonetic
	LangEN
	LangZH
	LangKO
)

var langNames = []string{"BASE", "PHONETIC", "EN", "ZH", "KO"}

func (l Lang) String() string {
	if l < 0 || int(l) >= len(langNames) {
		return fmt.Sprintf("Lang(%d)", int(l))
	}
	return langNames[l]
}

// MarshalText encodes the value as its name
func (l Lang) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// langAliases maps config codes to languages
var langAliases = map[string]Lang{
	"ja":       LangBase,
	"base":     LangBase,
	"kana":     LangPhonetic,
	"phonetic": LangPhonetic,
	"en":       LangEN,
	"zh":       LangZH,
	"ko":       LangKO,
}

// DefaultLangs is the full cycle in display order
var DefaultLangs = []Lang{LangBase, LangPhonetic, LangEN, LangZH, LangKO}

// ParseLang parses a language code such as "ja", "kana" or "en"
func ParseLang(s string) (Lang, error) {
	l, ok := langAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return LangBase, fmt.Errorf("unknown language %q", s)
	}
	return l, nil
}

// ParseLangs parses a comma separated list of language codes. The base
// language always comes first and duplicates are dropped.
func ParseLangs(list string) ([]Lang, error) {
	out := []Lang{LangBase}
	seen := map[Lang]bool{LangBase: true}
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		l, err := ParseLang(part)
		if err != nil {
			return nil, err
		}
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out, nil
}

// StationName returns the station's name in l, or "" when the station has
// no name in that language
func StationName(s *models.Station, l Lang) string {
	if s == nil {
		return ""
	}
	switch l {
	case LangBase:
		return s.Name
	case LangPhonetic:
		return s.NameKatakana
	case LangEN:
		return s.NameRoman
	case LangZH:
		return s.NameChinese
	case LangKO:
		return s.NameKorean
	}
	return ""
}

// Available reports whether l can be shown for the station. The base
// language is always available.
func Available(s *models.Station, l Lang) bool {
	if l == LangBase {
		return true
	}
	return StationName(s, l) != ""
}
