// Package i18n defines the fixed set of locales the shell renders and the
// layout facts (direction) that follow from each one.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Direction values used for the html dir attribute.
const (
	DirLTR = "ltr"
	DirRTL = "rtl"
)

var (
	supportedTags = []language.Tag{
		language.Persian,
		language.English,
		language.Arabic,
	}
	matcher = language.NewMatcher(supportedTags)
)

// SupportedTags returns the configured locales, default first.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supportedTags))
	copy(out, supportedTags)
	return out
}

// DefaultTag returns the locale used when nothing else matches.
func DefaultTag() language.Tag {
	return supportedTags[0]
}

// ParseTag maps value onto a supported locale by base language.
// "en-US" resolves to en; anything outside the set is rejected.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Und, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Und, false
	}
	base, conf := tag.Base()
	if conf == language.No {
		return language.Und, false
	}
	for _, supported := range supportedTags {
		supportedBase, _ := supported.Base()
		if supportedBase == base {
			return supported, true
		}
	}
	return language.Und, false
}

// MatchTags picks the best supported locale for a preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	_, index, conf := matcher.Match(tags...)
	if conf == language.No || index < 0 || index >= len(supportedTags) {
		return DefaultTag()
	}
	return supportedTags[index]
}

// IsRTL reports whether tag is written right to left.
func IsRTL(tag language.Tag) bool {
	base, _ := tag.Base()
	switch base.String() {
	case "fa", "ar":
		return true
	default:
		return false
	}
}

// Direction returns the html dir attribute value for tag.
func Direction(tag language.Tag) string {
	if IsRTL(tag) {
		return DirRTL
	}
	return DirLTR
}
