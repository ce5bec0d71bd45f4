package templates

import (
	platformi18n "github.com/louisbranch/authshell/internal/platform/i18n"
	"golang.org/x/text/language"
)

// Font variable and body classes. English pages load the Latin families;
// Persian and Arabic use IRANSans.
const (
	fontInter    = "font-inter"
	fontIRANSans = "font-iransans"
	varsLatin    = "font-var-inter font-var-poppins font-var-outfit"
	varsIRANSans = "font-var-iransans"
)

// Layout carries the locale-dependent <html> and <body> attributes.
type Layout struct {
	Lang      string
	Dir       string
	FontClass string
	HTMLClass string
}

// LayoutFor resolves document attributes for tag.
func LayoutFor(tag language.Tag) Layout {
	base, _ := tag.Base()
	layout := Layout{
		Lang:      base.String(),
		Dir:       platformi18n.Direction(tag),
		FontClass: fontIRANSans,
		HTMLClass: varsIRANSans,
	}
	if base.String() == "en" {
		layout.FontClass = fontInter
		layout.HTMLClass = varsLatin
	}
	return layout
}

// RTL reports whether the layout flows right to left.
func (l Layout) RTL() bool {
	return l.Dir == platformi18n.DirRTL
}

// TextAlign is the input alignment class for the layout direction.
func (l Layout) TextAlign() string {
	if l.RTL() {
		return "text-right"
	}
	return "text-left"
}
