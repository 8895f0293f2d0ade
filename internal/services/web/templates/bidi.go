package templates

import (
	"strconv"
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// ScrollStep is the distance one category scroll button moves the strip.
const ScrollStep = 300

// ScrollButton describes one of the two category strip buttons.
type ScrollButton struct {
	// Side names the button's slot. The "left" button renders first, at the
	// inline start of the strip, so under dir=rtl it sits on the right.
	Side   string
	Offset int
	Icon   string
	// LabelKey is the catalog key of the button's accessible label.
	LabelKey string
}

// ScrollButtons returns the inline-start and inline-end buttons, named
// "left" and "right" after their left-to-right positions. In right-to-left
// pages the offsets and chevrons swap.
func ScrollButtons(rtl bool) [2]ScrollButton {
	left := ScrollButton{Side: "left", Offset: -ScrollStep, Icon: "chevron-left", LabelKey: "blog.scroll_back"}
	right := ScrollButton{Side: "right", Offset: ScrollStep, Icon: "chevron-right", LabelKey: "blog.scroll_forward"}
	if rtl {
		left.Offset, right.Offset = right.Offset, left.Offset
		left.Icon, right.Icon = right.Icon, left.Icon
	}
	return [2]ScrollButton{left, right}
}

func scrollControl(p Page, target string, b ScrollButton) g.Node {
	return h.Button(
		h.Type("button"),
		h.Class("scroll-button scroll-button-"+b.Side),
		g.Attr("data-scroll-target", target),
		g.Attr("data-scroll-offset", strconv.Itoa(b.Offset)),
		g.Attr("aria-label", p.T(b.LabelKey)),
		Icon(b.Icon, "icon"),
	)
}

// SplitHeading renders a heading whose first word is plain and whose
// remaining words are highlighted.
func SplitHeading(text string) g.Node {
	first, rest, found := strings.Cut(strings.TrimSpace(text), " ")
	if !found {
		return g.Text(first)
	}
	return g.Group([]g.Node{
		g.Text(first + " "),
		h.Span(h.Class("highlight"), g.Text(rest)),
	})
}

// rowClass appends the reversing modifier to a flex row class in
// right-to-left pages.
func rowClass(p Page, class string) string {
	if p.RTL() {
		return class + " row-reverse"
	}
	return class
}
