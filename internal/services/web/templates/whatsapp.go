package templates

import (
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/educonsult/site/internal/contact"
)

// WidgetDelayMillis is how long the WhatsApp widget stays hidden after
// page load.
const WidgetDelayMillis = 2000

// WhatsAppHref is the deep link opening a chat with the agency's greeting
// prefilled.
func WhatsAppHref(p Page) string {
	return contact.WhatsAppURL(p.WhatsAppNumber, p.T("whatsapp.message"))
}

// PhoneHref dials the agency.
func PhoneHref(p Page) string {
	return contact.TelURL(p.WhatsAppNumber)
}

// WhatsAppWidget renders the floating chat and call buttons. The script
// reveals it after WidgetDelayMillis.
func WhatsAppWidget(p Page) g.Node {
	if p.WhatsAppNumber == "" {
		return nil
	}
	side := "widget-right"
	if p.RTL() {
		side = "widget-left"
	}
	return h.Div(
		h.ID("whatsapp-widget"),
		h.Class("whatsapp-widget "+side),
		g.Attr("data-reveal-after", strconv.Itoa(WidgetDelayMillis)),
		g.Attr("hidden"),
		h.Span(h.Class("widget-tooltip"), g.Attr("role", "tooltip"), g.Text(p.T("whatsapp.tooltip"))),
		h.A(
			h.Class("widget-button widget-whatsapp"),
			h.Href(WhatsAppHref(p)),
			h.Target("_blank"),
			h.Rel("noopener noreferrer"),
			g.Attr("aria-label", p.T("nav.whatsapp")),
			Icon("whatsapp", "icon"),
		),
		h.A(
			h.Class("widget-button widget-phone"),
			h.Href(PhoneHref(p)),
			g.Attr("aria-label", p.T("nav.phone")),
			Icon("phone", "icon"),
		),
	)
}
