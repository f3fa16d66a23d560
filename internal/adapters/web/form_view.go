package web

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/html"

	"portfolio/internal/domain/entities"
	"portfolio/internal/infrastructure/site"
	"portfolio/internal/ports/output"
	"portfolio/pkg/dom"
)

const (
	contactPath = "/contact"
	originField = "_origin"

	colorSent  = "#18bfef"
	colorError = "#ff6b6b"

	statusStyleID  = "form-status-style"
	submitScriptID = "contact-form-script"
	hideAnimation  = "form-status-hide"
)

// statusKeyframes hides the status once its animation delay has elapsed.
const statusKeyframes = "@keyframes " + hideAnimation + " { to { display: none; visibility: hidden; } }"

// submitScript disables the submit control and shows its sending label while
// the browser posts the form.
const submitScript = `document.getElementById("contact-form").addEventListener("submit", function () {
	var b = this.querySelector("input[type=submit][data-sending-label]");
	if (b) { b.disabled = true; b.value = b.getAttribute("data-sending-label"); }
});`

// formView points the contact form at the server and shows the outcome of
// the visitor's last submission.
type formView struct {
	doc    *site.Document
	dict   output.Dictionary
	form   *html.Node
	status *entities.FormStatus
	// remaining is how long the status has left to be shown.
	remaining time.Duration
}

func newFormView(doc *site.Document, dict output.Dictionary) *formView {
	return &formView{doc: doc, dict: dict}
}

// Init rewrites the form of the page, if any. A non-nil status is painted
// and hidden in the browser when it expires; for failed submissions its
// values are put back into the fields.
func (v *formView) Init(origin string, status *entities.FormStatus, now time.Time, l entities.Locale) bool {
	v.form = v.doc.ByID("contact-form")
	if v.form == nil {
		return false
	}
	dom.SetAttr(v.form, "action", contactPath)
	dom.SetAttr(v.form, "method", "post")
	dom.SetAttr(v.form, "enctype", "multipart/form-data")

	hidden := dom.Find(v.form, func(n *html.Node) bool {
		name, _ := dom.Attr(n, "name")
		return dom.IsElement(n, "input") && name == originField
	})
	if hidden == nil {
		hidden = dom.Element("input", dom.A("type", "hidden"), dom.A("name", originField))
		v.form.AppendChild(hidden)
	}
	dom.SetAttr(hidden, "value", origin)
	v.appendOnce("body", submitScriptID, "script", submitScript)

	v.status = status
	if status != nil {
		v.remaining = max(status.ExpiresAt.Sub(now), 0)
		v.appendOnce("head", statusStyleID, "style", statusKeyframes)
		if len(status.Values) > 0 {
			v.refill(status.Values)
		}
	}
	v.Render(l)
	return true
}

// Render localizes the sending label and the status message.
func (v *formView) Render(l entities.Locale) {
	if sending, ok := v.dict.Lookup(l, "form.sending"); ok {
		for _, in := range dom.QueryAll(v.form, "input") {
			if isSubmit(in) {
				dom.SetAttr(in, "data-sending-label", sending)
			}
		}
	}

	if v.status == nil {
		return
	}
	node := v.doc.ByID("form-status")
	if node == nil {
		return
	}
	msg, ok := v.dict.Lookup(l, v.status.MessageKey())
	if !ok {
		return
	}
	dom.SetText(node, msg)
	color := colorError
	if v.status.Outcome == entities.OutcomeSent {
		color = colorSent
	}
	dom.SetAttr(node, "style", fmt.Sprintf("display: block; color: %s; animation: %s 0s linear %.3fs forwards",
		color, hideAnimation, v.remaining.Seconds()))
}

// appendOnce adds <tag id=id>body</tag> to the first parent element unless
// the document already has an element with that id.
func (v *formView) appendOnce(parent, id, tag, body string) {
	if v.doc.ByID(id) != nil {
		return
	}
	p := dom.Find(v.doc.Root, func(n *html.Node) bool { return dom.IsElement(n, parent) })
	if p == nil {
		return
	}
	el := dom.Element(tag, dom.A("id", id))
	el.AppendChild(dom.Text(body))
	p.AppendChild(el)
}

func (v *formView) refill(values entities.Fields) {
	dom.Walk(v.form, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		name, _ := dom.Attr(n, "name")
		if name == "" || name == originField {
			return true
		}
		val := values.Get(name)
		switch {
		case dom.IsElement(n, "textarea"):
			dom.SetText(n, val)
		case dom.IsElement(n, "input") && !isSubmit(n):
			t, _ := dom.Attr(n, "type")
			if strings.EqualFold(t, "hidden") || strings.EqualFold(t, "checkbox") || strings.EqualFold(t, "radio") {
				return true
			}
			dom.SetAttr(n, "value", val)
		}
		return true
	})
}

func isSubmit(n *html.Node) bool {
	if !dom.IsElement(n, "input") {
		return false
	}
	t, _ := dom.Attr(n, "type")
	return strings.EqualFold(t, "submit")
}
