package site

import (
	"strings"

	"golang.org/x/net/html"

	"portfolio/pkg/dom"
)

// I18nAttr tags an element with its dictionary key.
const I18nAttr = "data-i18n"

// Slot is where a tagged element receives its localized content.
type Slot interface {
	fill(n *html.Node, value string)
}

// TextSlot replaces the element's inner markup. Values are inserted as
// markup, not escaped.
type TextSlot struct{}

func (TextSlot) fill(n *html.Node, value string) {
	if err := dom.SetInnerHTML(n, value); err != nil {
		dom.SetText(n, value)
	}
}

// AttributeSlot sets one attribute of the element.
type AttributeSlot struct {
	Name string
}

func (s AttributeSlot) fill(n *html.Node, value string) {
	dom.SetAttr(n, s.Name, value)
}

// SlotFor picks the slot of a tagged element: the value of submit inputs,
// the placeholder of other inputs and the inner markup of everything else.
func SlotFor(n *html.Node) Slot {
	if !dom.IsElement(n, "input") {
		return TextSlot{}
	}
	if t, _ := dom.Attr(n, "type"); strings.EqualFold(t, "submit") {
		return AttributeSlot{Name: "value"}
	}
	return AttributeSlot{Name: "placeholder"}
}

// Binding ties one tagged element to its key and slot.
type Binding struct {
	Node *html.Node
	Key  string
	Slot Slot
}

// Fill writes value into the bound element.
func (b Binding) Fill(value string) {
	b.Slot.fill(b.Node, value)
}

// bind collects the bindings of every tagged element under root, in
// document order.
func bind(root *html.Node) []Binding {
	var out []Binding
	dom.Walk(root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		if key, ok := dom.Attr(n, I18nAttr); ok && key != "" {
			out = append(out, Binding{Node: n, Key: key, Slot: SlotFor(n)})
		}
		return true
	})
	return out
}
