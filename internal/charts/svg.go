package charts

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	svgNS   = "http://www.w3.org/2000/svg"
	xlinkNS = "http://www.w3.org/1999/xlink"
)

// Handle is the opaque identity of an element within one Document.
type Handle string

// Attr is one name/value pair on an element, either an XML attribute or an
// inline style property.
type Attr struct {
	Name  string
	Value string
}

// Element is one node of the rendered SVG tree. Attributes and styles keep
// insertion order so output is deterministic.
type Element struct {
	Handle   Handle
	Tag      string
	Text     string
	Children []*Element

	attrs  []Attr
	styles []Attr
}

// NewElement returns an element with no handle.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// Attr returns the value of attribute name.
func (e *Element) Attr(name string) (string, bool) {
	return lookup(e.attrs, name)
}

// SetAttr sets attribute name, replacing any previous value.
func (e *Element) SetAttr(name, value string) *Element {
	e.attrs = upsert(e.attrs, name, value)
	return e
}

// SetNum sets a numeric attribute.
func (e *Element) SetNum(name string, v float64) *Element {
	return e.SetAttr(name, formatNum(v))
}

// Style returns the inline style property name.
func (e *Element) Style(name string) (string, bool) {
	return lookup(e.styles, name)
}

// SetStyle sets inline style property name.
func (e *Element) SetStyle(name, value string) *Element {
	e.styles = upsert(e.styles, name, value)
	return e
}

// Attrs returns a copy of the element's attributes.
func (e *Element) Attrs() []Attr {
	return append([]Attr(nil), e.attrs...)
}

// Styles returns a copy of the element's inline styles.
func (e *Element) Styles() []Attr {
	return append([]Attr(nil), e.styles...)
}

// Append adds child as the last child and returns it.
func (e *Element) Append(child *Element) *Element {
	e.Children = append(e.Children, child)
	return child
}

// Walk visits e and its descendants depth first.
func (e *Element) Walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// Find returns the descendant (or e itself) carrying handle h.
func (e *Element) Find(h Handle) *Element {
	var found *Element
	e.Walk(func(el *Element) {
		if found == nil && el.Handle == h {
			found = el
		}
	})
	return found
}

// Count returns how many elements in the subtree have the given tag.
func (e *Element) Count(tag string) int {
	n := 0
	e.Walk(func(el *Element) {
		if el.Tag == tag {
			n++
		}
	})
	return n
}

// WriteSVG serialises the subtree. The handle, when set, is written as id.
func (e *Element) WriteSVG(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := e.write(bw); err != nil {
		return err
	}
	return bw.Flush()
}

// String renders the subtree, for tests and debugging.
func (e *Element) String() string {
	var sb strings.Builder
	_ = e.WriteSVG(&sb)
	return sb.String()
}

func (e *Element) write(w *bufio.Writer) error {
	w.WriteString("<" + e.Tag)
	if e.Handle != "" {
		writeAttr(w, "id", string(e.Handle))
	}
	for _, a := range e.attrs {
		writeAttr(w, a.Name, a.Value)
	}
	if len(e.styles) > 0 {
		parts := make([]string, len(e.styles))
		for i, s := range e.styles {
			parts[i] = s.Name + ":" + s.Value
		}
		writeAttr(w, "style", strings.Join(parts, ";"))
	}

	if e.Text == "" && len(e.Children) == 0 {
		_, err := w.WriteString("/>")
		return err
	}
	w.WriteString(">")
	if e.Text != "" {
		if err := xml.EscapeText(w, []byte(e.Text)); err != nil {
			return err
		}
	}
	for _, c := range e.Children {
		if err := c.write(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "</%s>", e.Tag)
	return err
}

func writeAttr(w *bufio.Writer, name, value string) {
	w.WriteString(" " + name + `="`)
	_ = xml.EscapeText(w, []byte(value))
	w.WriteString(`"`)
}

func lookup(list []Attr, name string) (string, bool) {
	for _, a := range list {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func upsert(list []Attr, name, value string) []Attr {
	for i := range list {
		if list[i].Name == name {
			list[i].Value = value
			return list
		}
	}
	return append(list, Attr{Name: name, Value: value})
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func newSVG(width, height float64) *Element {
	return NewElement("svg").
		SetAttr("xmlns", svgNS).
		SetAttr("xmlns:xlink", xlinkNS).
		SetNum("width", width).
		SetNum("height", height)
}

func line(x1, y1, x2, y2 float64) *Element {
	return NewElement("line").
		SetNum("x1", x1).
		SetNum("y1", y1).
		SetNum("x2", x2).
		SetNum("y2", y2)
}

func text(x, y float64, s string) *Element {
	el := NewElement("text").SetNum("x", x).SetNum("y", y)
	el.Text = s
	return el
}
