// Package interact applies hover and click behaviour to a rendered document.
//
// The controller keeps no selection state of its own. Every operation writes
// attributes on the linked elements, so the tree is the only record of what
// is highlighted.
package interact

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/drewconway/shades-of-time/internal/charts"
	"github.com/drewconway/shades-of-time/internal/config"
)

var ErrUnknownIndex = errors.New("unknown sequence index")

// Controller mutates one document. It is not safe for concurrent use.
type Controller struct {
	doc    *charts.Document
	styles config.Interaction
}

// New returns a controller for doc using the given interaction styles.
func New(doc *charts.Document, styles config.Interaction) *Controller {
	return &Controller{doc: doc, styles: styles}
}

func (c *Controller) link(i int) (charts.Link, error) {
	l, ok := c.doc.Links.Get(i)
	if !ok {
		return charts.Link{}, fmt.Errorf("%w: %d", ErrUnknownIndex, i)
	}
	return l, nil
}

// HoverEnter highlights the histogram cell and the scatter point of record i.
func (c *Controller) HoverEnter(i int) error {
	l, err := c.link(i)
	if err != nil {
		return err
	}
	l.Cell.SetStyle("stroke", c.styles.HighlightColor)
	l.Point.SetAttr("r", num(c.styles.HighlightRadius)).
		SetStyle("fill", c.styles.HighlightColor).
		SetStyle("opacity", num(c.styles.HighlightOpacity))
	return nil
}

// HoverExit restores record i to its resting style.
func (c *Controller) HoverExit(i int) error {
	l, err := c.link(i)
	if err != nil {
		return err
	}
	l.Cell.SetStyle("stroke", c.styles.NeutralStroke)
	l.Point.SetAttr("r", num(c.styles.PointRadius)).
		SetStyle("fill", l.HexColor).
		SetStyle("opacity", num(c.styles.PointOpacity))
	return nil
}

// Click shows the cover of record i in the cover panel.
func (c *Controller) Click(i int) error {
	l, err := c.link(i)
	if err != nil {
		return err
	}
	c.doc.CoverImage.SetAttr("xlink:href", l.CoverPath)
	return nil
}

// CoverSource returns the image currently shown in the cover panel.
func (c *Controller) CoverSource() string {
	href, _ := c.doc.CoverImage.Attr("xlink:href")
	return href
}

// Highlighted reports whether record i is currently drawn highlighted.
func (c *Controller) Highlighted(i int) bool {
	l, ok := c.doc.Links.Get(i)
	if !ok {
		return false
	}
	stroke, _ := l.Cell.Style("stroke")
	return stroke == c.styles.HighlightColor
}

// Move transfers the hover from record from to record to, as a pointer
// leaving one element and entering another. A negative from means nothing
// was hovered.
func (c *Controller) Move(from, to int) error {
	if from >= 0 && from != to {
		if err := c.HoverExit(from); err != nil {
			return err
		}
	}
	return c.HoverEnter(to)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
