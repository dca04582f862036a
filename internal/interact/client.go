package interact

import (
	"encoding/json"

	"github.com/drewconway/shades-of-time/internal/config"
)

// ClientLink is the browser-side view of one link.
type ClientLink struct {
	Cell  string `json:"cell"`
	Point string `json:"point"`
	Hex   string `json:"hex"`
	Cover string `json:"cover"`
}

// ClientTable is embedded in the page so the browser script can apply the
// same mutations as Controller by direct lookup.
type ClientTable struct {
	Cover  string             `json:"cover"`
	Styles config.Interaction `json:"styles"`
	Links  []ClientLink       `json:"links"`
}

// ClientTable exports the link table with element handles as DOM ids.
func (c *Controller) ClientTable() ClientTable {
	links := make([]ClientLink, len(c.doc.Links))
	for i, l := range c.doc.Links {
		links[i] = ClientLink{
			Cell:  string(l.Cell.Handle),
			Point: string(l.Point.Handle),
			Hex:   l.HexColor,
			Cover: l.CoverPath,
		}
	}
	return ClientTable{
		Cover:  string(c.doc.CoverImage.Handle),
		Styles: c.styles,
		Links:  links,
	}
}

// JSON encodes the table for embedding in a script element.
func (t ClientTable) JSON() ([]byte, error) {
	return json.Marshal(t)
}
