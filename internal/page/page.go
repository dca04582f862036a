// Package page writes the rendered document as a standalone HTML page.
package page

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/drewconway/shades-of-time/internal/charts"
	"github.com/drewconway/shades-of-time/internal/interact"
	"github.com/microcosm-cc/bluemonday"
)

const title = "The Shades of TIME"

//go:embed assets/page.html.tmpl
var pageTemplate string

//go:embed assets/shades.js
var script string

var tmpl = template.Must(template.New("page").Parse(pageTemplate))

// DefaultNarrative is the text panel copy of the published page.
var DefaultNarrative = []template.HTML{
	`Given a new data set one is often left wondering, "What can I ask of this data?" I was faced with a similar dilemma when I downloaded the <a href="http://www.reddit.com/r/datasets/comments/s0fld/all_time_magazine_covers_march_1923_to_march_2012/" target="_blank">corpus of TIME Magazine covers, from 1923 to 2012.</a>`,
	`What I came up with was: "Have the faces of those on the cover become more diverse over time?" To address this question I chose to answer something more specific: Have the color values of skin tones in faces on the covers changed over time?`,
	`<strong>I developed the Shades of TIME tool at the right to explore the answer.</strong>`,
	`The first panel is a horizontal histogram of cover chronology, where each cell represents the dominant skin tone from each face detected on a given TIME Magazine cover. The number of cells in each row corresponds to the number of faces detected.`,
	`If you place the cursor over a cell it will highlight, and its corresponding point in the scatter plot below will highlight as well. This plot is also ordered chronologically, but the vertical axis is the mean color value of the skin tone; ordered from lightest to darkest.`,
	`Finally, if you click on a cell, the cover will appear in the right panel with the detected face highlighted. All pure white cells correspond to detected faces for which no skin tone colors were found.`,
	`<strong>Enjoy exploring the data!</strong>`,
}

var narrativePolicy = bluemonday.UGCPolicy().AddTargetBlankToFullyQualifiedLinks(true)

// SanitizeNarrative turns user supplied paragraphs into safe HTML.
func SanitizeNarrative(paragraphs []string) []template.HTML {
	out := make([]template.HTML, 0, len(paragraphs))
	for _, p := range paragraphs {
		clean := strings.TrimSpace(narrativePolicy.Sanitize(p))
		if clean == "" {
			continue
		}
		out = append(out, template.HTML(clean))
	}
	return out
}

type pageData struct {
	Title       string
	Unavailable string
	Mounts      map[string]template.HTML
	Narrative   []template.HTML
	Table       interact.ClientTable
	Script      template.JS
}

// Write renders doc with the interaction wiring from ctl. The narrative comes
// from the document layout when it sets one, otherwise DefaultNarrative.
func Write(w io.Writer, doc *charts.Document, ctl *interact.Controller) error {
	narrative := DefaultNarrative
	if len(doc.Layout.Narrative) > 0 {
		narrative = SanitizeNarrative(doc.Layout.Narrative)
	}

	mounts := make(map[string]template.HTML, 4)
	for _, p := range doc.Panels() {
		mounts[p.Kind.MountID()] = trusted(p.Root)
	}

	data := pageData{
		Title:     title,
		Mounts:    mounts,
		Narrative: narrative,
		Table:     ctl.ClientTable(),
		Script:    template.JS(script),
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("writing page: %w", err)
	}
	return nil
}

// WriteUnavailable renders the failure page shown when the dataset could not
// be loaded.
func WriteUnavailable(w io.Writer, cause error) error {
	data := pageData{Title: title, Unavailable: "The dataset could not be loaded."}
	if cause != nil {
		data.Unavailable = cause.Error()
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("writing unavailable page: %w", err)
	}
	return nil
}

// trusted marks serialised SVG as safe; Element.WriteSVG escapes every text
// node and attribute value.
func trusted(el *charts.Element) template.HTML {
	return template.HTML(el.String())
}
