package charts

import (
	"fmt"

	"github.com/drewconway/shades-of-time/internal/config"
	"github.com/drewconway/shades-of-time/internal/dataset"
	"github.com/drewconway/shades-of-time/internal/scale"
)

// Link pairs the two elements drawn for one record.
type Link struct {
	Cell      *Element
	Point     *Element
	HexColor  string
	CoverPath string
}

// Links is indexed by sequence index.
type Links []Link

// Get returns the link for sequence index i.
func (l Links) Get(i int) (Link, bool) {
	if i < 0 || i >= len(l) {
		return Link{}, false
	}
	return l[i], true
}

// Document is the rendered page content, one root per mount point.
type Document struct {
	Histogram  *Element
	Scatter    *Element
	Cover      *Element
	Text       *Element
	CoverImage *Element
	Links      Links
	Layout     config.Layout

	nextHandle int
}

func (d *Document) handle(el *Element) *Element {
	el.Handle = Handle(fmt.Sprintf("el-%d", d.nextHandle))
	d.nextHandle++
	return el
}

// Panels returns the panel roots in page order.
func (d *Document) Panels() []Panel {
	return []Panel{
		{Kind: PanelText, Root: d.Text},
		{Kind: PanelHistogram, Root: d.Histogram},
		{Kind: PanelCover, Root: d.Cover},
		{Kind: PanelScatter, Root: d.Scatter},
	}
}

// Render builds every panel from the dataset. It does not touch any live
// surface and returns identical trees for identical input.
func Render(ds *dataset.Dataset, layout config.Layout) (*Document, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, dataset.ErrEmpty
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	doc := &Document{Layout: layout, Links: make(Links, ds.Len())}
	domains := ds.Domains()

	doc.Text = renderTitle(layout)
	doc.Histogram = renderHistogram(doc, ds, domains, layout)
	doc.Cover, doc.CoverImage = renderCover(doc, layout)
	doc.Scatter = renderScatter(doc, ds, domains, layout)
	return doc, nil
}

func histogramScales(d dataset.Domains, l config.Layout) (scale.Linear, scale.Time) {
	x := scale.NewLinear(0, float64(d.FaceCount.Max), 0, l.ChartWidth-l.LabelGutter)
	y := scale.NewTime(d.Date.From, d.Date.To, l.Margin, l.ChartHeight-l.Margin).RangeRound()
	return x, y
}

func scatterScales(d dataset.Domains, l config.Layout) (scale.Time, scale.Linear) {
	x := scale.NewTime(d.Date.From, d.Date.To, l.Margin, l.ScatterWidth()-l.Margin).RangeRound()
	y := scale.NewLinear(d.Intensity.Min, d.Intensity.Max, l.CellSize, l.ScatterHeight-l.CellSize)
	return x, y
}

func renderHistogram(doc *Document, ds *dataset.Dataset, d dataset.Domains, l config.Layout) *Element {
	root := newSVG(l.ChartWidth, l.ChartHeight)
	x, y := histogramScales(d, l)

	root.Append(line(l.Margin-l.AxisInset, 0, l.Margin-l.AxisInset, l.ChartHeight).
		SetAttr("class", "yaxis").
		SetStyle("stroke", "black").
		SetStyle("stroke-width", "2"))
	decorateHistogram(root, y, d, l)

	for _, r := range ds.Records() {
		cell := doc.handle(NewElement("rect")).
			SetAttr("class", "tone").
			SetNum("x", x.Map(float64(r.FaceIndex+1))).
			SetNum("y", y.Map(r.Date)).
			SetNum("width", l.CellSize).
			SetNum("height", l.CellSize).
			SetStyle("fill", r.HexColor).
			SetStyle("stroke", l.Interaction.NeutralStroke).
			SetStyle("stroke-width", "1")
		root.Append(cell)
		doc.Links[r.SequenceIndex] = Link{
			Cell:      cell,
			HexColor:  r.HexColor,
			CoverPath: r.CoverImagePath,
		}
	}
	return root
}

func renderScatter(doc *Document, ds *dataset.Dataset, d dataset.Domains, l config.Layout) *Element {
	root := newSVG(l.ScatterWidth(), l.ScatterHeight+10)
	x, y := scatterScales(d, l)

	for _, p := range ds.Points() {
		point := doc.handle(NewElement("circle")).
			SetAttr("class", "color").
			SetNum("cx", x.Map(p.Date)).
			SetNum("cy", y.Map(p.MeanIntensity)).
			SetNum("r", l.Interaction.PointRadius).
			SetStyle("fill", p.HexColor).
			SetStyle("stroke", l.PointStroke).
			SetStyle("stroke-width", "1").
			SetStyle("opacity", formatNum(l.Interaction.PointOpacity))
		root.Append(point)
		doc.Links[p.SequenceIndex].Point = point
	}

	decorateScatter(root, x, d, l)
	return root
}

func renderCover(doc *Document, l config.Layout) (*Element, *Element) {
	root := newSVG(l.CoverWidth+l.Margin, l.CoverHeight+l.Margin)
	img := doc.handle(NewElement("image")).
		SetNum("x", l.Margin/2).
		SetNum("y", l.Margin/2).
		SetNum("width", l.CoverWidth).
		SetNum("height", l.CoverHeight).
		SetAttr("xlink:href", l.PlaceholderImage)
	root.Append(img)
	root.Append(line(1, 1, 1, l.CoverHeight+l.Margin).
		SetStyle("stroke", "black").
		SetStyle("stroke-width", "2"))
	return root, img
}

func renderTitle(l config.Layout) *Element {
	root := newSVG(200, 75)
	title := text(20, 20, "The Shades of").
		SetAttr("class", "title_copy").
		SetStyle("font-size", "24px")
	root.Append(title)
	root.Append(NewElement("image").
		SetNum("x", 25).
		SetNum("y", 30).
		SetNum("width", 150).
		SetNum("height", 48).
		SetAttr("xlink:href", l.LogoImage))
	return root
}
