package charts

import (
	"strconv"

	"github.com/drewconway/shades-of-time/internal/config"
	"github.com/drewconway/shades-of-time/internal/dataset"
	"github.com/drewconway/shades-of-time/internal/scale"
	"github.com/drewconway/shades-of-time/internal/ticks"
)

func decorateHistogram(root *Element, y scale.Time, d dataset.Domains, l config.Layout) {
	left := l.Margin - l.AxisInset

	for _, dec := range ticks.Decades(d.Date.From, d.Date.To) {
		at := y.Map(dec)
		root.Append(line(left, at, l.ChartWidth, at).
			SetAttr("class", "decades").
			SetStyle("stroke", "black").
			SetStyle("stroke-width", "2").
			SetStyle("stroke-dasharray", "5 2"))
		root.Append(text(l.ChartWidth-l.LabelGutter, at-5, strconv.Itoa(dec.Year())+"'s").
			SetAttr("class", "decades"))
	}

	for _, yr := range ticks.YearsWithoutDecades(d.Date.From, d.Date.To) {
		at := y.Map(yr)
		root.Append(line(left, at, l.ChartWidth, at).
			SetAttr("class", "years").
			SetStyle("stroke", "grey").
			SetStyle("stroke-width", "1").
			SetStyle("stroke-dasharray", "2 5"))
		root.Append(text(l.ChartWidth-l.LabelGutter/2, at-5, strconv.Itoa(yr.Year())).
			SetAttr("class", "years"))
	}
}

func decorateScatter(root *Element, x scale.Time, d dataset.Domains, l config.Layout) {
	width := l.ScatterWidth()
	axisY := l.ScatterHeight - l.AxisInset

	root.Append(line(1, 1, width, 1).
		SetStyle("stroke", "black").
		SetStyle("stroke-width", "2"))
	root.Append(line(l.AxisInset, axisY, width, axisY).
		SetAttr("class", "xaxis").
		SetStyle("stroke", "black").
		SetStyle("stroke-width", "1"))

	decades := ticks.Decades(d.Date.From, d.Date.To)
	for _, dec := range decades {
		at := x.Map(dec)
		root.Append(line(at, axisY, at, l.ScatterHeight-15).
			SetAttr("class", "decade_marks").
			SetStyle("stroke", "black").
			SetStyle("stroke-width", "2").
			SetStyle("stroke-dasharray", "5 2"))
	}
	for _, yr := range ticks.YearsWithoutDecades(d.Date.From, d.Date.To) {
		at := x.Map(yr)
		root.Append(line(at, axisY, at, l.ScatterHeight-10).
			SetAttr("class", "year_marks").
			SetStyle("stroke", "grey").
			SetStyle("stroke-width", "2").
			SetStyle("stroke-dasharray", "3 5"))
	}
	for _, dec := range decades {
		root.Append(text(x.Map(dec), l.ScatterHeight+8, strconv.Itoa(dec.Year())).
			SetAttr("class", "years").
			SetStyle("text-anchor", "middle").
			SetStyle("font-size", "10px").
			SetStyle("stroke", "black"))
	}
}
