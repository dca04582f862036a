package charts

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/drewconway/shades-of-time/internal/dataset"
)

// DecadeBarchart draws one horizontal bar per decade, sized by face count.
func DecadeBarchart(counts []dataset.DecadeCount, width int) string {
	barData := make([]barchart.BarData, 0, len(counts))
	for i, c := range counts {
		label := fmt.Sprintf("%d's (%d)", c.Decade, c.Faces)
		barData = append(barData, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: label, Value: float64(c.Faces), Style: SeriesStyle(i)},
			},
		})
	}

	bc := barchart.New(width, max(len(barData)*2, 1), barchart.WithDataSet(barData), barchart.WithHorizontalBars())
	bc.Draw()

	return bc.View()
}
