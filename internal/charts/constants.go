package charts

const (
	// ChartHeightRatio determines chart height as width/ChartHeightRatio.
	ChartHeightRatio = 8

	// MinChartHeight is the floor for timeseries chart height.
	MinChartHeight = 8

	// MinChartWidth is the floor for terminal chart width.
	MinChartWidth = 20

	// DefaultTerminalWidth is used when the terminal size cannot be read.
	DefaultTerminalWidth = 80

	// ChartWidthPadding is subtracted from the terminal width for borders.
	ChartWidthPadding = 6
)
