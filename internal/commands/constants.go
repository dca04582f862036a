package commands

const (
	// DefaultTerminalWidth is the fallback terminal width when detection fails.
	DefaultTerminalWidth = 80

	// DefaultTerminalHeight is the fallback terminal height when detection fails.
	DefaultTerminalHeight = 24

	// ChartWidthPadding is the horizontal padding subtracted from terminal width for chart rendering.
	ChartWidthPadding = 6

	// SidePanelWidth is the width of the selected-record panel beside the table.
	SidePanelWidth = 38

	// ChromeHeight is lines consumed by the status bar, help bar, table header and footer.
	ChromeHeight = 9

	// ChartBorderLines is the chart border overhead.
	ChartBorderLines = 2

	// MinTableRows is the minimum number of table rows to show.
	MinTableRows = 3

	// SwatchWidth is the number of blocks in the side panel colour swatch.
	SwatchWidth = 8
)
