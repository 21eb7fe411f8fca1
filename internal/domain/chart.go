package domain

// PieChart is the data handed to the charting library.
type PieChart struct {
	Labels []string `json:"labels"`
	Values []int64  `json:"values"`
	Colors []string `json:"colors"`
}

// NewPieChart builds one slice per language entry, in order.
// Colours cycle through ChartPalette. Returns nil for a nil analysis.
func NewPieChart(a *Analysis) *PieChart {
	if a == nil {
		return nil
	}

	chart := &PieChart{
		Labels: make([]string, 0, len(a.TopLanguages)),
		Values: make([]int64, 0, len(a.TopLanguages)),
		Colors: make([]string, 0, len(a.TopLanguages)),
	}
	for i, l := range a.TopLanguages {
		chart.Labels = append(chart.Labels, l.Lang)
		chart.Values = append(chart.Values, l.Bytes)
		chart.Colors = append(chart.Colors, ChartPalette[i%len(ChartPalette)])
	}
	return chart
}

// Total returns the sum of all slice values.
func (c *PieChart) Total() int64 {
	if c == nil {
		return 0
	}
	var total int64
	for _, v := range c.Values {
		total += v
	}
	return total
}

// Share returns slice i as a fraction of the total, or 0 when empty.
func (c *PieChart) Share(i int) float64 {
	total := c.Total()
	if total == 0 || i < 0 || i >= len(c.Values) {
		return 0
	}
	return float64(c.Values[i]) / float64(total)
}
