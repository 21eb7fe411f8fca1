package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// TestNewPieChart_OneSlicePerLanguage tests that every language entry becomes a slice.
// Follows AAA (Arrange, Act, Assert) pattern.
func TestNewPieChart_OneSlicePerLanguage(t *testing.T) {
	// Arrange
	analysis := &Analysis{
		Login:       "octocat",
		PublicRepos: 8,
		TopLanguages: []LanguageBytes{
			{Lang: "Go", Bytes: 1200},
			{Lang: "Ruby", Bytes: 300},
			{Lang: "Shell", Bytes: 50},
		},
	}

	// Act
	chart := NewPieChart(analysis)

	// Assert
	want := &PieChart{
		Labels: []string{"Go", "Ruby", "Shell"},
		Values: []int64{1200, 300, 50},
		Colors: []string{"#FF6384", "#36A2EB", "#FFCE56"},
	}
	if diff := cmp.Diff(want, chart); diff != "" {
		t.Errorf("NewPieChart() mismatch (-want +got):\n%s", diff)
	}
}

// TestNewPieChart_PaletteWraps tests that colours cycle once the palette is exhausted.
func TestNewPieChart_PaletteWraps(t *testing.T) {
	langs := make([]LanguageBytes, 7)
	for i := range langs {
		langs[i] = LanguageBytes{Lang: string(rune('A' + i)), Bytes: int64(i + 1)}
	}

	chart := NewPieChart(&Analysis{TopLanguages: langs})

	assert.Len(t, chart.Colors, 7)
	assert.Equal(t, ChartPalette[0], chart.Colors[5])
	assert.Equal(t, ChartPalette[1], chart.Colors[6])
}

func TestNewPieChart_Nil(t *testing.T) {
	assert.Nil(t, NewPieChart(nil))
}

func TestNewPieChart_EmptyLanguages(t *testing.T) {
	chart := NewPieChart(&Analysis{Login: "ghost"})

	assert.NotNil(t, chart)
	assert.Empty(t, chart.Labels)
	assert.Zero(t, chart.Total())
	assert.Zero(t, chart.Share(0))
}

// TestPieChart_Share tests slice fractions against the total.
func TestPieChart_Share(t *testing.T) {
	chart := &PieChart{Values: []int64{3, 1}}

	assert.Equal(t, int64(4), chart.Total())
	assert.InDelta(t, 0.75, chart.Share(0), 1e-9)
	assert.InDelta(t, 0.25, chart.Share(1), 1e-9)
	assert.Zero(t, chart.Share(2))
	assert.Zero(t, chart.Share(-1))
}
