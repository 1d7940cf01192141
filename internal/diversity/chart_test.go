package diversity

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgusMolinaCode/Diversity_Api.git/internal/models"
)

func TestBuildChartData_Sample(t *testing.T) {
	chart := BuildChartData(Score(samplePortfolio()))

	assert.Equal(t, []string{"Tech", "Energy"}, chart.Labels)
	assert.Equal(t, []float64{400, 100}, chart.Values)
	assert.Equal(t, []string{"#0088FE", "#00C49F"}, chart.Colors)
	assert.Equal(t, "USD", chart.Currency)
}

func TestBuildChartData_Empty(t *testing.T) {
	chart := BuildChartData(Score(nil))

	assert.NotNil(t, chart.Labels)
	assert.Empty(t, chart.Labels)
	assert.Empty(t, chart.Values)
	assert.Empty(t, chart.Colors)
}

func TestBuildChartData_ColorsCycle(t *testing.T) {
	var portfolio []models.Stock
	for i := 0; i < len(ChartColors)+2; i++ {
		portfolio = append(portfolio, models.Stock{Symbol: fmt.Sprintf("S%d", i), Price: 1, Sector: fmt.Sprintf("Sector %d", i)})
	}

	chart := BuildChartData(Score(portfolio))

	require.Len(t, chart.Colors, len(ChartColors)+2)
	assert.Equal(t, ChartColors[0], chart.Colors[len(ChartColors)])
	assert.Equal(t, ChartColors[1], chart.Colors[len(ChartColors)+1])
}

func TestBuildDistribution(t *testing.T) {
	distribution := BuildDistribution(Score(samplePortfolio()))

	require.Len(t, distribution, 2)
	assert.Equal(t, "Tech", distribution[0].Sector)
	assert.InDelta(t, 80.0, distribution[0].Weight, 1e-9)
	assert.Equal(t, "Energy", distribution[1].Sector)
	assert.InDelta(t, 20.0, distribution[1].Weight, 1e-9)
}

func TestBuildDistribution_ZeroTotal(t *testing.T) {
	distribution := BuildDistribution(Score([]models.Stock{
		{Symbol: "A", Price: 0, Sector: "Tech"},
	}))

	require.Len(t, distribution, 1)
	assert.Equal(t, 0.0, distribution[0].Weight)
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "32.00", FormatScore(Score(samplePortfolio()).Score))
	assert.Equal(t, "0.00", FormatScore(0))
	assert.Equal(t, "66.67", FormatScore(100*(1-1.0/3)))
}

func TestFormatLabel(t *testing.T) {
	label := FormatLabel(models.Stock{Symbol: "AAPL", Price: 150, Sector: "Technology"})
	assert.Equal(t, "AAPL - $150.00 - Technology", label)

	label = FormatLabel(models.Stock{Symbol: "XYZ", Price: 1.005, Sector: models.SectorNotAvailable})
	assert.Equal(t, "XYZ - $1.01 - N/A", label)
}
