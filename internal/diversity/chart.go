package diversity

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/AgusMolinaCode/Diversity_Api.git/internal/models"
)

// ChartColors es la paleta del gráfico de torta, se recorre de forma cíclica
var ChartColors = []string{
	"#0088FE", "#00C49F", "#FFBB28", "#FF8042", "#AA336A", "#9933FF",
	"#33CC33", "#FF6666", "#FF3399", "#66CCFF", "#FF99CC",
}

// BuildChartData arma los datos del gráfico con un segmento por sector,
// en el orden en que cada sector aparece por primera vez
func BuildChartData(result Result) models.PieChartData {
	chart := models.PieChartData{
		Labels:   []string{},
		Values:   []float64{},
		Colors:   []string{},
		Currency: "USD",
	}

	for i, sector := range result.Sectors {
		chart.Labels = append(chart.Labels, sector)
		chart.Values = append(chart.Values, result.SectorWeights[sector])
		chart.Colors = append(chart.Colors, ChartColors[i%len(ChartColors)])
	}

	return chart
}

// BuildDistribution calcula el porcentaje del total que representa cada sector
func BuildDistribution(result Result) []models.SectorWeight {
	distribution := make([]models.SectorWeight, 0, len(result.Sectors))
	for _, sector := range result.Sectors {
		value := result.SectorWeights[sector]

		var weight float64
		if result.TotalValue != 0 {
			weight = (value / result.TotalValue) * 100
		}

		distribution = append(distribution, models.SectorWeight{
			Sector: sector,
			Value:  value,
			Weight: weight,
		})
	}
	return distribution
}

// FormatScore devuelve el puntaje redondeado a dos decimales ("32.00")
func FormatScore(score float64) string {
	return decimal.NewFromFloat(score).StringFixed(2)
}

// FormatLabel arma la etiqueta de una tenencia: "AAPL - $150.00 - Technology"
func FormatLabel(stock models.Stock) string {
	return fmt.Sprintf("%s - $%s - %s", stock.Symbol, decimal.NewFromFloat(stock.Price).StringFixed(2), stock.Sector)
}
