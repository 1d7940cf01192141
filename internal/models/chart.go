package models

// PieChartData contiene los datos formateados para un gráfico de torta
type PieChartData struct {
	Labels   []string  `json:"labels"`   // Etiquetas (sectores)
	Values   []float64 `json:"values"`   // Valores (suma de precios)
	Colors   []string  `json:"colors"`   // Colores para cada segmento
	Currency string    `json:"currency"` // Moneda (USD)
}
