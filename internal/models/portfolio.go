package models

import "time"

// PortfolioEntry es una tenencia agregada al portafolio.
// El ID solo distingue entradas repetidas del mismo símbolo, no deduplica
type PortfolioEntry struct {
	ID      string    `json:"id"`
	Stock   Stock     `json:"stock"`
	Label   string    `json:"label"` // "AAPL - $150.00 - Technology"
	AddedAt time.Time `json:"added_at"`
}

// SectorWeight es el peso de un sector dentro del portafolio
type SectorWeight struct {
	Sector string  `json:"sector"`
	Value  float64 `json:"value"`  // Suma de precios del sector
	Weight float64 `json:"weight"` // Porcentaje del total (0-100)
}

// PortfolioSnapshot es la vista derivada del portafolio que se recalcula en cada cambio
type PortfolioSnapshot struct {
	Entries        []PortfolioEntry   `json:"entries"`
	TotalValue     float64            `json:"total_value"`
	SectorWeights  map[string]float64 `json:"sector_weights"`
	Distribution   []SectorWeight     `json:"distribution"`
	DiversityScore float64            `json:"diversity_score"`
	ScoreDisplay   string             `json:"score_display"` // Puntaje con dos decimales
	ChartData      PieChartData       `json:"chart_data"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// DiversityResult es la respuesta reducida con el puntaje de diversificación
type DiversityResult struct {
	Score         float64            `json:"score"`
	ScoreDisplay  string             `json:"score_display"`
	TotalValue    float64            `json:"total_value"`
	SectorWeights map[string]float64 `json:"sector_weights"`
}
