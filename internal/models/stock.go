package models

// SectorNotAvailable es el sector que se asigna cuando el perfil de la empresa no trae clasificación
const SectorNotAvailable = "N/A"

// Stock representa una acción obtenida de la API de cotizaciones.
// Se usa también como tenencia (holding) dentro del portafolio
type Stock struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`  // Precio unitario actual, usado solo como peso
	Sector string  `json:"sector"` // Clasificación libre, "N/A" si no se conoce
}

// StockListStatus describe el estado de la última obtención de acciones
type StockListStatus struct {
	Loading       bool    `json:"loading"`
	LastError     string  `json:"last_error,omitempty"`
	LastFetchedAt *string `json:"last_fetched_at,omitempty"` // RFC3339
	Count         int     `json:"count"`
}
