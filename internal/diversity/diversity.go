// Package diversity calcula los pesos por sector y el puntaje de diversificación
// de un portafolio. Todas las funciones son puras y no realizan I/O.
package diversity

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/AgusMolinaCode/Diversity_Api.git/internal/models"
)

// Result agrupa los valores derivados de un portafolio
type Result struct {
	SectorWeights map[string]float64
	Sectors       []string // Sectores en orden de primera aparición
	TotalValue    float64
	Score         float64
}

// AddHolding agrega una tenencia al final del portafolio.
// Devuelve un slice nuevo, nunca modifica el arreglo del llamador, y no deduplica
func AddHolding(portfolio []models.Stock, holding models.Stock) []models.Stock {
	next := make([]models.Stock, len(portfolio), len(portfolio)+1)
	copy(next, portfolio)
	return append(next, holding)
}

// ComputeSectorWeights suma los precios de las tenencias agrupando por sector.
// La comparación de sectores es exacta (sensible a mayúsculas) y no se valida el precio
func ComputeSectorWeights(portfolio []models.Stock) map[string]float64 {
	weights, _ := accumulate(portfolio)
	return weights
}

// ComputeDiversityScore calcula (1 - H) * 100, donde H es el índice de Herfindahl
// sobre la participación de cada sector en el valor total.
// Con totalValue en cero el puntaje es 0 y no se divide
func ComputeDiversityScore(sectorWeights map[string]float64, totalValue float64) float64 {
	if totalValue == 0 || len(sectorWeights) == 0 {
		return 0
	}

	// Orden fijo de sectores para que la suma en punto flotante sea determinista
	sectors := make([]string, 0, len(sectorWeights))
	for sector := range sectorWeights {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)

	shares := make([]float64, len(sectors))
	for i, sector := range sectors {
		shares[i] = sectorWeights[sector] / totalValue
	}

	herfindahl := floats.Dot(shares, shares)
	return (1 - herfindahl) * 100
}

// TotalValue devuelve la suma de precios de todo el portafolio
func TotalValue(portfolio []models.Stock) float64 {
	_, total := accumulate(portfolio)
	return total
}

// accumulate suma pesos por sector y total en una misma pasada secuencial.
// Con un solo sector el peso y el total son idénticos bit a bit
func accumulate(portfolio []models.Stock) (map[string]float64, float64) {
	weights := make(map[string]float64)
	var total float64
	for _, stock := range portfolio {
		weights[stock.Sector] += stock.Price
		total += stock.Price
	}
	return weights, total
}

// SectorOrder devuelve los sectores en el orden en que aparecen por primera vez
func SectorOrder(portfolio []models.Stock) []string {
	seen := make(map[string]bool)
	sectors := []string{}
	for _, stock := range portfolio {
		if seen[stock.Sector] {
			continue
		}
		seen[stock.Sector] = true
		sectors = append(sectors, stock.Sector)
	}
	return sectors
}

// Score calcula pesos, total y puntaje en una sola pasada.
// Un portafolio vacío tiene puntaje 0 y pesos vacíos
func Score(portfolio []models.Stock) Result {
	weights, total := accumulate(portfolio)

	return Result{
		SectorWeights: weights,
		Sectors:       SectorOrder(portfolio),
		TotalValue:    total,
		Score:         ComputeDiversityScore(weights, total),
	}
}
