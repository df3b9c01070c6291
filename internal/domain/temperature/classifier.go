// Package temperature clasifica lecturas contra la banda segura de un medidor.
package temperature

import (
	"github.com/shopspring/decimal"
	"github.com/univesp-PI-III/merenda-certa/internal/domain"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
)

// LiveState semáforo de presentación sobre el estado binario SAFE/ALERT.
type LiveState string

// Estados del semáforo.
const (
	LiveRed    LiveState = "red"
	LiveYellow LiveState = "yellow"
	LiveGreen  LiveState = "green"
)

// bandFraction fracción de la banda que se considera zona de atención en cada extremo.
var bandFraction = decimal.RequireFromString("0.2")

// ValidateBand exige minTemp < maxTemp.
func ValidateBand(minTemp, maxTemp decimal.Decimal) error {
	if !minTemp.LessThan(maxTemp) {
		return domain.ErrInvalidBand
	}
	return nil
}

// Classify devuelve SAFE si minTemp ≤ temperatureC ≤ maxTemp (inclusivo en ambos extremos).
func Classify(temperatureC, minTemp, maxTemp decimal.Decimal) entity.ReadingStatus {
	if temperatureC.LessThan(minTemp) || temperatureC.GreaterThan(maxTemp) {
		return entity.ReadingAlert
	}
	return entity.ReadingSafe
}

// Live calcula el semáforo de la última lectura.
//
// band = (maxTemp − minTemp) × 0.2; verde solo estrictamente dentro de
// (minTemp + band, maxTemp − band); los bordes verdes son amarillos.
// Sin lectura o fuera de [minTemp, maxTemp] es rojo.
func Live(temperatureC *decimal.Decimal, minTemp, maxTemp decimal.Decimal) LiveState {
	if temperatureC == nil || Classify(*temperatureC, minTemp, maxTemp) == entity.ReadingAlert {
		return LiveRed
	}
	band := maxTemp.Sub(minTemp).Mul(bandFraction)
	lowerGreen := minTemp.Add(band)
	upperGreen := maxTemp.Sub(band)
	if temperatureC.GreaterThan(lowerGreen) && temperatureC.LessThan(upperGreen) {
		return LiveGreen
	}
	return LiveYellow
}
