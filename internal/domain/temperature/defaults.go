package temperature

import "github.com/shopspring/decimal"

// DefaultMeter medidor que toda instalación nueva trae configurado.
type DefaultMeter struct {
	Name      string
	MeterCode string
	MinTemp   decimal.Decimal
	MaxTemp   decimal.Decimal
}

// DefaultMeters los cuatro equipos de mantenimiento en caliente de la cocina.
// La migración 00002_default_meters.sql inserta los mismos valores.
func DefaultMeters() []DefaultMeter {
	return []DefaultMeter{
		{Name: "Medidor 1", MeterCode: "medidor-1", MinTemp: decimal.NewFromInt(60), MaxTemp: decimal.NewFromInt(75)},
		{Name: "Medidor 2", MeterCode: "medidor-2", MinTemp: decimal.NewFromInt(58), MaxTemp: decimal.NewFromInt(74)},
		{Name: "Medidor 3", MeterCode: "medidor-3", MinTemp: decimal.NewFromInt(59), MaxTemp: decimal.NewFromInt(73)},
		{Name: "Medidor 4", MeterCode: "medidor-4", MinTemp: decimal.NewFromInt(60), MaxTemp: decimal.NewFromInt(76)},
	}
}
