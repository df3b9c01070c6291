package dto

import "github.com/shopspring/decimal"

// InventoryDashboardDTO respuesta de GET /api/dashboard.
type InventoryDashboardDTO struct {
	TotalProducts  int `json:"totalProducts"`
	LowStock       int `json:"lowStock"` // currentStock ≤ minStock
	TotalMovements int `json:"totalMovements"`
	TempAlerts     int `json:"tempAlerts"`
}

// TemperatureDashboardDTO respuesta de GET /api/temperature-dashboard.
type TemperatureDashboardDTO struct {
	TotalReadings    int             `json:"totalReadings"`
	TotalAlerts      int             `json:"totalAlerts"`
	MetersWithAlerts int             `json:"metersWithAlerts"`
	AlertRate        decimal.Decimal `json:"alertRate"` // porcentaje, un decimal
	TopMeters        []MeterAlertDTO `json:"topMeters"`
}

// MeterAlertDTO medidor con más alertas.
type MeterAlertDTO struct {
	MeterID   int64  `json:"meterId"`
	MeterName string `json:"meterName"`
	MeterCode string `json:"meterCode"`
	Alerts    int    `json:"alerts"`
}
