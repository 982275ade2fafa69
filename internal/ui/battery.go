package ui

import "fmt"

// Battery voltage thresholds for the sensor's cell, in volts.
const (
	batteryVeryLow = 3.30
	batteryLow     = 3.70
	batteryMedium  = 3.85
)

// BatteryLevel classifies the sensor battery from its last voltage sample.
type BatteryLevel int

const (
	BatteryCritical BatteryLevel = iota
	BatteryLow
	BatteryMedium
	BatteryHigh
)

// ClassifyBattery maps a voltage sample to its level.
func ClassifyBattery(voltage float64) BatteryLevel {
	switch {
	case voltage <= batteryVeryLow:
		return BatteryCritical
	case voltage <= batteryLow:
		return BatteryLow
	case voltage <= batteryMedium:
		return BatteryMedium
	default:
		return BatteryHigh
	}
}

// Label returns the display text for a classified voltage, e.g.
// "HIGH (4.05 V)".
func (l BatteryLevel) Label(voltage float64) string {
	switch l {
	case BatteryCritical:
		return fmt.Sprintf("CRITICAL! %.2f V", voltage)
	case BatteryLow:
		return fmt.Sprintf("LOW %.2f V", voltage)
	case BatteryMedium:
		return fmt.Sprintf("MEDIUM %.2f V", voltage)
	default:
		return fmt.Sprintf("HIGH (%.2f V)", voltage)
	}
}
