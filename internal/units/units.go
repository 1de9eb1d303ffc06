package units

import (
	"fmt"
	"strings"
)

// TempUnit is the unit used to *display* temperatures. The control law and
// everything else internal always operates on raw Celsius readings.
type TempUnit rune

const (
	Celsius    TempUnit = 'C'
	Fahrenheit TempUnit = 'F'
	Kelvin     TempUnit = 'K'
)

func ParseTempUnit(s string) (TempUnit, error) {
	switch strings.ToUpper(s) {
	case "C":
		return Celsius, nil
	case "F":
		return Fahrenheit, nil
	case "K":
		return Kelvin, nil
	default:
		return 0, fmt.Errorf("invalid temperature unit '%s', must be one of: C, F, K", s)
	}
}

// Convert converts a Celsius reading into the display unit.
func (u TempUnit) Convert(celsius int) float64 {
	switch u {
	case Fahrenheit:
		return float64(celsius)*9.0/5.0 + 32.0
	case Kelvin:
		return float64(celsius) + 273.15
	default:
		return float64(celsius)
	}
}

func (u TempUnit) String() string {
	return string(u)
}
