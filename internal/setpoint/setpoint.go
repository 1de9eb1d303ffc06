package setpoint

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Setpoint is one knee of the fan control curve: at Temperature degrees
// Celsius the fans should run at Duty percent.
type Setpoint struct {
	Temperature int `json:"temperature"`
	Duty        int `json:"duty"`
}

// Curve is a non-empty list of setpoints, sorted ascending by temperature.
type Curve struct {
	points []Setpoint
}

// Parse builds a curve from "temperature:duty" tokens. The whole parse fails
// on the first malformed token, a partial curve is never returned.
func Parse(tokens []string) (Curve, error) {
	var points []Setpoint

	for _, token := range tokens {
		point, err := parseToken(token)
		if err != nil {
			return Curve{}, err
		}
		points = append(points, point)
	}

	if len(points) == 0 {
		return Curve{}, fmt.Errorf("no valid setpoints provided")
	}

	// equal temperatures keep their input order
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Temperature < points[j].Temperature
	})

	// collapse duplicate temperatures to the first-encountered duty, so
	// interpolation never sees a zero-width segment
	deduped := points[:1]
	for _, point := range points[1:] {
		if point.Temperature == deduped[len(deduped)-1].Temperature {
			continue
		}
		deduped = append(deduped, point)
	}

	return Curve{points: deduped}, nil
}

func parseToken(token string) (Setpoint, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 2 {
		return Setpoint{}, fmt.Errorf("invalid setpoint '%s', expected format TEMP:DUTY", token)
	}

	temperature, err := strconv.Atoi(parts[0])
	if err != nil || temperature <= 0 {
		return Setpoint{}, fmt.Errorf("invalid setpoint '%s', temperature must be a positive integer", token)
	}

	duty, err := strconv.Atoi(parts[1])
	if err != nil || duty < 0 || duty > 100 {
		return Setpoint{}, fmt.Errorf("invalid setpoint '%s', duty must be in 0-100%%", token)
	}

	return Setpoint{Temperature: temperature, Duty: duty}, nil
}

// DutyFor returns the target fan duty in percent for the given temperature
// in Celsius. Temperatures outside the curve clamp to the first/last duty,
// temperatures between setpoints interpolate linearly.
func (c Curve) DutyFor(temperature int) int {
	points := c.points
	if len(points) == 0 {
		return 0
	}

	if temperature <= points[0].Temperature {
		return points[0].Duty
	}
	if temperature >= points[len(points)-1].Temperature {
		return points[len(points)-1].Duty
	}

	for i := 0; i < len(points)-1; i++ {
		lo := points[i]
		hi := points[i+1]
		if temperature >= lo.Temperature && temperature <= hi.Temperature {
			return lo.Duty + (hi.Duty-lo.Duty)*(temperature-lo.Temperature)/(hi.Temperature-lo.Temperature)
		}
	}

	return points[0].Duty
}

// Points returns the sorted setpoints of the curve.
func (c Curve) Points() []Setpoint {
	return c.points
}

func (c Curve) String() string {
	rendered := make([]string, 0, len(c.points))
	for _, point := range c.points {
		rendered = append(rendered, fmt.Sprintf("%d:%d%%", point.Temperature, point.Duty))
	}
	return strings.Join(rendered, " ")
}
