package setpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortsByTemperature(t *testing.T) {
	// GIVEN
	tokens := []string{"80:90", "50:30", "70:60"}

	// WHEN
	curve, err := Parse(tokens)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []Setpoint{
		{Temperature: 50, Duty: 30},
		{Temperature: 70, Duty: 60},
		{Temperature: 80, Duty: 90},
	}, curve.Points())
}

func TestParseIsOrderIndependent(t *testing.T) {
	// GIVEN
	shuffled := []string{"80:90", "50:30", "70:60"}
	sorted := []string{"50:30", "70:60", "80:90"}

	// WHEN
	curveA, errA := Parse(shuffled)
	curveB, errB := Parse(sorted)

	// THEN
	assert.NoError(t, errA)
	assert.NoError(t, errB)
	assert.Equal(t, curveB.Points(), curveA.Points())
	for temperature := 0; temperature <= 120; temperature++ {
		assert.Equal(t, curveB.DutyFor(temperature), curveA.DutyFor(temperature))
	}
}

func TestParseRejectsZeroTemperature(t *testing.T) {
	// WHEN
	_, err := Parse([]string{"0:50"})

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "0:50")
}

func TestParseRejectsDutyOutOfRange(t *testing.T) {
	// WHEN
	_, err := Parse([]string{"50:150"})

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "50:150")
}

func TestParseRejectsMalformedTokens(t *testing.T) {
	malformed := []string{"50", "50:60:70", "abc:50", "50:abc", ":", ""}
	for _, token := range malformed {
		_, err := Parse([]string{token})
		assert.Error(t, err, "token %q should be rejected", token)
	}
}

func TestParseRejectsEmptyInput(t *testing.T) {
	// WHEN
	_, err := Parse(nil)

	// THEN
	assert.Error(t, err)
}

func TestParseFailsWholeCurveOnOneBadToken(t *testing.T) {
	// GIVEN
	tokens := []string{"50:30", "0:60", "80:90"}

	// WHEN
	curve, err := Parse(tokens)

	// THEN
	assert.Error(t, err)
	assert.Empty(t, curve.Points())
}

func TestDutyForClampsAndInterpolates(t *testing.T) {
	// GIVEN
	curve, err := Parse([]string{"50:30", "70:60", "80:90"})
	assert.NoError(t, err)

	// THEN
	assert.Equal(t, 30, curve.DutyFor(40))
	assert.Equal(t, 30, curve.DutyFor(50))
	assert.Equal(t, 45, curve.DutyFor(60))
	assert.Equal(t, 60, curve.DutyFor(70))
	assert.Equal(t, 75, curve.DutyFor(75))
	assert.Equal(t, 90, curve.DutyFor(80))
	assert.Equal(t, 90, curve.DutyFor(90))
}

func TestDutyForIsMonotonicForMonotonicCurves(t *testing.T) {
	// GIVEN
	curve, err := Parse([]string{"40:20", "55:35", "70:60", "85:100"})
	assert.NoError(t, err)

	// THEN
	previous := curve.DutyFor(0)
	for temperature := 1; temperature <= 120; temperature++ {
		duty := curve.DutyFor(temperature)
		assert.GreaterOrEqual(t, duty, previous, "duty regressed at %d°C", temperature)
		assert.GreaterOrEqual(t, duty, 0)
		assert.LessOrEqual(t, duty, 100)
		previous = duty
	}
}

func TestDuplicateTemperaturesCollapseToFirst(t *testing.T) {
	// GIVEN
	curve, err := Parse([]string{"50:30", "60:40", "60:80", "70:90"})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []Setpoint{
		{Temperature: 50, Duty: 30},
		{Temperature: 60, Duty: 40},
		{Temperature: 70, Duty: 90},
	}, curve.Points())
	assert.Equal(t, 40, curve.DutyFor(60))
}

func TestSingleSetpointCurve(t *testing.T) {
	// GIVEN
	curve, err := Parse([]string{"60:50"})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 50, curve.DutyFor(20))
	assert.Equal(t, 50, curve.DutyFor(60))
	assert.Equal(t, 50, curve.DutyFor(110))
}

func TestCurveString(t *testing.T) {
	// GIVEN
	curve, err := Parse([]string{"80:90", "50:30", "70:60"})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "50:30% 70:60% 80:90%", curve.String())
}
