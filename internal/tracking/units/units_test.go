package units_test

import (
	"testing"

	"github.com/fittrackhq/fittrack/internal/tracking/units"

	"github.com/stretchr/testify/assert"
)

func TestWeightConversionRoundTrip(t *testing.T) {
	assert.InDelta(t, 220.462, units.KgToLb(100), 0.001)
	assert.InDelta(t, 100, units.LbToKg(units.KgToLb(100)), 1e-9)
}

func TestDistanceConversionRoundTrip(t *testing.T) {
	assert.InDelta(t, 2.54, units.InToCm(1), 1e-9)
	assert.InDelta(t, 85, units.InToCm(units.CmToIn(85)), 1e-9)
}
