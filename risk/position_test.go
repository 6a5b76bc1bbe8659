package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                 string
		maxRisk, entry, stop float64
		want                 float64
	}{
		{"long", 100, 65000, 64000, 0},
		{"fx", 100, 1.2000, 1.1900, 10000},
		{"stop above entry", 10, 1.0000, 1.0100, 1000},
		{"floored", 105, 3500, 3400, 1},
		{"zero distance", 100, 10, 10, 0},
		{"no risk budget", 0, 10, 9, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, PositionUnits(tt.maxRisk, tt.entry, tt.stop), 1.0)
		})
	}
}

func TestPlannedRisk(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 100.0, PlannedRisk(1, 3500, 3400), 1e-9)
	assert.InDelta(t, 100.0, PlannedRisk(-1, 3500, 3400), 1e-9)
}
