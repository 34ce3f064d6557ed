package shifts

import (
	"testing"

	"github.com/opticbee/24X7HEALTHCARE/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from types.ShiftStatus
		to   types.ShiftStatus
		want bool
	}{
		{"scheduled to on-duty", types.ShiftScheduled, types.ShiftOnDuty, true},
		{"on-duty to completed", types.ShiftOnDuty, types.ShiftCompleted, true},
		{"skip to completed", types.ShiftScheduled, types.ShiftCompleted, false},
		{"reverse to scheduled", types.ShiftOnDuty, types.ShiftScheduled, false},
		{"reverse from completed", types.ShiftCompleted, types.ShiftOnDuty, false},
		{"completed is terminal", types.ShiftCompleted, types.ShiftScheduled, false},
		{"no-op scheduled", types.ShiftScheduled, types.ShiftScheduled, false},
		{"no-op on-duty", types.ShiftOnDuty, types.ShiftOnDuty, false},
		{"no-op completed", types.ShiftCompleted, types.ShiftCompleted, false},
		{"unknown source", "Paused", types.ShiftOnDuty, false},
		{"unknown target", types.ShiftScheduled, "Paused", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(types.ShiftScheduled))
	assert.True(t, ValidStatus(types.ShiftOnDuty))
	assert.True(t, ValidStatus(types.ShiftCompleted))
	assert.False(t, ValidStatus("scheduled"))
	assert.False(t, ValidStatus(""))
}
