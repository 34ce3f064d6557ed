package shifts

import (
	"testing"
	"time"

	"github.com/opticbee/24X7HEALTHCARE/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestShiftWindow_SlotBounds(t *testing.T) {
	tests := []struct {
		name      string
		slot      types.SlotLabel
		shiftDate string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "early slot",
			slot:      types.SlotEarly,
			shiftDate: "2024-05-01",
			wantStart: time.Date(2024, 5, 1, 6, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2024, 5, 1, 14, 0, 0, 0, time.Local),
		},
		{
			name:      "mid slot",
			slot:      types.SlotMid,
			shiftDate: "2024-05-01",
			wantStart: time.Date(2024, 5, 1, 14, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2024, 5, 1, 22, 0, 0, 0, time.Local),
		},
		{
			name:      "overnight slot ends next day",
			slot:      types.SlotOvernight,
			shiftDate: "2024-05-01",
			wantStart: time.Date(2024, 5, 1, 22, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2024, 5, 2, 6, 0, 0, 0, time.Local),
		},
		{
			name:      "overnight slot across month boundary",
			slot:      types.SlotOvernight,
			shiftDate: "2024-05-31",
			wantStart: time.Date(2024, 5, 31, 22, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2024, 6, 1, 6, 0, 0, 0, time.Local),
		},
		{
			name:      "overnight slot across year boundary",
			slot:      types.SlotOvernight,
			shiftDate: "2024-12-31",
			wantStart: time.Date(2024, 12, 31, 22, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2025, 1, 1, 6, 0, 0, 0, time.Local),
		},
		{
			name:      "overnight slot on leap day",
			slot:      types.SlotOvernight,
			shiftDate: "2024-02-29",
			wantStart: time.Date(2024, 2, 29, 22, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2024, 3, 1, 6, 0, 0, 0, time.Local),
		},
		{
			name:      "overnight slot end of february in a common year",
			slot:      types.SlotOvernight,
			shiftDate: "2023-02-28",
			wantStart: time.Date(2023, 2, 28, 22, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2023, 3, 1, 6, 0, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := ShiftWindow(tt.slot, tt.shiftDate)

			assert.NoError(t, err)
			assert.True(t, start.Equal(tt.wantStart), "start: got %v, want %v", start, tt.wantStart)
			assert.True(t, end.Equal(tt.wantEnd), "end: got %v, want %v", end, tt.wantEnd)
		})
	}
}

func TestShiftWindow_EndAlwaysAfterStart(t *testing.T) {
	for slot := range slotWindows {
		start, end, err := ShiftWindow(slot, "2024-05-01")
		assert.NoError(t, err)
		assert.True(t, end.After(start), "slot %s: end %v must be after start %v", slot, end, start)
	}
}

func TestShiftWindow_InvalidSlotLabel(t *testing.T) {
	for _, slot := range []types.SlotLabel{"", "night", "EARLY", "morning"} {
		_, _, err := ShiftWindow(slot, "2024-05-01")
		assert.Error(t, err)
		assert.ErrorIs(t, err, types.ErrInvalidSlotLabel)
	}
}

func TestShiftWindow_InvalidDate(t *testing.T) {
	for _, date := range []string{"", "01-05-2024", "2024/05/01", "2024-13-01", "tomorrow"} {
		_, _, err := ShiftWindow(types.SlotEarly, date)
		assert.Error(t, err, "date %q should be rejected", date)
	}
}

func TestValidSlot(t *testing.T) {
	assert.True(t, ValidSlot(types.SlotEarly))
	assert.True(t, ValidSlot(types.SlotMid))
	assert.True(t, ValidSlot(types.SlotOvernight))
	assert.False(t, ValidSlot("night"))
	assert.False(t, ValidSlot(""))
}
