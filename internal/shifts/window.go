package shifts

import (
	"fmt"
	"time"

	"github.com/opticbee/24X7HEALTHCARE/pkg/types"
)

// slotWindow describes the wall-clock bounds of a shift slot. Overnight
// slots end on the day after the one the shift nominally begins.
type slotWindow struct {
	startHour int
	endHour   int
	overnight bool
}

var slotWindows = map[types.SlotLabel]slotWindow{
	types.SlotEarly:     {startHour: 6, endHour: 14},
	types.SlotMid:       {startHour: 14, endHour: 22},
	types.SlotOvernight: {startHour: 22, endHour: 6, overnight: true},
}

// ValidSlot reports whether the label is one of the recognized shift slots
func ValidSlot(slot types.SlotLabel) bool {
	_, ok := slotWindows[slot]
	return ok
}

// ShiftWindow maps a slot label and a calendar date to the absolute start
// and end timestamps of that shift. The overnight slot ends on the next
// calendar day; AddDate carries month, year and leap-day rollover.
func ShiftWindow(slot types.SlotLabel, shiftDate string) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(types.ShiftDateLayout, shiftDate, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, types.NewValidationError(
			"invalid_shift_date",
			fmt.Sprintf("shift date must use the %s format: %q", types.ShiftDateLayout, shiftDate),
			map[string]interface{}{"shift_date": shiftDate},
		)
	}

	w, ok := slotWindows[slot]
	if !ok {
		return time.Time{}, time.Time{}, types.NewValidationError(
			types.ErrInvalidSlotLabel.Code,
			fmt.Sprintf("unknown slot label: %q", slot),
			map[string]interface{}{"slot": string(slot)},
		)
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), w.startHour, 0, 0, 0, day.Location())

	endDay := day
	if w.overnight {
		endDay = day.AddDate(0, 0, 1)
	}
	end := time.Date(endDay.Year(), endDay.Month(), endDay.Day(), w.endHour, 0, 0, 0, endDay.Location())

	return start, end, nil
}
