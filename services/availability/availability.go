package availability

import (
	"time"

	"glimra/models"
)

const dateLayout = "2006-01-02"

// ComputeSlots generates the offerable slots for one calendar day.
//
// Candidate starts are laid out at a fixed granularity from the branch's
// opening time up to close minus duration, inclusive. A candidate is marked
// unavailable when its half-open interval [start, start+duration) overlaps an
// existing booking with an active status, or when its start is already in the
// past on the current day. A duration longer than the remaining operating
// window yields an empty slice, not an error.
//
// Callers must recompute whenever the duration changes: add-ons shift slot
// boundaries, so cached results for another duration are meaningless.
func ComputeSlots(
	day string,
	durationMinutes int,
	existing []models.BookingInterval,
	hours models.OperatingHours,
	granularityMinutes int,
	now time.Time,
) []models.TimeSlot {
	if durationMinutes <= 0 || granularityMinutes <= 0 {
		return nil
	}
	lastStart := hours.Close - durationMinutes
	if lastStart < hours.Open {
		return nil
	}

	active := make([]models.BookingInterval, 0, len(existing))
	for _, b := range existing {
		if models.ActiveBookingStatuses[b.Status] {
			active = append(active, b)
		}
	}

	nowCutoff := -1
	if d, err := time.ParseInLocation(dateLayout, day, now.Location()); err == nil {
		if d.Year() == now.Year() && d.YearDay() == now.YearDay() {
			nowCutoff = now.Hour()*60 + now.Minute()
		}
	}

	var slots []models.TimeSlot
	for start := hours.Open; start <= lastStart; start += granularityMinutes {
		end := start + durationMinutes
		slot := models.TimeSlot{
			Start:     start,
			End:       end,
			StartTime: models.MinutesToClock(start),
			EndTime:   models.MinutesToClock(end),
			Date:      day,
			Available: true,
		}
		if start <= nowCutoff {
			slot.Available = false
		} else {
			for _, b := range active {
				if overlaps(start, end, b.Start, b.End) {
					slot.Available = false
					break
				}
			}
		}
		slots = append(slots, slot)
	}
	return slots
}

// overlaps is the half-open interval intersection test.
func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// SlotFits reports whether a slot starting at start still fits a duration
// within operating hours and clear of active bookings. The wizard uses this
// to re-validate a previously selected slot after add-ons change the duration.
func SlotFits(
	start, durationMinutes int,
	existing []models.BookingInterval,
	hours models.OperatingHours,
) bool {
	end := start + durationMinutes
	if start < hours.Open || end > hours.Close {
		return false
	}
	for _, b := range existing {
		if models.ActiveBookingStatuses[b.Status] && overlaps(start, end, b.Start, b.End) {
			return false
		}
	}
	return true
}
