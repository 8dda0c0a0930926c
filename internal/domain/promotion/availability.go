package promotion

// Availability is the per-day booking picture for one type and scope over a
// window. Both slices preserve the window's day order.
type Availability struct {
	Booked    []DayKey
	Available []DayKey
}

// ComputeAvailability counts, for every day of the window, how many of the
// occupied ranges cover that day, and splits the window into booked and
// available days against the capacity limit. Zero capacity (including a
// missing slot configuration) marks every day booked.
//
// Per-day occupancy counting is O(days x ranges), which is fine for the
// bounded look-ahead horizon and moderate reservation volume per type.
func ComputeAvailability(capacity int, window DateRange, occupied []DateRange) Availability {
	windowDays := window.Days()

	occupancy := make(map[DayKey]int, len(windowDays))
	for _, r := range occupied {
		if !r.Overlaps(window) {
			continue
		}
		for _, day := range r.Days() {
			occupancy[day]++
		}
	}

	avail := Availability{
		Booked:    make([]DayKey, 0, len(windowDays)),
		Available: make([]DayKey, 0, len(windowDays)),
	}
	for _, day := range windowDays {
		if capacity <= 0 || occupancy[day] >= capacity {
			avail.Booked = append(avail.Booked, day)
		} else {
			avail.Available = append(avail.Available, day)
		}
	}
	return avail
}

// ValidateRange applies the all-or-nothing reservation policy: ok only when
// every requested day is available. The returned subset is the available
// intersection, kept for diagnostics.
func ValidateRange(requested DateRange, avail Availability) (bool, []DayKey) {
	availableSet := make(map[DayKey]struct{}, len(avail.Available))
	for _, day := range avail.Available {
		availableSet[day] = struct{}{}
	}

	requestedDays := requested.Days()
	subset := make([]DayKey, 0, len(requestedDays))
	for _, day := range requestedDays {
		if _, ok := availableSet[day]; ok {
			subset = append(subset, day)
		}
	}
	return len(subset) == len(requestedDays), subset
}
