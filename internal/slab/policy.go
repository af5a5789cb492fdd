package slab

import "math"

// GrowthStep returns how many slots to add to a table of the given capacity
// when it runs out of free slots: a growthFactor share of the capacity,
// rounded up, plus one so the table always makes progress. The step never
// exceeds room.
func GrowthStep(capacity, room int, growthFactor float64) int {
	if room <= 0 {
		return 0
	}
	step := math.Ceil(float64(capacity)*growthFactor) + 1
	if step >= float64(room) {
		return room
	}
	return int(step)
}

// CompactTarget returns the capacity a table should be compacted to when used
// slots are in use. It keeps a growthFactor share of slack above used but never
// goes below initialSize or above capacity.
func CompactTarget(used, initialSize, capacity int, growthFactor float64) int {
	target := math.Ceil(float64(used) * (1 + growthFactor))
	if target >= float64(capacity) {
		return max(initialSize, capacity)
	}
	return max(initialSize, int(target))
}
