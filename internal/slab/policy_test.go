package slab

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrowthStep(t *testing.T) {
	tests := []struct {
		capacity int
		room     int
		factor   float64
		want     int
	}{
		{capacity: 0, room: MaxSlots, factor: 0.2, want: 1},
		{capacity: 1, room: MaxSlots, factor: 0.2, want: 2},
		{capacity: 5, room: MaxSlots, factor: 0.2, want: 2},
		{capacity: 10, room: MaxSlots, factor: 0.2, want: 3},
		{capacity: 13, room: MaxSlots, factor: 0.2, want: 4},
		{capacity: 100, room: MaxSlots, factor: 0, want: 1},
		{capacity: 100, room: MaxSlots, factor: 1, want: 101},
		{capacity: 10, room: 2, factor: 0.5, want: 2},
		{capacity: 10, room: 0, factor: 0.5, want: 0},
		{capacity: 1, room: MaxSlots - 1, factor: 1e300, want: MaxSlots - 1},
		{capacity: 1000, room: 50, factor: 1e7, want: 50},
		{capacity: math.MaxInt32 - 1, room: 1, factor: math.MaxFloat64, want: 1},
	}
	for _, tt := range tests {
		got := GrowthStep(tt.capacity, tt.room, tt.factor)
		assert.Equal(t, tt.want, got, "capacity=%d room=%d factor=%v", tt.capacity, tt.room, tt.factor)
		assert.GreaterOrEqual(t, got, 0)
	}
}

func TestCompactTarget(t *testing.T) {
	tests := []struct {
		used, initial, capacity int
		factor                  float64
		want                    int
	}{
		{used: 0, initial: 1, capacity: 10, factor: 0.2, want: 1},
		{used: 0, initial: 10, capacity: 20, factor: 0.2, want: 10},
		{used: 3, initial: 1, capacity: 10, factor: 0.2, want: 4},
		{used: 10, initial: 1, capacity: 30, factor: 0.5, want: 15},
		{used: 10, initial: 50, capacity: 60, factor: 0.5, want: 50},
		{used: 7, initial: 1, capacity: 10, factor: 0, want: 7},
		{used: 8, initial: 1, capacity: 10, factor: 0.5, want: 10},
		{used: 1, initial: 1, capacity: 10, factor: 1e300, want: 10},
		{used: 1, initial: 1, capacity: 10, factor: math.MaxFloat64, want: 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompactTarget(tt.used, tt.initial, tt.capacity, tt.factor), "used=%d initial=%d capacity=%d", tt.used, tt.initial, tt.capacity)
	}
}
