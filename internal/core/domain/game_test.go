package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampCompletion(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{name: "negative clamps to zero", input: -5, expected: 0},
		{name: "zero passes through", input: 0, expected: 0},
		{name: "mid-range passes through", input: 42, expected: 42},
		{name: "hundred passes through", input: 100, expected: 100},
		{name: "over hundred clamps", input: 250, expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClampCompletion(tt.input))
		})
	}
}

func TestStatusForCompletion(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected GameStatus
	}{
		{name: "zero is not started", input: 0, expected: StatusNotStarted},
		{name: "one is in progress", input: 1, expected: StatusInProgress},
		{name: "ninety-nine is in progress", input: 99, expected: StatusInProgress},
		{name: "hundred is completed", input: 100, expected: StatusCompleted},
		{name: "negative clamps to not started", input: -10, expected: StatusNotStarted},
		{name: "over hundred clamps to completed", input: 180, expected: StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusForCompletion(tt.input))
		})
	}
}
