package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSearchCriteria(t *testing.T) {
	tests := []struct {
		name     string
		entDMID  string
		expected string
	}{
		{
			name:     "simple identity",
			entDMID:  "AB12",
			expected: "Subject=CN%3dAB12&Stores=MY%5CSystem",
		},
		{
			name:     "short identity",
			entDMID:  "Z9",
			expected: "Subject=CN%3dZ9&Stores=MY%5CSystem",
		},
		{
			name:     "identity inserted verbatim",
			entDMID:  "dev-4711",
			expected: "Subject=CN%3ddev-4711&Stores=MY%5CSystem",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, BuildSearchCriteria(tc.entDMID))
		})
	}
}

func TestBuildReference(t *testing.T) {
	assert.Equal(t, "MY;System;9F3E7C1A", BuildReference("9F3E7C1A"))

	// Case is preserved exactly as read.
	assert.Equal(t, "MY;System;9f3e7c1a", BuildReference("9f3e7c1a"))
}

func TestBuildersArePure(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, BuildSearchCriteria("AB12"), BuildSearchCriteria("AB12"))
		assert.Equal(t, BuildReference("9F3E7C1A"), BuildReference("9F3E7C1A"))
	}
}
