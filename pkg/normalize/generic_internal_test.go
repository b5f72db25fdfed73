package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalNumber(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0", "0"},
		{"100", "100"},
		{"007", "7"},
		{"1.50", "1.5"},
		{"2.0", "2"},
		{"0.0", "0"},
		{"10.010", "10.01"},
		{"1E+03", "1e3"},
		{"1.5e-02", "1.5e-2"},
		{"3e0", "3"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalNumber(tt.in))
		})
	}
}
