package calc

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "-0"},
		{8, "8"},
		{-3, "-3"},
		{0.5, "0.5"},
		{2.25, "2.25"},
		{1.0 / 3, "0.3333333333333333"},
		{123456789, "123456789"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{-2.5e22, "-2.5e+22"},
		{1e-6, "0.000001"},
		{1e-7, "1e-07"},
		{math.Pi, "3.141592653589793"},
		{math.Inf(1), "+Inf"},
		{math.Inf(-1), "-Inf"},
		{math.NaN(), "NaN"},
	}

	for _, test := range tests {
		result := FormatNumber(test.input)
		if result != test.expected {
			t.Errorf("FormatNumber(%v) = %q, want %q", test.input, result, test.expected)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		value float64
		ok    bool
	}{
		{"", 0, false},
		{".", 0, false},
		{"Error", 0, false},
		{"Error5", 0, false},
		{"5.", 5, true},
		{".25", 0.25, true},
		{"-0", 0, true},
		{"007", 7, true},
		{"1e+21", 1e21, true},
		{"+Inf", math.Inf(1), true},
		{"-Inf", math.Inf(-1), true},
		{strings.Repeat("9", 400), math.Inf(1), true},
	}

	for _, test := range tests {
		value, ok := ParseNumber(test.input)
		assert.Equal(t, test.ok, ok, "ParseNumber(%q)", test.input)
		assert.Equal(t, test.value, value, "ParseNumber(%q)", test.input)
	}

	value, ok := ParseNumber("NaN")
	assert.True(t, ok)
	assert.True(t, math.IsNaN(value))
}

func TestFormattedNumbersParseBack(t *testing.T) {
	for _, v := range []float64{0, 8, -3.75, 1.0 / 3, 1e21, 1e-7, math.Pi, math.MaxFloat64} {
		parsed, ok := ParseNumber(FormatNumber(v))
		assert.True(t, ok, "value %v", v)
		assert.Equal(t, v, parsed)
	}
}
