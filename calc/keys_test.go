package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyLabels(t *testing.T) {
	for _, k := range Keys() {
		parsed, err := ParseKey(k.String())
		require.NoError(t, err, "label %q", k.String())
		assert.Equal(t, k, parsed)
	}
}

func TestParseKeyAliases(t *testing.T) {
	tests := []struct {
		label    string
		expected Key
	}{
		{"*", KeyMultiply},
		{"X", KeyMultiply},
		{"/", KeyDivide},
		{"sqrt", KeySqrt},
		{"SQRT", KeySqrt},
		{"pi", KeyPi},
		{"+/-", KeySign},
		{"neg", KeySign},
		{"inv", KeyReciprocal},
		{"ce", KeyClear},
		{"c", KeyClear},
		{"ac", KeyAllClear},
		{"m+", KeyMemoryAdd},
		{"mr", KeyMemoryRecall},
		{" mc ", KeyMemoryClear},
	}

	for _, test := range tests {
		k, err := ParseKey(test.label)
		require.NoError(t, err, "label %q", test.label)
		assert.Equal(t, test.expected, k, "label %q", test.label)
	}
}

func TestParseKeyUnknown(t *testing.T) {
	for _, label := range []string{"", "%", "12", "MS", "sin"} {
		_, err := ParseKey(label)
		assert.ErrorIs(t, err, ErrUnknownKey, "label %q", label)
	}
}

func TestKeyDigit(t *testing.T) {
	d, ok := Key7.Digit()
	assert.True(t, ok)
	assert.Equal(t, byte('7'), d)

	_, ok = KeyPoint.Digit()
	assert.False(t, ok)
}

func TestPressUnknownKey(t *testing.T) {
	e := New()
	err := e.Press(Key(99))
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.Equal(t, "Key(99)", Key(99).String())
}

func TestOperatorString(t *testing.T) {
	assert.Equal(t, "none", None.String())
	assert.Equal(t, "divide", Divide.String())
	assert.Equal(t, "Operator(7)", Operator(7).String())
	assert.False(t, Operator(-1).Valid())
}
