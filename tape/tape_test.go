package tape

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bond-kaneko/gocalc/calc"
)

func TestParse(t *testing.T) {
	input := `
# five plus three
5 + 3 =   # trailing comment

12.5 x 2 =
`
	keys, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	expected := []calc.Key{
		calc.Key5, calc.KeyAdd, calc.Key3, calc.KeyEquals,
		calc.Key1, calc.Key2, calc.KeyPoint, calc.Key5, calc.KeyMultiply, calc.Key2, calc.KeyEquals,
	}
	assert.Equal(t, expected, keys)
}

func TestParseEmpty(t *testing.T) {
	keys, err := Parse(strings.NewReader("# nothing here\n\n"))
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestParseReportsLine(t *testing.T) {
	_, err := Parse(strings.NewReader("1 + 2\n3 % 4\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, calc.ErrUnknownKey)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), `"%"`)
}

func TestParseToken(t *testing.T) {
	tests := []struct {
		token    string
		expected []calc.Key
	}{
		{"7", []calc.Key{calc.Key7}},
		{".", []calc.Key{calc.KeyPoint}},
		{"1..2", []calc.Key{calc.Key1, calc.KeyPoint, calc.KeyPoint, calc.Key2}},
		{"M+", []calc.Key{calc.KeyMemoryAdd}},
		{"sqrt", []calc.Key{calc.KeySqrt}},
		{"1/x", []calc.Key{calc.KeyReciprocal}},
	}

	for _, test := range tests {
		keys, err := ParseToken(test.token)
		require.NoError(t, err, "token %q", test.token)
		assert.Equal(t, test.expected, keys, "token %q", test.token)
	}
}

func TestReplay(t *testing.T) {
	tests := []struct {
		name    string
		tape    string
		display string
		memory  float64
	}{
		{"chained", "1 + 2 + 3 =", "6", 0},
		{"left to right", "2 + 3 x 4 =", "20", 0},
		{"memory", "7 M+ 3 M+ MR", "10", 10},
		{"point typed twice", "1..5", "1.5", 0},
		{"square root of negative", "4 ± √", "NaN", 0},
		{"reciprocal of zero", "0 1/x", "+Inf", 0},
		{"error marker", "M+", calc.ErrorMarker, 0},
		{"all clear", "5 M+ 9 + AC", "", 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			keys, err := Parse(strings.NewReader(test.tape))
			require.NoError(t, err)

			state, err := Replay(keys, nil)
			require.NoError(t, err)
			assert.Equal(t, test.display, state.Display)
			assert.Equal(t, test.memory, state.Memory)
		})
	}
}

func TestReplaySteps(t *testing.T) {
	keys, err := Parse(strings.NewReader("5 + 3 ="))
	require.NoError(t, err)

	var displays []string
	var labels []string
	_, err = Replay(keys, func(k calc.Key, s calc.State) {
		labels = append(labels, k.String())
		displays = append(displays, s.Display)
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"5", "+", "3", "="}, labels)
	assert.Equal(t, []string{"5", "5", "3", "8"}, displays)
}

func TestReplayStopsOnBadKey(t *testing.T) {
	state, err := Replay([]calc.Key{calc.Key4, calc.Key(77), calc.Key2}, nil)
	assert.ErrorIs(t, err, calc.ErrUnknownKey)
	assert.Equal(t, "4", state.Display)
}

func TestSampleTapes(t *testing.T) {
	tests := []struct {
		file    string
		display string
		memory  float64
	}{
		{"chain.keys", "20", 0},
		{"memory.keys", "5", 20},
		{"edges.keys", calc.ErrorMarker, 0},
	}

	for _, test := range tests {
		t.Run(test.file, func(t *testing.T) {
			f, err := os.Open(filepath.Join("..", "sample", test.file))
			require.NoError(t, err)
			defer f.Close()

			keys, err := Parse(f)
			require.NoError(t, err)
			state, err := Replay(keys, nil)
			require.NoError(t, err)
			assert.Equal(t, test.display, state.Display)
			assert.Equal(t, test.memory, state.Memory)
		})
	}
}
