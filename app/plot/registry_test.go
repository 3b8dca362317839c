package plot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphplot/app/lang"
)

func TestRegistryNames(t *testing.T) {
	reg := NewRegistry(NewConfig())
	assert.Equal(t, byte('f'), reg.Name(0))
	assert.Equal(t, byte('o'), reg.Name(9))

	i, ok := reg.Index('h')
	assert.True(t, ok)
	assert.Equal(t, 2, i)
	_, ok = reg.Index('e')
	assert.False(t, ok)
	_, ok = reg.Index('p')
	assert.False(t, ok)

	reg = NewRegistry(NewConfig(WithBaseLetter('a')))
	assert.Equal(t, byte('j'), reg.Name(9))
}

func TestRegistryReplace(t *testing.T) {
	reg := NewRegistry(NewConfig())
	for i := 0; i < SlotCount; i++ {
		assert.False(t, reg.IsValid(i))
		assert.Equal(t, lang.StatusEmpty, reg.Status(i))
	}

	fn := lang.Compile("x**2", lang.Variable)
	require.NoError(t, reg.Replace(3, fn))
	got, err := reg.Get(3)
	require.NoError(t, err)
	assert.Same(t, fn, got)
	assert.True(t, reg.IsValid(3))
	assert.Equal(t, "x**2", reg.SourceString(3))
	assert.Equal(t, "", reg.ConstantDisplayString(3))
}

func TestRegistryOutOfRange(t *testing.T) {
	reg := NewRegistry(NewConfig())
	for _, i := range []int{-1, SlotCount} {
		_, err := reg.Get(i)
		assert.ErrorIs(t, err, ErrSlotOutOfRange)
		assert.ErrorIs(t, reg.Replace(i, lang.Compile("1", lang.Variable)), ErrSlotOutOfRange)
		assert.ErrorIs(t, reg.SetText(i, "x"), ErrSlotOutOfRange)
		assert.False(t, reg.IsValid(i))
		assert.Equal(t, "", reg.SourceString(i))
		assert.Equal(t, "", reg.Text(i))
	}
}

func TestConstantDisplayString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2+2", " = 4"},
		{"pi", " = 3.1415926536"},
		{"1/3", " = 0.3333333333"},
		{"-0.5", " = -0.5"},
		{"x", ""},
		{"y", ""},
	}

	reg := NewRegistry(NewConfig())
	for _, tt := range tests {
		require.NoError(t, reg.Replace(0, lang.Compile(lang.Normalize(tt.input), lang.Variable)))
		assert.Equal(t, tt.want, reg.ConstantDisplayString(0), "ConstantDisplayString(%q)", tt.input)
	}
}

func TestRegistryReplaceChangesIdentity(t *testing.T) {
	reg := NewRegistry(NewConfig())
	require.NoError(t, reg.Replace(0, lang.Compile("x", lang.Variable)))
	a, _ := reg.Get(0)
	require.NoError(t, reg.Replace(0, lang.Compile("x", lang.Variable)))
	b, _ := reg.Get(0)
	assert.NotEqual(t, a.ID, b.ID)
}
