package fp

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEither_LeftRight(t *testing.T) {
	l := Left[string, int]("bad")
	assert.True(t, l.IsLeft())
	assert.False(t, l.IsRight())
	v, ok := l.GetLeft()
	require.True(t, ok)
	assert.Equal(t, "bad", v)
	_, ok = l.GetRight()
	assert.False(t, ok)

	r := Right[string](6)
	assert.True(t, r.IsRight())
	n, ok := r.GetRight()
	require.True(t, ok)
	assert.Equal(t, 6, n)
	_, ok = r.GetLeft()
	assert.False(t, ok)
}

func TestEither_ZeroValueIsLeft(t *testing.T) {
	var e Either[string, int]
	assert.True(t, e.IsLeft())
}

func TestBimap(t *testing.T) {
	upper := strings.ToUpper
	double := func(n int) int { return n * 2 }

	t.Run("success channel", func(t *testing.T) {
		res := Bimap(Right[string](6), upper, double)
		n, ok := res.GetRight()
		require.True(t, ok)
		assert.Equal(t, 12, n)
	})

	t.Run("error channel", func(t *testing.T) {
		res := Bimap(Left[string, int]("invalid form"), upper, double)
		msg, ok := res.GetLeft()
		require.True(t, ok)
		assert.Equal(t, "INVALID FORM", msg)
	})
}

func TestMapEither_ChainEither(t *testing.T) {
	parse := func(s string) Either[error, int] { return FromResult(strconv.Atoi(s)) }

	res := ChainEither(Right[error]("41"), parse)
	res = MapEither(res, func(n int) int { return n + 1 })
	n, err := ToResult(res)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	res = ChainEither(Right[error]("x"), parse)
	_, err = ToResult(res)
	require.Error(t, err)

	mapped := MapLeft(Left[error, int](errors.New("boom")), func(e error) string { return e.Error() })
	msg, ok := mapped.GetLeft()
	require.True(t, ok)
	assert.Equal(t, "boom", msg)
}

func TestMatchEither(t *testing.T) {
	render := func(e Either[string, int]) string {
		return MatchEither(e,
			func(msg string) string { return "uh oh " + msg },
			func(n int) string { return "validated form with value: " + strconv.Itoa(n) },
		)
	}
	assert.Equal(t, "uh oh bad", render(Left[string, int]("bad")))
	assert.Equal(t, "validated form with value: 6", render(Right[string](6)))
}
