package di

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainerRegisterAndGet(t *testing.T) {
	c := New()
	c.Register("answer", 42)

	v, err := c.Get("answer")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.True(t, c.Has("answer"))
	assert.True(t, c.Built("answer"))

	_, err = c.Get("missing")
	assert.True(t, errors.Is(err, ErrServiceNotFound))
	assert.False(t, c.Has("missing"))
}

func TestContainerBuildsOnce(t *testing.T) {
	c := New()
	calls := 0
	c.RegisterBuilder("lazy", func(c *Container) (interface{}, error) {
		calls++
		return &struct{ n int }{n: calls}, nil
	})
	assert.False(t, c.Built("lazy"))

	first := c.MustGet("lazy")
	second := c.MustGet("lazy")
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
	assert.True(t, c.Built("lazy"))
}

func TestContainerNestedBuilders(t *testing.T) {
	c := New()
	c.RegisterBuilder("a", func(c *Container) (interface{}, error) {
		b, err := c.Get("b")
		if err != nil {
			return nil, err
		}
		return b.(string) + "a", nil
	})
	c.RegisterBuilder("b", func(c *Container) (interface{}, error) {
		return "b", nil
	})

	v, err := c.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "ba", v)
}

func TestContainerCycle(t *testing.T) {
	c := New()
	c.RegisterBuilder("a", func(c *Container) (interface{}, error) { return c.Get("b") })
	c.RegisterBuilder("b", func(c *Container) (interface{}, error) { return c.Get("a") })

	_, err := c.Get("a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dependency cycle")
	assert.False(t, c.Built("a"))
}

func TestContainerBuilderError(t *testing.T) {
	c := New()
	boom := errors.New("boom")
	fail := true
	c.RegisterBuilder("flaky", func(c *Container) (interface{}, error) {
		if fail {
			return nil, boom
		}
		return "ok", nil
	})

	_, err := c.Get("flaky")
	assert.ErrorIs(t, err, boom)

	fail = false
	v, err := c.Get("flaky")
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestContainerNamesAndClear(t *testing.T) {
	c := New()
	c.Register("b", 1)
	c.RegisterBuilder("a", func(c *Container) (interface{}, error) { return 2, nil })
	assert.Equal(t, []string{"a", "b"}, c.ServiceNames())

	c.Clear()
	assert.Empty(t, c.ServiceNames())
	assert.Panics(t, func() { c.MustGet("a") })
}
