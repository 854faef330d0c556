package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevertToRunsUndoInReverse(t *testing.T) {
	var j Journal
	var order []int
	value := 0

	cp := j.Checkpoint()
	for i := 1; i <= 3; i++ {
		prev := value
		value = i
		n := i
		j.Record(func() {
			order = append(order, n)
			value = prev
		})
	}
	require.Equal(t, 3, j.Len())

	j.RevertTo(cp)
	assert.Equal(t, 0, value)
	assert.Equal(t, []int{3, 2, 1}, order)
	assert.Equal(t, 0, j.Len())
}

func TestNestedCheckpoints(t *testing.T) {
	var j Journal
	value := "a"

	set := func(v string) {
		prev := value
		value = v
		j.Record(func() { value = prev })
	}

	outer := j.Checkpoint()
	set("b")
	inner := j.Checkpoint()
	set("c")

	j.RevertTo(inner)
	assert.Equal(t, "b", value)

	// reverting past an already reverted checkpoint is a no-op for it
	j.RevertTo(inner)
	assert.Equal(t, "b", value)

	j.RevertTo(outer)
	assert.Equal(t, "a", value)
}

func TestCommit(t *testing.T) {
	var j Journal
	j.Record(func() { t.Fatal("committed undo ran") })
	j.Commit(0)
	j.RevertTo(0)
	assert.Equal(t, 0, j.Len())
}

func TestCommitKeepsEarlierChanges(t *testing.T) {
	var j Journal
	reverted := false
	j.Record(func() { reverted = true })
	cp := j.Checkpoint()
	j.Record(func() { t.Fatal("committed undo ran") })
	j.Record(func() { t.Fatal("committed undo ran") })

	j.Commit(cp)
	require.Equal(t, 1, j.Len())

	j.RevertTo(0)
	assert.True(t, reverted)
	assert.Equal(t, 0, j.Len())
}
