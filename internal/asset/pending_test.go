package asset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPending_Unsettled(t *testing.T) {
	p := NewPending[int]()

	assert.False(t, p.Ready())
	assert.False(t, p.Failed())
	_, ok := p.Value()
	assert.False(t, ok)
	assert.NoError(t, p.Err())

	select {
	case <-p.Done():
		t.Fatal("Done closed before Settle")
	default:
	}
}

func TestPending_FirstSettleWins(t *testing.T) {
	p := NewPending[string]()

	assert.True(t, p.Settle("first", nil))
	assert.False(t, p.Settle("second", nil))
	assert.False(t, p.Settle("", errors.New("late failure")))

	v, ok := p.Value()
	assert.True(t, ok)
	assert.Equal(t, "first", v)
	assert.True(t, p.Ready())
	assert.False(t, p.Failed())
	<-p.Done()
}

func TestPending_SettleWithError(t *testing.T) {
	p := NewPending[[]byte]()
	boom := errors.New("404")

	p.Settle([]byte("ignored"), boom)

	assert.False(t, p.Ready())
	assert.True(t, p.Failed())
	assert.ErrorIs(t, p.Err(), boom)
	v, ok := p.Value()
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestResolved(t *testing.T) {
	p := Resolved(42)
	v, ok := p.Value()
	assert.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestArena_StableIDs(t *testing.T) {
	var a Arena[int]

	first := a.Add("a.png", Resolved(1))
	second := a.Add("b.png", NewPending[int]())

	assert.Equal(t, ID(0), first)
	assert.Equal(t, ID(1), second)
	assert.Equal(t, "b.png", a.URL(second))
	assert.Equal(t, 2, a.Len())

	settled, total := a.Progress()
	assert.Equal(t, 1, settled)
	assert.Equal(t, 2, total)

	a.Get(second).Settle(0, errors.New("gone"))
	settled, _ = a.Progress()
	assert.Equal(t, 2, settled)
}
