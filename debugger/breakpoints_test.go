package debugger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-uvm/uvm/debugger"
)

func TestBreakpoints_SetHasClear(t *testing.T) {
	b := debugger.NewBreakpoints()
	assert.False(t, b.Has(10))

	b.Set(10)
	assert.True(t, b.Has(10))

	b.Clear(10)
	assert.False(t, b.Has(10))
}

func TestBreakpoints_HitCountsAccumulate(t *testing.T) {
	b := debugger.NewBreakpoints()
	b.Set(4)
	assert.Equal(t, 1, b.Hit(4))
	assert.Equal(t, 2, b.Hit(4))
}

func TestBreakpoints_ListIsSortedAscending(t *testing.T) {
	b := debugger.NewBreakpoints()
	b.Set(30)
	b.Set(10)
	b.Set(20)

	assert.Equal(t, []uint32{10, 20, 30}, b.List())
}

func TestBreakpoints_SetTwicePreservesHitCount(t *testing.T) {
	b := debugger.NewBreakpoints()
	b.Set(5)
	b.Hit(5)
	b.Set(5)
	assert.Equal(t, 2, b.Hit(5))
}
