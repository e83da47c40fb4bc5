package debugger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-uvm/uvm/debugger"
)

func TestHistory_AllInChronologicalOrder(t *testing.T) {
	h := debugger.NewHistory(3)
	h.Add("step")
	h.Add("continue")
	assert.Equal(t, []string{"step", "continue"}, h.All())
	assert.Equal(t, 2, h.Len())
}

func TestHistory_EvictsOldestPastCapacity(t *testing.T) {
	h := debugger.NewHistory(2)
	h.Add("a")
	h.Add("b")
	h.Add("c")

	assert.Equal(t, []string{"b", "c"}, h.All())
	assert.Equal(t, 2, h.Len())
}

func TestHistory_ZeroCapacityClampsToOne(t *testing.T) {
	h := debugger.NewHistory(0)
	h.Add("a")
	h.Add("b")
	assert.Equal(t, []string{"b"}, h.All())
}
