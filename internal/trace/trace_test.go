package trace

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestTracer(t *testing.T) {
	logger := log.NewTestLogger(t)
	tracer := New(logger, true)

	m := machine.New(machine.WithObserver(tracer))
	rom := []byte{
		0x60, 0x05, // V0 = 5
		0xF1, 0xFF, // unknown
		0x00, 0xEE, // return with empty stack, PC stays here
	}
	assert.NoError(t, m.Load(rom))

	_, last := tracer.Last()
	assert.False(t, last)

	for range 5 {
		_, _ = m.Step()
	}

	stats := tracer.Stats()
	assert.Equal(t, uint64(5), stats.Instructions)
	assert.Equal(t, uint64(1), stats.UnknownOpcodes)
	assert.Equal(t, uint64(3), stats.StackFaults)

	event, ok := tracer.Last()
	assert.True(t, ok)
	assert.Equal(t, machine.Fault, event.Outcome)
}

func TestTracer_Waits(t *testing.T) {
	tracer := New(log.NewTestLogger(t), false)

	m := machine.New(machine.WithObserver(tracer))
	assert.NoError(t, m.Load([]byte{0xF0, 0x0A, 0x00, 0xE0}))

	for range 3 {
		_, _ = m.Step()
	}
	assert.Equal(t, uint64(3), tracer.Stats().CurrentWait)

	assert.NoError(t, m.SetKey(1, true))
	_, _ = m.Step()
	_, _ = m.Step()
	assert.Equal(t, uint64(0), tracer.Stats().CurrentWait)
	assert.Equal(t, uint64(5), tracer.Stats().Instructions)
}

func TestTracer_WaitResetByFailure(t *testing.T) {
	tracer := New(log.NewTestLogger(t), false)

	tracer.Executed(machine.Event{Outcome: machine.Wait})
	tracer.Executed(machine.Event{Outcome: machine.Wait})
	assert.Equal(t, uint64(2), tracer.Stats().CurrentWait)

	tracer.Executed(machine.Event{Outcome: machine.Unknown, Err: machine.ErrUnknownOpcode})
	assert.Equal(t, uint64(0), tracer.Stats().CurrentWait)

	tracer.Executed(machine.Event{Outcome: machine.Wait})
	tracer.Executed(machine.Event{Outcome: machine.Fault, Err: machine.ErrStackUnderflow})
	assert.Equal(t, uint64(0), tracer.Stats().CurrentWait)
	assert.Equal(t, uint64(1), tracer.Stats().StackFaults)
}
