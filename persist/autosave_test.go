package persist_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/gridmap/persist"
)

func TestAutosaverDebounces(t *testing.T) {
	var saves atomic.Int32
	a := persist.NewAutosaver(30*time.Millisecond, func() { saves.Add(1) })

	// A burst of requests collapses into one save.
	for i := 0; i < 5; i++ {
		a.Request()
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, int32(0), saves.Load(), "nothing saved during the burst")

	assert.Eventually(t, func() bool { return saves.Load() == 1 },
		time.Second, 5*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), saves.Load())
}

func TestAutosaverSuspend(t *testing.T) {
	var saves atomic.Int32
	a := persist.NewAutosaver(10*time.Millisecond, func() { saves.Add(1) })

	a.Request()
	a.Suspend()
	a.Request()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), saves.Load(), "suspend cancels and blocks saves")

	a.Resume()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), saves.Load(), "resume alone schedules nothing")

	a.Request()
	assert.Eventually(t, func() bool { return saves.Load() == 1 },
		time.Second, 5*time.Millisecond)
}

func TestAutosaverFlush(t *testing.T) {
	var saves atomic.Int32
	a := persist.NewAutosaver(time.Hour, func() { saves.Add(1) })

	a.Request()
	a.Flush()
	assert.Equal(t, int32(1), saves.Load())

	// The pending timer was cancelled; nothing fires later.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), saves.Load())

	a.Suspend()
	a.Flush()
	assert.Equal(t, int32(1), saves.Load(), "flush while suspended is a no-op")
}

func TestAutosaverStop(t *testing.T) {
	var saves atomic.Int32
	a := persist.NewAutosaver(10*time.Millisecond, func() { saves.Add(1) })

	a.Request()
	a.Stop()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), saves.Load())
}
