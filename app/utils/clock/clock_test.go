package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEpoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestManualAdvanceFiresDueTimers(t *testing.T) {
	m := NewManual(testEpoch)
	short := m.After(1 * time.Second)
	long := m.After(5 * time.Second)
	require.Equal(t, 2, m.WaiterCount())

	m.Advance(1 * time.Second)
	select {
	case at := <-short:
		assert.Equal(t, testEpoch.Add(1*time.Second), at)
	default:
		t.Fatal("1s timer did not fire after advancing 1s")
	}
	select {
	case <-long:
		t.Fatal("5s timer fired after only 1s")
	default:
	}
	assert.Equal(t, 1, m.WaiterCount())

	m.Advance(4 * time.Second)
	select {
	case <-long:
	default:
		t.Fatal("5s timer did not fire after advancing 5s total")
	}
}

func TestManualAfterZeroFiresImmediately(t *testing.T) {
	m := NewManual(testEpoch)
	select {
	case <-m.After(0):
	default:
		t.Fatal("zero-duration timer did not fire immediately")
	}
	assert.Zero(t, m.WaiterCount())
}

func TestManualNowTracksAdvance(t *testing.T) {
	m := NewManual(testEpoch)
	m.Advance(90 * time.Second)
	assert.Equal(t, testEpoch.Add(90*time.Second), m.Now())
}
