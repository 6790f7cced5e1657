// internal/gripper/session_test.go
package gripper

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

// newTestSession skips the reference-on-connect sequence so individual
// operations can be asserted in isolation.
func newTestSession(bus RegisterBus) *Session {
	seq := &sequencer{bus: bus, timing: testTiming()}
	return &Session{
		pid:    uuid.New(),
		bus:    bus,
		seq:    seq,
		policy: recoveryPolicy{seq: seq},
	}
}

// 0xC300: command accepted, success set, status ready. The word a finished
// grip or release leaves behind.
const rawDone uint16 = 0xC300

func TestGripWritesExactFrames(t *testing.T) {
	bus := &fakeBus{status: []uint16{rawDone}}
	s := newTestSession(bus)

	if err := s.Grip(context.Background(), 2); err != nil {
		t.Fatalf("Grip err=%v", err)
	}

	assertWrites(t, bus.writes, [][]uint16{
		{regCommand, 0x0400, 0x0200, 0, 0},
		{regCommand, 0x8400, 0x0200, 0, 0},
	})
}

func TestGripValidatesForceBeforeIO(t *testing.T) {
	bus := &fakeBus{}
	s := newTestSession(bus)

	err := s.Grip(context.Background(), 0)
	var re *RangeError
	if !errors.As(err, &re) {
		t.Fatalf("got err=%v want RangeError", err)
	}
	if bus.statusReads != 0 || len(bus.writes) != 0 {
		t.Fatalf("range error must precede all I/O: reads=%d writes=%v", bus.statusReads, bus.writes)
	}
}

func TestReleaseWritesExactFrames(t *testing.T) {
	bus := &fakeBus{status: []uint16{rawDone}}
	s := newTestSession(bus)

	if err := s.Release(context.Background()); err != nil {
		t.Fatalf("Release err=%v", err)
	}

	assertWrites(t, bus.writes, [][]uint16{
		{regCommand, 0x0300, 0, 0, 0},
		{regCommand, 0x8300, 0, 0, 0},
	})
}

func TestMoveNearClosedDelegatesToGrip(t *testing.T) {
	for _, pct := range []int{0, 2} {
		bus := &fakeBus{status: []uint16{rawDone}}
		s := newTestSession(bus)

		if err := s.MoveTo(context.Background(), pct); err != nil {
			t.Fatalf("MoveTo(%d) err=%v", pct, err)
		}

		// Same traffic as Grip at the default (strongest) force.
		assertWrites(t, bus.writes, [][]uint16{
			{regCommand, 0x0400, 0, 0, 0},
			{regCommand, 0x8400, 0, 0, 0},
		})
	}
}

func TestMoveNearOpenDelegatesToRelease(t *testing.T) {
	for _, pct := range []int{98, 100} {
		bus := &fakeBus{status: []uint16{rawDone}}
		s := newTestSession(bus)

		if err := s.MoveTo(context.Background(), pct); err != nil {
			t.Fatalf("MoveTo(%d) err=%v", pct, err)
		}

		assertWrites(t, bus.writes, [][]uint16{
			{regCommand, 0x0300, 0, 0, 0},
			{regCommand, 0x8300, 0, 0, 0},
		})
	}
}

func TestMoveWaitsForAcceptanceOnly(t *testing.T) {
	// Accepted but success never set: a positional move must still return.
	bus := &fakeBus{status: []uint16{0x8300}}
	s := newTestSession(bus)

	if err := s.MoveTo(context.Background(), 50); err != nil {
		t.Fatalf("MoveTo err=%v", err)
	}

	hi, lo, _ := encodePosition(50)
	assertWrites(t, bus.writes, [][]uint16{
		{regCommand, 0x0500, 0, hi, lo},
		{regCommand, 0x8500, 0, hi, lo},
	})
}

func TestMoveValidatesRange(t *testing.T) {
	s := newTestSession(&fakeBus{})
	for _, pct := range []int{-1, 101} {
		err := s.MoveTo(context.Background(), pct)
		var re *RangeError
		if !errors.As(err, &re) {
			t.Fatalf("MoveTo(%d): got err=%v want RangeError", pct, err)
		}
	}
}

func TestMoveAcceptTimeout(t *testing.T) {
	bus := &fakeBus{status: []uint16{0x0300}} // never accepted
	s := newTestSession(bus)

	err := s.MoveTo(context.Background(), 50)
	if !errors.Is(err, ErrAcceptTimeout) {
		t.Fatalf("got err=%v want ErrAcceptTimeout", err)
	}
}

func TestStopAcknowledgesPendingError(t *testing.T) {
	// First read (recovery) reports Error; device is ready afterwards.
	bus := &fakeBus{status: []uint16{0x0000, 0x0300}}
	s := newTestSession(bus)

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop err=%v", err)
	}

	// Acknowledge pair strictly before the stop pair.
	assertWrites(t, bus.writes, [][]uint16{
		{regCommand, 0x0100},
		{regCommand, 0x8100},
		{regCommand, 0x0800},
		{regCommand, 0x8800},
	})
}

func TestFastStopWhenReady(t *testing.T) {
	bus := &fakeBus{status: []uint16{0x0300}}
	s := newTestSession(bus)

	if err := s.FastStop(); err != nil {
		t.Fatalf("FastStop err=%v", err)
	}

	// Single-phase write: no execute rewrite.
	assertWrites(t, bus.writes, [][]uint16{
		{regCommand, 0x0000},
	})
}

func TestFastStopAcknowledgesErrorFirst(t *testing.T) {
	bus := &fakeBus{status: []uint16{0x0000}}
	s := newTestSession(bus)

	if err := s.FastStop(); err != nil {
		t.Fatalf("FastStop err=%v", err)
	}

	assertWrites(t, bus.writes, [][]uint16{
		{regCommand, 0x0100},
		{regCommand, 0x8100},
		{regCommand, 0x0000},
	})
}

func TestMaintenanceBlocksCommands(t *testing.T) {
	bus := &fakeBus{status: []uint16{0x0200}}
	s := newTestSession(bus)

	if err := s.Grip(context.Background(), 4); !errors.Is(err, ErrMaintenanceRequired) {
		t.Fatalf("Grip: got err=%v want ErrMaintenanceRequired", err)
	}
	if len(bus.writes) != 0 {
		t.Fatalf("maintenance must not trigger writes: %v", bus.writes)
	}
}

func TestQueries(t *testing.T) {
	bus := &fakeBus{
		status:   []uint16{0x4300},
		position: []uint16{0, 0}, // 0 mm = fully open
	}
	s := newTestSession(bus)

	st, err := s.OperatingStatus()
	if err != nil || st != StatusReady {
		t.Fatalf("OperatingStatus: got %v err=%v", st, err)
	}

	ok, err := s.Success()
	if err != nil || !ok {
		t.Fatalf("Success: got %v err=%v", ok, err)
	}

	pct, err := s.PositionPercent()
	if err != nil || pct != 100 {
		t.Fatalf("PositionPercent: got %d err=%v", pct, err)
	}
}

func TestNewSessionInitSequence(t *testing.T) {
	// Device boots in Error; acknowledged during init, Ready by the time the
	// reference command runs its own recovery check.
	bus := &fakeBus{
		status:   []uint16{0x0000, 0x0300},
		position: []uint16{0, 0},
	}

	s, err := NewSession(bus, testTiming())
	if err != nil {
		t.Fatalf("NewSession err=%v", err)
	}

	// timeout(0), acknowledge pair, reference pair.
	assertWrites(t, bus.writes, [][]uint16{
		{regLinkTimeout, 0},
		{regCommand, 0x0100},
		{regCommand, 0x8100},
		{regCommand, 0x0200},
		{regCommand, 0x8200},
	})

	st, err := s.OperatingStatus()
	if err != nil || st != StatusReady {
		t.Fatalf("OperatingStatus after init: got %v err=%v", st, err)
	}

	pct, err := s.PositionPercent()
	if err != nil || pct < 0 || pct > 100 {
		t.Fatalf("PositionPercent after init: got %d err=%v", pct, err)
	}
}

func TestNewSessionClosesBusOnFailure(t *testing.T) {
	bus := &fakeBus{readErr: errors.New("no route to host")}

	if _, err := NewSession(bus, testTiming()); err == nil {
		t.Fatalf("expected init error, got nil")
	}
	if !bus.closed {
		t.Fatalf("bus must be closed after failed init")
	}
}
