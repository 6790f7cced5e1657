// internal/gripper/session.go
package gripper

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session owns one gripper over one RegisterBus for its lifetime. Operations
// are strictly sequential and blocking; the device accepts a single
// outstanding command, so a Session MUST have one exclusive caller at a time.
type Session struct {
	pid    uuid.UUID
	bus    RegisterBus
	seq    *sequencer
	policy recoveryPolicy

	// last is a convenience cache of the most recent decoded operating
	// status. It is stale by definition; every decision re-reads the device.
	last OperatingStatus
}

// NewSession takes ownership of bus and brings the device to a referenced,
// ready state: disable the link inactivity timeout, acknowledge any pending
// error, then reference. Any transport failure here is fatal; the bus is
// closed before returning.
func NewSession(bus RegisterBus, timing Timing) (*Session, error) {
	timing.fillDefaults()

	s := &Session{
		pid: uuid.New(),
		bus: bus,
		seq: &sequencer{bus: bus, timing: timing},
	}
	s.policy = recoveryPolicy{seq: s.seq}

	if err := s.initialize(); err != nil {
		bus.Close()
		return nil, fmt.Errorf("gripper: session init: %w", err)
	}
	return s, nil
}

func (s *Session) initialize() error {
	w, err := s.seq.readStatus()
	if err != nil {
		return err
	}
	s.last = w.Operating

	if err := s.SetLinkTimeout(0); err != nil {
		return err
	}
	time.Sleep(s.seq.timing.Settle)
	if err := s.seq.acknowledge(); err != nil {
		return err
	}
	time.Sleep(s.seq.timing.Settle)
	return s.Reference()
}

// PID identifies this session in logs.
func (s *Session) PID() uuid.UUID { return s.pid }

// ---- COMMANDS ----

// Grip closes toward the stop and holds the workpiece with the given force
// level (1 weakest .. 4 strongest). It blocks until the device reports
// success; completion waits on a physical event, so bound it through ctx.
func (s *Session) Grip(ctx context.Context, force int) error {
	fw, err := encodeForce(force)
	if err != nil {
		return err
	}
	return s.gripFrame(ctx, []uint16{cmdGrip, fw, 0, 0})
}

// Release opens away from the workpiece until the end stop, with the weakest
// force adjustment. Blocks until success like Grip.
func (s *Session) Release(ctx context.Context) error {
	return s.gripFrame(ctx, []uint16{cmdRelease, 0, 0, 0})
}

func (s *Session) gripFrame(ctx context.Context, frame []uint16) error {
	if err := s.clear(); err != nil {
		return err
	}
	if err := s.seq.armAndExecute(frame); err != nil {
		return err
	}
	if err := s.seq.waitAccepted(); err != nil {
		return err
	}
	time.Sleep(s.seq.timing.SuccessDelay)
	return s.seq.waitSuccess(ctx)
}

// MoveTo drives the fingers to an open-percentage. Near-closed targets (< 3)
// delegate to Grip, near-open targets (> 97) to Release. A positional move
// returns once the device accepts the command; unlike grip/release it does
// not wait for the success bit.
func (s *Session) MoveTo(ctx context.Context, percent int) error {
	if percent < 0 || percent > 100 {
		return &RangeError{Param: "position", Value: percent, Min: 0, Max: 100}
	}
	if percent < 3 {
		return s.Grip(ctx, 4)
	}
	if percent > 97 {
		return s.Release(ctx)
	}

	if err := s.clear(); err != nil {
		return err
	}
	hi, lo, err := encodePosition(percent)
	if err != nil {
		return err
	}
	if err := s.seq.armAndExecute([]uint16{cmdMove, 0, hi, lo}); err != nil {
		return err
	}
	return s.seq.waitAccepted()
}

// Stop brings the gripper to a controlled standstill, retaining the force of
// the previous command.
func (s *Session) Stop() error {
	return s.bareCommand(cmdStop)
}

// Reference moves to the mechanical end stop to set the zero position.
func (s *Session) Reference() error {
	return s.bareCommand(cmdReference)
}

// MeasureStroke sets the maximum stroke relative to the reference position.
func (s *Session) MeasureStroke() error {
	return s.bareCommand(cmdMeasureStroke)
}

// Calibrate runs reference and stroke measurement back to back; modules with
// an absolute measuring system also determine offset and slope.
func (s *Session) Calibrate() error {
	return s.bareCommand(cmdCalibrate)
}

func (s *Session) bareCommand(word uint16) error {
	if err := s.clear(); err != nil {
		return err
	}
	return s.seq.armAndExecute([]uint16{word})
}

// FastStop cuts actuator power immediately, independent of the execute-bit
// handshake: a single-phase write, no execute rewrite. It does not increment
// the device error counter. A pending error state is acknowledged first so
// the cut itself is latched.
func (s *Session) FastStop() error {
	w, err := s.seq.readStatus()
	if err != nil {
		return err
	}
	s.last = w.Operating
	if w.Operating == StatusError {
		if err := s.seq.acknowledge(); err != nil {
			return err
		}
	}
	return s.bus.WriteRegister(regCommand, cmdFastStop)
}

func (s *Session) clear() error {
	w, err := s.policy.clear()
	if err != nil {
		return err
	}
	s.last = w.Operating
	return nil
}

// ---- QUERIES ----

// OperatingStatus reads and decodes the current operating status.
func (s *Session) OperatingStatus() (OperatingStatus, error) {
	w, err := s.seq.readStatus()
	if err != nil {
		return s.last, err
	}
	s.last = w.Operating
	return w.Operating, nil
}

// Success reads the success bit of the last executed command.
func (s *Session) Success() (bool, error) {
	w, err := s.seq.readStatus()
	if err != nil {
		return false, err
	}
	return w.Success, nil
}

// PositionPercent reads the relative finger position, 0 closed .. 100 open.
func (s *Session) PositionPercent() (int, error) {
	regs, err := s.bus.ReadRegisters(regPosition, 2)
	if err != nil {
		return 0, fmt.Errorf("gripper: read position: %w", err)
	}
	if len(regs) != 2 {
		return 0, fmt.Errorf("gripper: short position read: got=%d regs want=2", len(regs))
	}
	return decodePosition(regs[0], regs[1]), nil
}

// SetLinkTimeout sets the device link inactivity timeout in seconds.
// 0 disables the timeout.
func (s *Session) SetLinkTimeout(seconds uint16) error {
	return s.bus.WriteRegister(regLinkTimeout, seconds)
}

// Close releases the underlying bus connection.
func (s *Session) Close() error {
	return s.bus.Close()
}
