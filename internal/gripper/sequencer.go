// internal/gripper/sequencer.go
package gripper

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Timing holds the handshake timing and budget knobs.
// Zero fields are filled with defaults by NewSession.
type Timing struct {
	// Settle is the pause between the arm and execute writes of a bare
	// command, and between the steps of a recovery sequence.
	Settle time.Duration

	// ArmDelay is the pause between the arm and execute writes of a command
	// that carries a payload (grip, release, move).
	ArmDelay time.Duration

	// AcceptBudget is the maximum number of immediate status reads while
	// waiting for the device to latch a command.
	AcceptBudget int

	// SuccessPoll is the interval between success-bit reads.
	SuccessPoll time.Duration

	// SuccessDelay is the pause between command acceptance and the first
	// success-bit read.
	SuccessDelay time.Duration
}

const (
	defaultSettle       = 100 * time.Millisecond
	defaultArmDelay     = 50 * time.Millisecond
	defaultAcceptBudget = 1000
	defaultSuccessPoll  = 50 * time.Millisecond
	defaultSuccessDelay = time.Second
)

func (t *Timing) fillDefaults() {
	if t.Settle <= 0 {
		t.Settle = defaultSettle
	}
	if t.ArmDelay <= 0 {
		t.ArmDelay = defaultArmDelay
	}
	if t.AcceptBudget <= 0 {
		t.AcceptBudget = defaultAcceptBudget
	}
	if t.SuccessPoll <= 0 {
		t.SuccessPoll = defaultSuccessPoll
	}
	if t.SuccessDelay <= 0 {
		t.SuccessDelay = defaultSuccessDelay
	}
}

// sequencer drives the mandatory two-phase write protocol and confirms
// completion. It issues one command at a time; the device rejects overlap.
type sequencer struct {
	bus    RegisterBus
	timing Timing
}

// armAndExecute writes the frame with the execute bit of word 0 clear, waits
// the settle delay, then rewrites it with the execute bit set. The frame is
// immutable; both phases carry the same payload words.
func (s *sequencer) armAndExecute(frame []uint16) error {
	if len(frame) == 0 {
		return errors.New("gripper: empty command frame")
	}

	delay := s.timing.Settle
	if len(frame) > 1 {
		delay = s.timing.ArmDelay
	}

	if err := s.writeFrame(frame[0]&^executeBit, frame[1:]); err != nil {
		return fmt.Errorf("gripper: arm write: %w", err)
	}
	time.Sleep(delay)
	if err := s.writeFrame(frame[0]|executeBit, frame[1:]); err != nil {
		return fmt.Errorf("gripper: execute write: %w", err)
	}
	return nil
}

func (s *sequencer) writeFrame(word0 uint16, payload []uint16) error {
	if len(payload) == 0 {
		return s.bus.WriteRegister(regCommand, word0)
	}
	words := make([]uint16, 0, 1+len(payload))
	words = append(words, word0)
	words = append(words, payload...)
	return s.bus.WriteRegisters(regCommand, words)
}

// acknowledge clears an acknowledgeable error state. The actuator remains
// de-energized until the next command.
func (s *sequencer) acknowledge() error {
	return s.armAndExecute([]uint16{cmdAcknowledge})
}

// readStatus reads and decodes one fresh status word.
func (s *sequencer) readStatus() (StatusWord, error) {
	regs, err := s.bus.ReadRegisters(regStatus, 1)
	if err != nil {
		return StatusWord{}, fmt.Errorf("gripper: read status: %w", err)
	}
	if len(regs) != 1 {
		return StatusWord{}, errors.New("gripper: short status read")
	}
	return decodeStatus(regs[0]), nil
}

// waitAccepted busy-polls the status register until the device latches the
// execute-phase command. The loop is deliberately free of inter-read delay:
// the firmware's acceptance window is short and a sleep here can miss it.
// On budget exhaustion it runs the link soft reset and reports
// ErrAcceptTimeout; the command counts as unissued.
func (s *sequencer) waitAccepted() error {
	for i := 0; i < s.timing.AcceptBudget; i++ {
		w, err := s.readStatus()
		if err != nil {
			return err
		}
		if w.ProcessCommand {
			return nil
		}
	}
	if err := s.softReset(); err != nil {
		return err
	}
	return ErrAcceptTimeout
}

// softReset recovers a wedged firmware session: force the link inactivity
// timeout to 1 s so the device drops its session, restore never-timeout, then
// acknowledge. This is the only path that touches the timeout register outside
// SetLinkTimeout.
func (s *sequencer) softReset() error {
	if err := s.bus.WriteRegister(regLinkTimeout, 1); err != nil {
		return fmt.Errorf("gripper: soft reset: %w", err)
	}
	time.Sleep(s.timing.Settle)
	if err := s.bus.WriteRegister(regLinkTimeout, 0); err != nil {
		return fmt.Errorf("gripper: soft reset: %w", err)
	}
	time.Sleep(s.timing.Settle)
	return s.acknowledge()
}

// waitSuccess polls the success bit until the device reports the physical
// goal reached. Completion time is physically unbounded (a grip waits on a
// workpiece), so there is no internal deadline; bound it through ctx.
func (s *sequencer) waitSuccess(ctx context.Context) error {
	ticker := time.NewTicker(s.timing.SuccessPoll)
	defer ticker.Stop()

	for {
		w, err := s.readStatus()
		if err != nil {
			return err
		}
		if w.Success {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
