// internal/gripper/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/goburrow/modbus"
)

// Client implements gripper.RegisterBus over Modbus TCP.
// Reads use input registers (FC 4); writes use FC 6 / FC 16, matching the
// device register map. The adapter is geometry-only: no command semantics.
type Client struct {
	handler *modbus.TCPClientHandler
	client  modbus.Client
}

// Config is minimal transport config.
type Config struct {
	Endpoint string
	UnitID   uint8
	Timeout  time.Duration

	// LogTraffic dumps raw ADUs to stdout. Debug aid only.
	LogTraffic bool
}

// New creates a connected Modbus TCP client. Connection failure is fatal to
// construction.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("gripper modbus: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID
	if cfg.LogTraffic {
		h.Logger = log.New(os.Stdout, "modbus: ", log.LstdFlags)
	}

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("gripper modbus: connect %s: %w", cfg.Endpoint, err)
	}

	return &Client{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

// Close closes the TCP connection.
func (c *Client) Close() error {
	if c == nil || c.handler == nil {
		return nil
	}
	return c.handler.Close()
}

// ---- gripper.RegisterBus interface ----

func (c *Client) ReadRegisters(addr, qty uint16) ([]uint16, error) {
	raw, err := c.client.ReadInputRegisters(addr, qty)
	if err != nil {
		return nil, err
	}
	if len(raw) != int(qty)*2 {
		return nil, fmt.Errorf("gripper modbus: short read: got=%d bytes want=%d", len(raw), qty*2)
	}
	return unpackRegisters(raw), nil
}

func (c *Client) WriteRegister(addr, value uint16) error {
	_, err := c.client.WriteSingleRegister(addr, value)
	return err
}

func (c *Client) WriteRegisters(addr uint16, values []uint16) error {
	_, err := c.client.WriteMultipleRegisters(addr, uint16(len(values)), packRegisters(values))
	return err
}

// ---- helpers (pure geometry) ----

func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}

func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
