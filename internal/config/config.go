// internal/config/config.go
package config

type Config struct {
	Gripper GripperConfig `yaml:"gripper"`
}

// ---- DEVICE ----

type GripperConfig struct {
	Endpoint   string `yaml:"endpoint"`
	UnitID     uint8  `yaml:"unit_id"`
	TimeoutMs  int    `yaml:"timeout_ms"`
	LogTraffic bool   `yaml:"log_traffic"`

	Handshake HandshakeConfig `yaml:"handshake"`
}

// ---- HANDSHAKE TIMING ----

type HandshakeConfig struct {
	SettleMs       int `yaml:"settle_ms"`
	ArmDelayMs     int `yaml:"arm_delay_ms"`
	AcceptBudget   int `yaml:"accept_budget"`
	SuccessPollMs  int `yaml:"success_poll_ms"`
	SuccessDelayMs int `yaml:"success_delay_ms"`
}
