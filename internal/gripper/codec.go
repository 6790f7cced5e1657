// internal/gripper/codec.go
package gripper

import "math"

// positionMax is the maximum finger travel in mm. The device reports and
// accepts positions as IEEE-754 f32 millimeters; callers use percent where
// 0 = closed and 100 = fully open.
const positionMax = 40.683074951171875

// encodePosition converts an open-percentage into the big-endian f32 register
// pair of the move command payload.
func encodePosition(percent int) (hi, lo uint16, err error) {
	if percent < 0 || percent > 100 {
		return 0, 0, &RangeError{Param: "position", Value: percent, Min: 0, Max: 100}
	}
	mm := (100 - float64(percent)) / 100 * positionMax
	bits := math.Float32bits(float32(mm))
	return uint16(bits >> 16), uint16(bits), nil
}

// decodePosition reconstructs the open-percentage from the position register
// pair, truncating toward zero.
func decodePosition(hi, lo uint16) int {
	bits := uint32(hi)<<16 | uint32(lo)
	mm := float64(math.Float32frombits(bits))
	return int((positionMax - mm) / positionMax * 100)
}

// encodeForce converts a gripping force level (1 weakest .. 4 strongest) into
// the second word of the grip command payload.
func encodeForce(level int) (uint16, error) {
	if level < 1 || level > 4 {
		return 0, &RangeError{Param: "force", Value: level, Min: 1, Max: 4}
	}
	return uint16(4-level) << 8, nil
}
