package pio

import "fmt"

// Bit positions for the three packed configuration registers, matching
// the RP2040's EXECCTRL/SHIFTCTRL/PINCTRL layout. Unused bits always
// read and are preserved as 0.
const (
	execSideEnPos     = 30
	execSidePindirPos = 29
	execJmpPinPos     = 24
	execJmpPinWidth   = 5
	execWrapTopPos    = 12
	execWrapTopWidth  = 5
	execWrapBotPos    = 7
	execWrapBotWidth  = 5
	execStatusSelPos  = 4
	execStatusNPos    = 0
	execStatusNWidth  = 4

	shiftJoinRXPos     = 31
	shiftJoinTXPos     = 30
	shiftPullThreshPos = 25
	shiftThreshWidth   = 5
	shiftPushThreshPos = 20
	shiftOutDirPos     = 19
	shiftInDirPos      = 18
	shiftAutopullPos   = 17
	shiftAutopushPos   = 16

	pinSidesetCountPos   = 29
	pinSidesetCountWidth = 3
	pinSetCountPos       = 26
	pinSetCountWidth     = 3
	pinOutCountPos       = 20
	pinOutCountWidth     = 6
	pinInBasePos         = 15
	pinInBaseWidth       = 5
	pinSidesetBasePos    = 10
	pinSidesetBaseWidth  = 5
	pinSetBasePos        = 5
	pinSetBaseWidth      = 5
	pinOutBasePos        = 0
	pinOutBaseWidth      = 5
)

func getBits(reg uint32, pos, width uint) uint32 {
	return shiftRight32(reg, pos) & mask32(width)
}

func setBits(reg uint32, pos, width uint, value uint32) uint32 {
	m := shiftLeft32(mask32(width), pos)
	return (reg &^ m) | (shiftLeft32(value, pos) & m)
}

func getBit(reg uint32, pos uint) bool { return getBits(reg, pos, 1) != 0 }

func setBit(reg uint32, pos uint, v bool) uint32 {
	if v {
		return setBits(reg, pos, 1, 1)
	}
	return setBits(reg, pos, 1, 0)
}

// SidePindir selects whether side-set drives pin levels or pin
// directions.
type SidePindir uint8

const (
	SideGPIOLevels SidePindir = 0
	SidePinDirs    SidePindir = 1
)

// execCtrl holds the unpacked EXECCTRL fields.
type execCtrl struct {
	SideEn     bool
	SidePindir SidePindir
	JmpPin     uint8
	WrapTop    uint8
	WrapBottom uint8
	StatusSel  bool
	StatusN    uint8
}

func packExecCtrl(c execCtrl) uint32 {
	var r uint32
	r = setBit(r, execSideEnPos, c.SideEn)
	r = setBits(r, execSidePindirPos, 1, uint32(c.SidePindir))
	r = setBits(r, execJmpPinPos, execJmpPinWidth, uint32(c.JmpPin))
	r = setBits(r, execWrapTopPos, execWrapTopWidth, uint32(c.WrapTop))
	r = setBits(r, execWrapBotPos, execWrapBotWidth, uint32(c.WrapBottom))
	r = setBit(r, execStatusSelPos, c.StatusSel)
	r = setBits(r, execStatusNPos, execStatusNWidth, uint32(c.StatusN))
	return r
}

func unpackExecCtrl(r uint32) execCtrl {
	return execCtrl{
		SideEn:     getBit(r, execSideEnPos),
		SidePindir: SidePindir(getBits(r, execSidePindirPos, 1)),
		JmpPin:     uint8(getBits(r, execJmpPinPos, execJmpPinWidth)),
		WrapTop:    uint8(getBits(r, execWrapTopPos, execWrapTopWidth)),
		WrapBottom: uint8(getBits(r, execWrapBotPos, execWrapBotWidth)),
		StatusSel:  getBit(r, execStatusSelPos),
		StatusN:    uint8(getBits(r, execStatusNPos, execStatusNWidth)),
	}
}

// shiftCtrl holds the unpacked SHIFTCTRL fields.
type shiftCtrl struct {
	JoinRX      bool
	JoinTX      bool
	PullThresh  uint8
	PushThresh  uint8
	OutShiftDir ShiftDir
	InShiftDir  ShiftDir
	Autopull    bool
	Autopush    bool
}

func packShiftCtrl(c shiftCtrl) uint32 {
	var r uint32
	r = setBit(r, shiftJoinRXPos, c.JoinRX)
	r = setBit(r, shiftJoinTXPos, c.JoinTX)
	r = setBits(r, shiftPullThreshPos, shiftThreshWidth, uint32(c.PullThresh))
	r = setBits(r, shiftPushThreshPos, shiftThreshWidth, uint32(c.PushThresh))
	r = setBits(r, shiftOutDirPos, 1, uint32(c.OutShiftDir))
	r = setBits(r, shiftInDirPos, 1, uint32(c.InShiftDir))
	r = setBit(r, shiftAutopullPos, c.Autopull)
	r = setBit(r, shiftAutopushPos, c.Autopush)
	return r
}

func unpackShiftCtrl(r uint32) shiftCtrl {
	return shiftCtrl{
		JoinRX:      getBit(r, shiftJoinRXPos),
		JoinTX:      getBit(r, shiftJoinTXPos),
		PullThresh:  uint8(getBits(r, shiftPullThreshPos, shiftThreshWidth)),
		PushThresh:  uint8(getBits(r, shiftPushThreshPos, shiftThreshWidth)),
		OutShiftDir: ShiftDir(getBits(r, shiftOutDirPos, 1)),
		InShiftDir:  ShiftDir(getBits(r, shiftInDirPos, 1)),
		Autopull:    getBit(r, shiftAutopullPos),
		Autopush:    getBit(r, shiftAutopushPos),
	}
}

// pinCtrl holds the unpacked PINCTRL fields.
type pinCtrl struct {
	SidesetCount uint8
	SetCount     uint8
	OutCount     uint8
	InBase       uint8
	SidesetBase  uint8
	SetBase      uint8
	OutBase      uint8
}

func packPinCtrl(c pinCtrl) uint32 {
	var r uint32
	r = setBits(r, pinSidesetCountPos, pinSidesetCountWidth, uint32(c.SidesetCount))
	r = setBits(r, pinSetCountPos, pinSetCountWidth, uint32(c.SetCount))
	r = setBits(r, pinOutCountPos, pinOutCountWidth, uint32(c.OutCount))
	r = setBits(r, pinInBasePos, pinInBaseWidth, uint32(c.InBase))
	r = setBits(r, pinSidesetBasePos, pinSidesetBaseWidth, uint32(c.SidesetBase))
	r = setBits(r, pinSetBasePos, pinSetBaseWidth, uint32(c.SetBase))
	r = setBits(r, pinOutBasePos, pinOutBaseWidth, uint32(c.OutBase))
	return r
}

func unpackPinCtrl(r uint32) pinCtrl {
	return pinCtrl{
		SidesetCount: uint8(getBits(r, pinSidesetCountPos, pinSidesetCountWidth)),
		SetCount:     uint8(getBits(r, pinSetCountPos, pinSetCountWidth)),
		OutCount:     uint8(getBits(r, pinOutCountPos, pinOutCountWidth)),
		InBase:       uint8(getBits(r, pinInBasePos, pinInBaseWidth)),
		SidesetBase:  uint8(getBits(r, pinSidesetBasePos, pinSidesetBaseWidth)),
		SetBase:      uint8(getBits(r, pinSetBasePos, pinSetBaseWidth)),
		OutBase:      uint8(getBits(r, pinOutBasePos, pinOutBaseWidth)),
	}
}

func validateRange(name string, v, max uint8) error {
	if v > max {
		return fmt.Errorf("%s: %w (got %d, max %d)", name, ErrInvalidArgument, v, max)
	}
	return nil
}
