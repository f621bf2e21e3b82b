package pio

import "testing"

func TestExecCtrlRoundTrip(t *testing.T) {
	c := execCtrl{
		SideEn:     true,
		SidePindir: SidePinDirs,
		JmpPin:     17,
		WrapTop:    31,
		WrapBottom: 3,
		StatusSel:  true,
		StatusN:    9,
	}
	got := unpackExecCtrl(packExecCtrl(c))
	if got != c {
		t.Errorf("round trip = %+v, want %+v", got, c)
	}
}

func TestShiftCtrlRoundTrip(t *testing.T) {
	c := shiftCtrl{
		JoinRX:      true,
		PullThresh:  5,
		PushThresh:  17,
		OutShiftDir: ShiftRight,
		InShiftDir:  ShiftLeft,
		Autopull:    true,
	}
	got := unpackShiftCtrl(packShiftCtrl(c))
	if got != c {
		t.Errorf("round trip = %+v, want %+v", got, c)
	}
}

func TestPinCtrlRoundTrip(t *testing.T) {
	c := pinCtrl{
		SidesetCount: 5,
		SetCount:     5,
		OutCount:     31,
		InBase:       7,
		SidesetBase:  11,
		SetBase:      13,
		OutBase:      17,
	}
	got := unpackPinCtrl(packPinCtrl(c))
	if got != c {
		t.Errorf("round trip = %+v, want %+v", got, c)
	}
}

func TestReservedBitsReadZero(t *testing.T) {
	// Writing only documented fields must leave bit 31 of EXECCTRL
	// (unused) at zero.
	packed := packExecCtrl(execCtrl{SideEn: true})
	if packed&(1<<31) != 0 {
		t.Errorf("unused EXECCTRL bit 31 set: 0x%x", packed)
	}
}

func TestValidateRange(t *testing.T) {
	if err := validateRange("test", 5, 5); err != nil {
		t.Errorf("5 should be within max 5: %v", err)
	}
	if err := validateRange("test", 6, 5); err == nil {
		t.Error("6 should exceed max 5")
	}
}
