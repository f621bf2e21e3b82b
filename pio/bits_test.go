package pio

import "testing"

func TestMask32(t *testing.T) {
	cases := []struct {
		n    uint
		want uint32
	}{
		{0, 0},
		{1, 0x1},
		{4, 0xf},
		{31, 0x7fffffff},
		{32, 0xffffffff},
		{40, 0xffffffff},
	}
	for _, c := range cases {
		if got := mask32(c.n); got != c.want {
			t.Errorf("mask32(%d) = 0x%x, want 0x%x", c.n, got, c.want)
		}
	}
}

func TestShiftFullWord(t *testing.T) {
	if got := shiftRight32(0xdeadbeef, 32); got != 0 {
		t.Errorf("shiftRight32(x, 32) = 0x%x, want 0", got)
	}
	if got := shiftLeft32(0xdeadbeef, 32); got != 0 {
		t.Errorf("shiftLeft32(x, 32) = 0x%x, want 0", got)
	}
}

func TestReverse32Involution(t *testing.T) {
	v := uint32(0x12345678)
	if got := reverse32(reverse32(v)); got != v {
		t.Errorf("reverse32(reverse32(v)) = 0x%x, want 0x%x", got, v)
	}
}
