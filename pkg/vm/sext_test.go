package vm

import (
	"errors"
	"testing"
)

func TestSignExtendPositive(t *testing.T) {
	got, err := SignExtend(0b00011, 5)
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, got == 3, "got %#04x, want 0x0003", got)
}

func TestSignExtendNegative(t *testing.T) {
	got, err := SignExtend(0b11110, 5) // -2 in 5 bits
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, got == 0xFFFE, "got %#04x, want 0xFFFE", got)
}

func TestSignExtendFullWidth(t *testing.T) {
	got, err := SignExtend(0xFFFF, 16)
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, got == 0xFFFF, "got %#04x, want 0xFFFF", got)
}

func TestSignExtendZeroWidthFails(t *testing.T) {
	_, err := SignExtend(0, 0)
	assert(t, errors.Is(err, ErrArithmetic), "got %v, want ErrArithmetic", err)
}

func TestSignExtendRoundTrip(t *testing.T) {
	// Exhaustive for widths 1-6, 9, 11 and 12, which include the widths
	// the instruction set actually uses (imm5, offset6, PCoffset9,
	// PCoffset11); widths 7, 8, 10 and 13-16 are not covered here.
	for _, width := range []uint{1, 2, 3, 4, 5, 6, 9, 11, 12} {
		max := 1 << width
		for x := 0; x < max; x++ {
			got, err := SignExtend(uint16(x), width)
			assert(t, err == nil, "unexpected error at width %d x %d: %v", width, x, err)
			want := int32(x)
			if (x>>(width-1))&1 == 1 {
				want -= int32(max)
			}
			gotSigned := int32(int16(got))
			assert(t, gotSigned == want, "width %d x %#x: got %d want %d", width, x, gotSigned, want)
		}
	}
}
