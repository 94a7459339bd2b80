package shmap

import (
	"encoding/binary"
	"fmt"
)

const (
	headerFieldOffset = 0x04
	headerSkip        = 8
	flagBlockOffset   = 0x3c
)

// ResolvedOffsets holds the chain of header reads leading to the flag.
type ResolvedOffsets struct {
	Val1            uint16
	OffsetB         int
	Val2            uint16
	FinalOffsetBase int
}

func (r ResolvedOffsets) String() string {
	return fmt.Sprintf("val1=%04X offsetB=%X val2=%04X base=%X", r.Val1, r.OffsetB, r.Val2, r.FinalOffsetBase)
}

/* The block between the two header fields is variable sized, so the flag
 * can only be found by following val1 and then val2. */
func Resolve(buf []byte) (ResolvedOffsets, error) {
	var r ResolvedOffsets

	if len(buf) < headerFieldOffset+2 {
		return r, &FormatError{Reason: "header truncated"}
	}
	r.Val1 = binary.LittleEndian.Uint16(buf[headerFieldOffset:])
	r.OffsetB = int(r.Val1) + headerSkip

	if r.OffsetB+2 > len(buf) {
		return r, &FormatError{Reason: "secondary field out of range"}
	}
	r.Val2 = binary.LittleEndian.Uint16(buf[r.OffsetB:])
	r.FinalOffsetBase = r.OffsetB + flagBlockOffset + int(r.Val2)

	return r, nil
}
