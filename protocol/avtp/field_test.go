/*
NAME
  field_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package avtp

import (
	"bytes"
	"errors"
	"testing"
)

// TestGetSetFieldRoundTrip checks that a value written to a descriptor's
// bit range reads back unchanged.
func TestGetSetFieldRoundTrip(t *testing.T) {
	d := fieldDescriptor{word: wordFormatSpecific32, mask: 0x0003FF00, shift: 8}
	pdu := make([]byte, streamFixedHdrSize)

	if err := setField(pdu, 0, d, 0x3FF); err != nil {
		t.Fatalf("setField failed: %v", err)
	}
	got, err := getField(pdu, 0, d)
	if err != nil {
		t.Fatalf("getField failed: %v", err)
	}
	if got != 0x3FF {
		t.Errorf("got %#x, want %#x", got, 0x3FF)
	}
}

// TestSetFieldPreservesNeighbors checks that setting one field does not
// disturb bits belonging to an adjacent field in the same word.
func TestSetFieldPreservesNeighbors(t *testing.T) {
	chanPerFrame := fieldDescriptor{word: wordFormatSpecific32, mask: 0x0003FF00, shift: 8}
	bitDepth := fieldDescriptor{word: wordFormatSpecific32, mask: 0x000000FF, shift: 0}
	pdu := make([]byte, streamFixedHdrSize)

	if err := setField(pdu, 0, bitDepth, 0xFF); err != nil {
		t.Fatal(err)
	}
	if err := setField(pdu, 0, chanPerFrame, 0x3FF); err != nil {
		t.Fatal(err)
	}
	got, err := getField(pdu, 0, bitDepth)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0xFF {
		t.Errorf("neighbor field disturbed: got %#x, want %#x", got, 0xFF)
	}
}

// TestSetFieldMaskSaturation checks that a value exceeding a field's width
// is truncated to the field's mask, not spilled into neighboring bits.
func TestSetFieldMaskSaturation(t *testing.T) {
	d := fieldDescriptor{word: wordFormatSpecific32, mask: 0x000000FF, shift: 0}
	pdu := make([]byte, streamFixedHdrSize)

	if err := setField(pdu, 0, d, 0xFFFFFFFF); err != nil {
		t.Fatal(err)
	}
	got, err := getField(pdu, 0, d)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0xFF {
		t.Errorf("got %#x, want %#x", got, 0xFF)
	}
	if loadBE32(pdu, offFormatSpecific)&0xFFFFFF00 != 0 {
		t.Errorf("mask saturation spilled into neighboring bits: %#x", loadBE32(pdu, offFormatSpecific))
	}
}

// TestSetFieldIdempotent checks that setting the same value twice leaves
// the buffer identical to setting it once.
func TestSetFieldIdempotent(t *testing.T) {
	d := fieldDescriptor{word: wordFormatSpecific32, mask: 0xFF000000, shift: 24}
	pdu1 := make([]byte, streamFixedHdrSize)
	pdu2 := make([]byte, streamFixedHdrSize)

	setField(pdu1, 0, d, 0x42)
	setField(pdu2, 0, d, 0x42)
	setField(pdu2, 0, d, 0x42)

	if !bytes.Equal(pdu1, pdu2) {
		t.Errorf("double set not idempotent: %v != %v", pdu1, pdu2)
	}
}

// TestGetFieldNilPDU checks that a nil PDU returns InvalidArgument.
func TestGetFieldNilPDU(t *testing.T) {
	d := fieldDescriptor{word: wordFormatSpecific32, mask: 0xFF000000, shift: 24}
	_, err := getField(nil, 0, d)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v, want ErrInvalidArgument", err)
	}
}

// TestEndianProperty checks that each byte of a set 32-bit word matches the
// big-endian decomposition of the masked, shifted value.
func TestEndianProperty(t *testing.T) {
	d := fieldDescriptor{word: wordFormatSpecific32, mask: 0xFFFFFFFF, shift: 0}
	pdu := make([]byte, streamFixedHdrSize)
	v := uint64(0x80C0FFEE)

	if err := setField(pdu, 0, d, v); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x80, 0xC0, 0xFF, 0xEE}
	got := pdu[offFormatSpecific : offFormatSpecific+4]
	if !bytes.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
