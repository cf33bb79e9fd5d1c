/*
NAME
  cvf_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package avtp

import "testing"

// TestCVFH264TimestampBigEndian covers concrete scenario 3: writing
// H264_TIMESTAMP = 0x80C0FFEE produces the big-endian byte sequence 80 C0
// FF EE at the start of the payload, and reads back unchanged.
func TestCVFH264TimestampBigEndian(t *testing.T) {
	pdu := make([]byte, streamFixedHdrSize+4)
	payloadOff := streamFixedHdrSize
	if err := SetCVF(pdu, payloadOff, CVFH264Timestamp, 0x80C0FFEE); err != nil {
		t.Fatal(err)
	}

	want := []byte{0x80, 0xC0, 0xFF, 0xEE}
	got := pdu[payloadOff : payloadOff+4]
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	v, err := GetCVF(pdu, payloadOff, CVFH264Timestamp)
	if err != nil || v != 0x80C0FFEE {
		t.Errorf("got %#x, err %v, want 0x80C0FFEE", v, err)
	}
}

func TestInitCVFDefaults(t *testing.T) {
	pdu := make([]byte, streamFixedHdrSize)
	if err := InitCVF(pdu, CVFFormatSubtypeH264); err != nil {
		t.Fatal(err)
	}
	if got, err := GetCommon(pdu, Subtype); err != nil || got != SubtypeCVF {
		t.Errorf("Subtype: got %#x, err %v", got, err)
	}
	if got, err := GetCVF(pdu, 0, CVFFormat); err != nil || got != CVFFormatRFC {
		t.Errorf("Format: got %#x, err %v, want RFC", got, err)
	}
	if got, err := GetCVF(pdu, 0, CVFFormatSubtype); err != nil || got != CVFFormatSubtypeH264 {
		t.Errorf("FormatSubtype: got %#x, err %v, want H264", got, err)
	}
}

func TestInitCVFRejectsOutOfRangeSubtype(t *testing.T) {
	pdu := make([]byte, streamFixedHdrSize)
	if err := InitCVF(pdu, 0xFF); err == nil {
		t.Error("expected error for out-of-range format_subtype")
	}
}
