/*
NAME
  rvf_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package avtp

import "testing"

// TestRVFRawPixelDepth covers concrete scenario 4: set(RAW_PIXEL_DEPTH,
// 0x04) yields the 64-bit payload word 0x0040000000000000.
func TestRVFRawPixelDepth(t *testing.T) {
	pdu := make([]byte, streamFixedHdrSize+8)
	payloadOff := streamFixedHdrSize
	if err := SetRVF(pdu, payloadOff, RVFRawPixelDepth, RVFPixelDepth16); err != nil {
		t.Fatal(err)
	}
	if got := loadBE64(pdu, payloadOff); got != 0x0040000000000000 {
		t.Errorf("raw header: got %#x, want 0x0040000000000000", got)
	}
	got, err := GetRVF(pdu, payloadOff, RVFRawPixelDepth)
	if err != nil || got != RVFPixelDepth16 {
		t.Errorf("got %v, err %v, want %v", got, err, RVFPixelDepth16)
	}
}

func TestRVFRawHeaderFieldsDoNotOverlap(t *testing.T) {
	pdu := make([]byte, streamFixedHdrSize+8)
	payloadOff := streamFixedHdrSize

	if err := SetRVF(pdu, payloadOff, RVFRawPixelFormat, RVFPixelFormat422); err != nil {
		t.Fatal(err)
	}
	if err := SetRVF(pdu, payloadOff, RVFRawLineNumber, 0xBEEF); err != nil {
		t.Fatal(err)
	}

	got, err := GetRVF(pdu, payloadOff, RVFRawPixelFormat)
	if err != nil || got != RVFPixelFormat422 {
		t.Errorf("PixelFormat disturbed: got %v, err %v", got, err)
	}
	got, err = GetRVF(pdu, payloadOff, RVFRawLineNumber)
	if err != nil || got != 0xBEEF {
		t.Errorf("LineNumber: got %#x, err %v, want 0xBEEF", got, err)
	}
}

func TestInitRVFDefaults(t *testing.T) {
	pdu := make([]byte, streamFixedHdrSize)
	if err := InitRVF(pdu); err != nil {
		t.Fatal(err)
	}
	if got, err := GetCommon(pdu, Subtype); err != nil || got != SubtypeRVF {
		t.Errorf("Subtype: got %#x, err %v", got, err)
	}
	if got, err := GetRVF(pdu, 0, RVFSV); err != nil || got != 1 {
		t.Errorf("SV: got %v, err %v, want 1", got, err)
	}
	if got, err := GetRVF(pdu, 0, RVFActivePixels); err != nil || got != 0 {
		t.Errorf("ActivePixels should default to 0: got %v, err %v", got, err)
	}
}
