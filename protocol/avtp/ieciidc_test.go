/*
NAME
  ieciidc_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package avtp

import "testing"

// TestIECCIPDBS covers concrete scenario 2: set(CIP_DBS, 0xAA) on a zeroed
// PDU yields payload word cip_1 = 0x00AA0000; cip_2 remains zero.
func TestIECCIPDBS(t *testing.T) {
	pdu := make([]byte, streamFixedHdrSize+8)
	payloadOff := streamFixedHdrSize
	if err := SetIEC61883IIDC(pdu, payloadOff, IECCIPDBS, 0xAA); err != nil {
		t.Fatal(err)
	}
	if got := loadBE32(pdu, payloadOff); got != 0x00AA0000 {
		t.Errorf("cip_1: got %#x, want 0x00AA0000", got)
	}
	if got := loadBE32(pdu, payloadOff+4); got != 0 {
		t.Errorf("cip_2: got %#x, want 0", got)
	}
}

func TestInitIEC61883IIDCOrder(t *testing.T) {
	pdu := make([]byte, streamFixedHdrSize)
	if err := InitIEC61883IIDC(pdu, IECTagCIP); err != nil {
		t.Fatal(err)
	}
	if got, err := GetCommon(pdu, Subtype); err != nil || got != SubtypeIEC61883IIDC {
		t.Errorf("Subtype: got %#x, err %v", got, err)
	}
	if got, err := GetIEC61883IIDC(pdu, 0, IECSV); err != nil || got != 1 {
		t.Errorf("SV: got %v, err %v, want 1", got, err)
	}
	if got, err := GetIEC61883IIDC(pdu, 0, IECTcode); err != nil || got != 0x0A {
		t.Errorf("Tcode: got %#x, err %v, want 0x0A", got, err)
	}
	if got, err := GetIEC61883IIDC(pdu, 0, IECTag); err != nil || got != IECTagCIP {
		t.Errorf("Tag: got %v, err %v, want CIP", got, err)
	}
}

func TestInitIEC61883IIDCRejectsOutOfRangeTag(t *testing.T) {
	pdu := make([]byte, streamFixedHdrSize)
	if err := InitIEC61883IIDC(pdu, 0xFF); err == nil {
		t.Error("expected error for out-of-range tag")
	}
}

func TestIECCIPMutuallyExclusiveAlternatesShareBits(t *testing.T) {
	pdu := make([]byte, streamFixedHdrSize+8)
	payloadOff := streamFixedHdrSize
	if err := SetIEC61883IIDC(pdu, payloadOff, IECCIPTSF, 1); err != nil {
		t.Fatal(err)
	}
	got, err := GetIEC61883IIDC(pdu, payloadOff, IECCIPND)
	if err != nil || got != 1 {
		t.Errorf("IECCIPND should read back the bit IECCIPTSF wrote: got %v, err %v", got, err)
	}
}
