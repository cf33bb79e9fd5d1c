/*
NAME
  crf_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package avtp

import "testing"

// TestCRFSVSetLeavesStreamIDAndPacketInfoZero covers concrete scenario 1:
// subtype_data is 0x00800000 after crf_pdu_set(SV, 1) on a zeroed buffer;
// stream_id and packet_info remain zero.
func TestCRFSVSetLeavesStreamIDAndPacketInfoZero(t *testing.T) {
	pdu := make([]byte, crfFixedHdrSize)
	if err := SetCRF(pdu, CRFSV, 1); err != nil {
		t.Fatal(err)
	}
	if got := loadBE32(pdu, offSubtypeData); got != 0x00800000 {
		t.Errorf("subtype_data: got %#x, want 0x00800000", got)
	}
	if got := loadBE64(pdu, offStreamID); got != 0 {
		t.Errorf("stream_id: got %#x, want 0", got)
	}
	if got := loadBE64(pdu, offCRFPacketInfo); got != 0 {
		t.Errorf("packet_info: got %#x, want 0", got)
	}
}

// TestInitCRFWord covers the second half of scenario 1: after crf_pdu_init
// the subtype_data word is 0x04800000 (subtype=CRF, sv=1).
func TestInitCRFWord(t *testing.T) {
	pdu := make([]byte, crfFixedHdrSize)
	if err := InitCRF(pdu); err != nil {
		t.Fatal(err)
	}
	if got := loadBE32(pdu, offSubtypeData); got != 0x04800000 {
		t.Errorf("subtype_data: got %#x, want 0x04800000", got)
	}
}

func TestCRFPacketInfo64RoundTrip(t *testing.T) {
	pdu := make([]byte, crfFixedHdrSize)
	if err := SetCRF(pdu, CRFPull, CRFPullMultBy1Over8); err != nil {
		t.Fatal(err)
	}
	if err := SetCRF(pdu, CRFBaseFreq, 48000); err != nil {
		t.Fatal(err)
	}
	if err := SetCRF(pdu, CRFDataLen, 48); err != nil {
		t.Fatal(err)
	}
	if err := SetCRF(pdu, CRFTimestampInterval, 6); err != nil {
		t.Fatal(err)
	}

	if got, err := GetCRF(pdu, CRFPull); err != nil || got != CRFPullMultBy1Over8 {
		t.Errorf("Pull: got %v, err %v", got, err)
	}
	if got, err := GetCRF(pdu, CRFBaseFreq); err != nil || got != 48000 {
		t.Errorf("BaseFreq: got %v, err %v", got, err)
	}
	if got, err := GetCRF(pdu, CRFDataLen); err != nil || got != 48 {
		t.Errorf("DataLen: got %v, err %v", got, err)
	}
	if got, err := GetCRF(pdu, CRFTimestampInterval); err != nil || got != 6 {
		t.Errorf("TimestampInterval: got %v, err %v", got, err)
	}
}

func TestCRFStreamIDRoundTrip(t *testing.T) {
	pdu := make([]byte, crfFixedHdrSize)
	const id = uint64(0xAABBCCDDEEFF0002)
	if err := SetCRF(pdu, CRFStreamID, id); err != nil {
		t.Fatal(err)
	}
	got, err := GetCRF(pdu, CRFStreamID)
	if err != nil || got != id {
		t.Errorf("got %#x, err %v, want %#x", got, err, id)
	}
}
