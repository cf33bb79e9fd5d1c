/*
NAME
  crf.go

DESCRIPTION
  crf.go provides the accessor and initializer for CRF (Clock Reference
  Format) PDUs, which carry timestamps used by a listener to recover a
  media clock. CRF does not compose the shared Stream accessor: it has its
  own subtype_data layout and a single 64-bit packet_info word, with no
  avtp_time.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package avtp

import "github.com/pkg/errors"

// CRFField identifies a field of a CRF PDU.
type CRFField uint8

const (
	CRFSV CRFField = iota
	CRFMR
	CRFFS
	CRFTU
	CRFSeqNum
	CRFType
	CRFStreamID
	CRFPull
	CRFBaseFreq
	CRFDataLen
	CRFTimestampInterval
)

// CRF 'type' field values.
const (
	CRFTypeUser         uint64 = 0x00
	CRFTypeAudioSample  uint64 = 0x01
	CRFTypeVideoFrame   uint64 = 0x02
	CRFTypeVideoLine    uint64 = 0x03
	CRFTypeMachineCycle uint64 = 0x04
)

// CRF 'pull' field values.
const (
	CRFPullMultBy1          uint64 = 0x00
	CRFPullMultBy1Over1_001 uint64 = 0x01
	CRFPullMultBy1_001      uint64 = 0x02
	CRFPullMultBy24Over25   uint64 = 0x03
	CRFPullMultBy25Over24   uint64 = 0x04
	CRFPullMultBy1Over8     uint64 = 0x05
)

// crfRegistry reproduces avtp_crf.c's shifts: subtype_data fields SV=23,
// MR=19, FS=17, TU=16, SEQ_NUM=8..15, TYPE=0..7 (SV, MR and SEQ_NUM sit
// where the stream header has them; CRF's TU does not, the stream header's
// TU is at shift 0); packet_info is a single 64-bit word
// with PULL at shift 61 (3 bits), BASE_FREQ at shift 32 (29 bits),
// CRF_DATA_LEN at shift 16 (16 bits), TIMESTAMP_INTERVAL at shift 0 (16
// bits).
var crfRegistry = map[CRFField]fieldDescriptor{
	CRFSV:     {word: wordSubtypeData32, mask: 0x00800000, shift: 23},
	CRFMR:     {word: wordSubtypeData32, mask: 0x00080000, shift: 19},
	CRFFS:     {word: wordSubtypeData32, mask: 0x00020000, shift: 17},
	CRFTU:     {word: wordSubtypeData32, mask: 0x00010000, shift: 16},
	CRFSeqNum: {word: wordSubtypeData32, mask: 0x0000FF00, shift: 8},
	CRFType:   {word: wordSubtypeData32, mask: 0x000000FF, shift: 0},

	CRFPull:              {word: wordPacketInfo64, mask: bitmask64(3) << 61, shift: 61},
	CRFBaseFreq:          {word: wordPacketInfo64, mask: bitmask64(29) << 32, shift: 32},
	CRFDataLen:           {word: wordPacketInfo64, mask: bitmask64(16) << 16, shift: 16},
	CRFTimestampInterval: {word: wordPacketInfo64, mask: bitmask64(16), shift: 0},
}

// GetCRF returns the value of field from a CRF PDU.
func GetCRF(pdu []byte, field CRFField) (uint64, error) {
	if field == CRFStreamID {
		if pdu == nil || len(pdu) < offStreamID+8 {
			return 0, errors.Wrap(ErrInvalidArgument, "crf: pdu too short for stream_id")
		}
		return loadBE64(pdu, offStreamID), nil
	}
	d, ok := crfRegistry[field]
	if !ok {
		return 0, errors.Wrapf(ErrInvalidArgument, "crf: unrecognized field %v", field)
	}
	return getField(pdu, 0, d)
}

// SetCRF sets field of a CRF PDU to val.
func SetCRF(pdu []byte, field CRFField, val uint64) error {
	if field == CRFStreamID {
		if pdu == nil || len(pdu) < offStreamID+8 {
			return errors.Wrap(ErrInvalidArgument, "crf: pdu too short for stream_id")
		}
		storeBE64(pdu, offStreamID, val)
		return nil
	}
	d, ok := crfRegistry[field]
	if !ok {
		return errors.Wrapf(ErrInvalidArgument, "crf: unrecognized field %v", field)
	}
	return setField(pdu, 0, d, val)
}

// InitCRF zeroes pdu's fixed header (crfFixedHdrSize bytes) and sets
// subtype=CRF, sv=1.
func InitCRF(pdu []byte) error {
	if pdu == nil || len(pdu) < crfFixedHdrSize {
		return errors.Wrap(ErrInvalidArgument, "crf: pdu too short")
	}
	for i := 0; i < crfFixedHdrSize; i++ {
		pdu[i] = 0
	}
	if err := SetCommon(pdu, Subtype, SubtypeCRF); err != nil {
		return err
	}
	return SetCRF(pdu, CRFSV, 1)
}
