/*
NAME
  aaf.go

DESCRIPTION
  aaf.go provides the accessor and initializer for AAF (AVTP Audio Format)
  stream PDUs: uncompressed PCM audio.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package avtp

import "github.com/pkg/errors"

// AAFField identifies a field of an AAF stream PDU. The first entries
// parallel StreamField; aafStreamShared maps each of them to its
// StreamField so that stream-shared requests are delegated to the Stream
// accessor.
type AAFField uint8

const (
	AAFSV AAFField = iota
	AAFMR
	AAFTV
	AAFSeqNum
	AAFTU
	AAFStreamID
	AAFTimestamp
	AAFStreamDataLen
	AAFFormat
	AAFNSR
	AAFChanPerFrame
	AAFBitDepth
	AAFSP
	AAFEvt
)

var aafStreamShared = map[AAFField]StreamField{
	AAFSV: SV, AAFMR: MR, AAFTV: TV, AAFSeqNum: SeqNum, AAFTU: TU,
	AAFStreamID: StreamID, AAFTimestamp: Timestamp, AAFStreamDataLen: StreamDataLen,
}

// aafRegistry holds the format_specific/packet_info layout exactly as
// avtp_aaf.c computes it: FORMAT at shift 24 (8 bits), NSR at shift 20 (4
// bits), CHAN_PER_FRAME at shift 8 (10 bits), BIT_DEPTH at shift 0 (8 bits)
// within format_specific; SP at shift 12 (1 bit) and EVT at shift 8 (4
// bits) within packet_info.
var aafRegistry = map[AAFField]fieldDescriptor{
	AAFFormat:       {word: wordFormatSpecific32, mask: 0xFF000000, shift: 24},
	AAFNSR:          {word: wordFormatSpecific32, mask: 0x00F00000, shift: 20},
	AAFChanPerFrame: {word: wordFormatSpecific32, mask: 0x0003FF00, shift: 8},
	AAFBitDepth:     {word: wordFormatSpecific32, mask: 0x000000FF, shift: 0},
	AAFSP:           {word: wordPacketInfo32, mask: 0x00001000, shift: 12},
	AAFEvt:          {word: wordPacketInfo32, mask: 0x00000F00, shift: 8},
}

// GetAAF returns the value of field from an AAF stream PDU.
func GetAAF(pdu []byte, field AAFField) (uint64, error) {
	if sf, ok := aafStreamShared[field]; ok {
		return getStreamField(pdu, sf)
	}
	d, ok := aafRegistry[field]
	if !ok {
		return 0, errors.Wrapf(ErrInvalidArgument, "aaf: unrecognized field %v", field)
	}
	return getField(pdu, 0, d)
}

// SetAAF sets field of an AAF stream PDU to val.
func SetAAF(pdu []byte, field AAFField, val uint64) error {
	if sf, ok := aafStreamShared[field]; ok {
		return setStreamField(pdu, sf, val)
	}
	d, ok := aafRegistry[field]
	if !ok {
		return errors.Wrapf(ErrInvalidArgument, "aaf: unrecognized field %v", field)
	}
	return setField(pdu, 0, d, val)
}

// InitAAF zeroes pdu's fixed header (streamFixedHdrSize bytes) and sets
// subtype=AAF, sv=1. Every other field is left at zero.
func InitAAF(pdu []byte) error {
	if pdu == nil || len(pdu) < streamFixedHdrSize {
		return errors.Wrap(ErrInvalidArgument, "aaf: pdu too short")
	}
	for i := 0; i < streamFixedHdrSize; i++ {
		pdu[i] = 0
	}
	if err := SetCommon(pdu, Subtype, SubtypeAAF); err != nil {
		return err
	}
	return SetAAF(pdu, AAFSV, 1)
}
