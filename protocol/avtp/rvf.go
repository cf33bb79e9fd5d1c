/*
NAME
  rvf.go

DESCRIPTION
  rvf.go provides the accessor and initializer for RVF (Raw Video Format)
  stream PDUs: uncompressed video frames, carrying a 64-bit RAW header
  sub-header in the payload.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package avtp

import "github.com/pkg/errors"

// RVFField identifies a field of an RVF stream PDU.
type RVFField uint8

const (
	RVFSV RVFField = iota
	RVFMR
	RVFTV
	RVFSeqNum
	RVFTU
	RVFStreamID
	RVFTimestamp
	RVFStreamDataLen
	RVFActivePixels
	RVFTotalLines
	RVFAP
	RVFF
	RVFEF
	RVFEvt
	RVFPD
	RVFI
	RVFRawPixelDepth
	RVFRawPixelFormat
	RVFRawFrameRate
	RVFRawColorspace
	RVFRawNumLines
	RVFRawISeqNum
	RVFRawLineNumber
)

// RVF 'pixel depth' field values.
const (
	RVFPixelDepth8    uint64 = 0x01
	RVFPixelDepth10   uint64 = 0x02
	RVFPixelDepth12   uint64 = 0x03
	RVFPixelDepth16   uint64 = 0x04
	RVFPixelDepthUser uint64 = 0x0F
)

// RVF 'pixel format' field values.
const (
	RVFPixelFormatMono      uint64 = 0x00
	RVFPixelFormat411       uint64 = 0x01
	RVFPixelFormat420       uint64 = 0x02
	RVFPixelFormat422       uint64 = 0x03
	RVFPixelFormat444       uint64 = 0x04
	RVFPixelFormat4224      uint64 = 0x06
	RVFPixelFormat4444      uint64 = 0x07
	RVFPixelFormatBayerGRBG uint64 = 0x08
	RVFPixelFormatBayerRGGB uint64 = 0x09
	RVFPixelFormatBayerBGGR uint64 = 0x0A
	RVFPixelFormatBayerGBRG uint64 = 0x0B
	RVFPixelFormatUser      uint64 = 0x0F
)

// RVF 'frame rate' field values.
const (
	RVFFrameRate1    uint64 = 0x01
	RVFFrameRate2    uint64 = 0x02
	RVFFrameRate5    uint64 = 0x03
	RVFFrameRate10   uint64 = 0x10
	RVFFrameRate15   uint64 = 0x11
	RVFFrameRate20   uint64 = 0x12
	RVFFrameRate24   uint64 = 0x13
	RVFFrameRate25   uint64 = 0x14
	RVFFrameRate30   uint64 = 0x15
	RVFFrameRate48   uint64 = 0x16
	RVFFrameRate50   uint64 = 0x17
	RVFFrameRate60   uint64 = 0x18
	RVFFrameRate72   uint64 = 0x19
	RVFFrameRate85   uint64 = 0x1A
	RVFFrameRate100  uint64 = 0x30
	RVFFrameRate120  uint64 = 0x31
	RVFFrameRate150  uint64 = 0x32
	RVFFrameRate200  uint64 = 0x33
	RVFFrameRate240  uint64 = 0x34
	RVFFrameRate300  uint64 = 0x35
	RVFFrameRateUser uint64 = 0x0F
)

// RVF 'colorspace' field values.
const (
	RVFColorspaceYCbCr uint64 = 0x01
	RVFColorspaceSRGB  uint64 = 0x02
	RVFColorspaceYCgCo uint64 = 0x03
	RVFColorspaceGray  uint64 = 0x04
	RVFColorspaceXYZ   uint64 = 0x05
	RVFColorspaceYCM   uint64 = 0x06
	RVFColorspaceBT601 uint64 = 0x07
	RVFColorspaceBT709 uint64 = 0x08
	RVFColorspaceITUBT uint64 = 0x09
	RVFColorspaceUser  uint64 = 0x0F
)

var rvfStreamShared = map[RVFField]StreamField{
	RVFSV: SV, RVFMR: MR, RVFTV: TV, RVFSeqNum: SeqNum, RVFTU: TU,
	RVFStreamID: StreamID, RVFTimestamp: Timestamp, RVFStreamDataLen: StreamDataLen,
}

// rvfRegistry reproduces avtp_rvf.c's shifts: ACTIVE_PIXELS at shift 16
// (16 bits), TOTAL_LINES at shift 0 (16 bits) within format_specific; AP
// shift 15 (1 bit), F shift 13 (1 bit), EF shift 12 (1 bit), EVT shift 8
// (4 bits), PD shift 7 (1 bit), I shift 6 (1 bit) within packet_info.
var rvfRegistry = map[RVFField]fieldDescriptor{
	RVFActivePixels: {word: wordFormatSpecific32, mask: 0xFFFF0000, shift: 16},
	RVFTotalLines:   {word: wordFormatSpecific32, mask: 0x0000FFFF, shift: 0},

	RVFAP:  {word: wordPacketInfo32, mask: 0x00008000, shift: 15},
	RVFF:   {word: wordPacketInfo32, mask: 0x00002000, shift: 13},
	RVFEF:  {word: wordPacketInfo32, mask: 0x00001000, shift: 12},
	RVFEvt: {word: wordPacketInfo32, mask: 0x00000F00, shift: 8},
	RVFPD:  {word: wordPacketInfo32, mask: 0x00000080, shift: 7},
	RVFI:   {word: wordPacketInfo32, mask: 0x00000040, shift: 6},
}

// rvfRawRegistry reproduces the RAW header's 64-bit shifts: PIXEL_DEPTH at
// shift 52 (4 bits), PIXEL_FORMAT at shift 48 (4 bits), FRAME_RATE at
// shift 40 (8 bits), COLORSPACE at shift 36 (4 bits), NUM_LINES at shift
// 32 (4 bits), I_SEQ_NUM at shift 16 (8 bits), LINE_NUMBER at shift 0 (16
// bits).
var rvfRawRegistry = map[RVFField]fieldDescriptor{
	RVFRawPixelDepth:  {word: wordPayloadRAW64, mask: bitmask64(4) << 52, shift: 52},
	RVFRawPixelFormat: {word: wordPayloadRAW64, mask: bitmask64(4) << 48, shift: 48},
	RVFRawFrameRate:   {word: wordPayloadRAW64, mask: bitmask64(8) << 40, shift: 40},
	RVFRawColorspace:  {word: wordPayloadRAW64, mask: bitmask64(4) << 36, shift: 36},
	RVFRawNumLines:    {word: wordPayloadRAW64, mask: bitmask64(4) << 32, shift: 32},
	RVFRawISeqNum:     {word: wordPayloadRAW64, mask: bitmask64(8) << 16, shift: 16},
	RVFRawLineNumber:  {word: wordPayloadRAW64, mask: bitmask64(16), shift: 0},
}

// GetRVF returns the value of field from an RVF stream PDU. payloadOff is
// the byte offset of avtp_payload within pdu, required for the RAW
// header fields.
func GetRVF(pdu []byte, payloadOff int, field RVFField) (uint64, error) {
	if sf, ok := rvfStreamShared[field]; ok {
		return getStreamField(pdu, sf)
	}
	if d, ok := rvfRawRegistry[field]; ok {
		return getField(pdu, payloadOff, d)
	}
	d, ok := rvfRegistry[field]
	if !ok {
		return 0, errors.Wrapf(ErrInvalidArgument, "rvf: unrecognized field %v", field)
	}
	return getField(pdu, 0, d)
}

// SetRVF sets field of an RVF stream PDU to val.
func SetRVF(pdu []byte, payloadOff int, field RVFField, val uint64) error {
	if sf, ok := rvfStreamShared[field]; ok {
		return setStreamField(pdu, sf, val)
	}
	if d, ok := rvfRawRegistry[field]; ok {
		return setField(pdu, payloadOff, d, val)
	}
	d, ok := rvfRegistry[field]
	if !ok {
		return errors.Wrapf(ErrInvalidArgument, "rvf: unrecognized field %v", field)
	}
	return setField(pdu, 0, d, val)
}

// InitRVF zeroes pdu's fixed header and sets subtype=RVF, sv=1. No other
// defaults are written.
func InitRVF(pdu []byte) error {
	if pdu == nil || len(pdu) < streamFixedHdrSize {
		return errors.Wrap(ErrInvalidArgument, "rvf: pdu too short")
	}
	for i := 0; i < streamFixedHdrSize; i++ {
		pdu[i] = 0
	}
	if err := SetCommon(pdu, Subtype, SubtypeRVF); err != nil {
		return err
	}
	return setStreamField(pdu, SV, 1)
}
