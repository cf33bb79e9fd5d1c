/*
NAME
  ieciidc.go

DESCRIPTION
  ieciidc.go provides the accessor and initializer for IEC 61883/IIDC
  stream PDUs: legacy FireWire-style isochronous transport, including the
  Common Isochronous Packet (CIP) header carried in the payload.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package avtp

import "github.com/pkg/errors"

// IEC61883IIDCField identifies a field of an IEC 61883/IIDC stream PDU.
type IEC61883IIDCField uint8

const (
	IECSV IEC61883IIDCField = iota
	IECMR
	IECTV
	IECSeqNum
	IECTU
	IECStreamID
	IECTimestamp
	IECStreamDataLen
	IECGV
	IECGatewayInfo
	IECTag
	IECChannel
	IECTcode
	IECSy
	IECCIPQI1
	IECCIPQI2
	IECCIPSID
	IECCIPDBS
	IECCIPFN
	IECCIPQPC
	IECCIPSPH
	IECCIPDBC
	IECCIPFMT
	IECCIPSYT
	IECCIPTSF
	IECCIPEvt
	IECCIPSFC
	IECCIPN
	IECCIPND
	IECCIPNoData
)

// IEC 61883/IIDC 'tag' field values.
const (
	IECTagNoCIP uint64 = 0x00
	IECTagCIP   uint64 = 0x01
)

var iecStreamShared = map[IEC61883IIDCField]StreamField{
	IECSV: SV, IECMR: MR, IECTV: TV, IECSeqNum: SeqNum, IECTU: TU,
	IECStreamID: StreamID, IECTimestamp: Timestamp, IECStreamDataLen: StreamDataLen,
}

// iecRegistry reproduces avtp_ieciidc.c's shifts exactly. GV lives in
// subtype_data (shift 17, 1 bit). TAG, CHANNEL, TCODE, SY live in
// packet_info: TAG shift 14 (2 bits), CHANNEL shift 8 (6 bits), TCODE
// shift 4 (4 bits), SY shift 0 (4 bits). The CIP header occupies two
// payload-resident 32-bit words, cip_1 and cip_2: QI_1/QI_2 both at shift
// 30 (2 bits); SID shift 24 (6 bits), DBS shift 16 (8 bits), FN shift 14
// (2 bits), QPC shift 11 (3 bits), SPH shift 10 (1 bit), DBC shift 0 (8
// bits) all in cip_1; FMT shift 24 (6 bits), SYT shift 0 (16 bits) in
// cip_2 unconditionally, and the FDF sub-fields TSF shift 23 (1 bit), EVT
// shift 20 (2 bits), SFC shift 16 (3 bits), N shift 19 (1 bit), ND shift
// 23 (1 bit), NO_DATA shift 16 (8 bits) also in cip_2 (mutually exclusive
// per fmt, not enforced here).
var iecRegistry = map[IEC61883IIDCField]fieldDescriptor{
	IECGV: {word: wordSubtypeData32, mask: 0x00020000, shift: 17},

	IECTag:     {word: wordPacketInfo32, mask: 0x0000C000, shift: 14},
	IECChannel: {word: wordPacketInfo32, mask: 0x00003F00, shift: 8},
	IECTcode:   {word: wordPacketInfo32, mask: 0x000000F0, shift: 4},
	IECSy:      {word: wordPacketInfo32, mask: 0x0000000F, shift: 0},

	IECCIPQI1: {word: wordPayloadCIP1_32, mask: 0xC0000000, shift: 30},
	IECCIPSID: {word: wordPayloadCIP1_32, mask: 0x3F000000, shift: 24},
	IECCIPDBS: {word: wordPayloadCIP1_32, mask: 0x00FF0000, shift: 16},
	IECCIPFN:  {word: wordPayloadCIP1_32, mask: 0x0000C000, shift: 14},
	IECCIPQPC: {word: wordPayloadCIP1_32, mask: 0x00003800, shift: 11},
	IECCIPSPH: {word: wordPayloadCIP1_32, mask: 0x00000400, shift: 10},
	IECCIPDBC: {word: wordPayloadCIP1_32, mask: 0x000000FF, shift: 0},

	IECCIPQI2: {word: wordPayloadCIP2_32, mask: 0xC0000000, shift: 30},
	IECCIPFMT: {word: wordPayloadCIP2_32, mask: 0x3F000000, shift: 24},
	IECCIPSYT: {word: wordPayloadCIP2_32, mask: 0x0000FFFF, shift: 0},

	IECCIPTSF:    {word: wordPayloadCIP2_32, mask: 0x00800000, shift: 23},
	IECCIPEvt:    {word: wordPayloadCIP2_32, mask: 0x00300000, shift: 20},
	IECCIPSFC:    {word: wordPayloadCIP2_32, mask: 0x00070000, shift: 16},
	IECCIPN:      {word: wordPayloadCIP2_32, mask: 0x00080000, shift: 19},
	IECCIPND:     {word: wordPayloadCIP2_32, mask: 0x00800000, shift: 23},
	IECCIPNoData: {word: wordPayloadCIP2_32, mask: 0x00FF0000, shift: 16},
}

// GetIEC61883IIDC returns the value of field from an IEC 61883/IIDC
// stream PDU. payloadOff is the byte offset of avtp_payload within pdu,
// required for the CIP header fields.
func GetIEC61883IIDC(pdu []byte, payloadOff int, field IEC61883IIDCField) (uint64, error) {
	if sf, ok := iecStreamShared[field]; ok {
		return getStreamField(pdu, sf)
	}
	if field == IECGatewayInfo {
		return getField(pdu, 0, fieldDescriptor{word: wordFormatSpecific32, mask: 0xFFFFFFFF, shift: 0})
	}
	d, ok := iecRegistry[field]
	if !ok {
		return 0, errors.Wrapf(ErrInvalidArgument, "ieciidc: unrecognized field %v", field)
	}
	return getField(pdu, payloadOff, d)
}

// SetIEC61883IIDC sets field of an IEC 61883/IIDC stream PDU to val.
func SetIEC61883IIDC(pdu []byte, payloadOff int, field IEC61883IIDCField, val uint64) error {
	if sf, ok := iecStreamShared[field]; ok {
		return setStreamField(pdu, sf, val)
	}
	if field == IECGatewayInfo {
		return setField(pdu, 0, fieldDescriptor{word: wordFormatSpecific32, mask: 0xFFFFFFFF, shift: 0}, val)
	}
	d, ok := iecRegistry[field]
	if !ok {
		return errors.Wrapf(ErrInvalidArgument, "ieciidc: unrecognized field %v", field)
	}
	return setField(pdu, payloadOff, d, val)
}

// InitIEC61883IIDC zeroes pdu's fixed header and sets subtype=IEC 61883/IIDC,
// sv=1, tcode=0x0A, tag=tag. tag must be <= IECTagCIP, checked before any
// mutation, matching avtp_ieciidc_pdu_init's argument-validation order.
func InitIEC61883IIDC(pdu []byte, tag uint64) error {
	if tag > IECTagCIP {
		return errors.Wrap(ErrInvalidArgument, "ieciidc: tag out of range")
	}
	if pdu == nil || len(pdu) < streamFixedHdrSize {
		return errors.Wrap(ErrInvalidArgument, "ieciidc: pdu too short")
	}
	for i := 0; i < streamFixedHdrSize; i++ {
		pdu[i] = 0
	}
	if err := SetCommon(pdu, Subtype, SubtypeIEC61883IIDC); err != nil {
		return err
	}
	if err := setStreamField(pdu, SV, 1); err != nil {
		return err
	}
	if err := SetIEC61883IIDC(pdu, 0, IECTcode, 0x0A); err != nil {
		return err
	}
	return SetIEC61883IIDC(pdu, 0, IECTag, tag)
}
