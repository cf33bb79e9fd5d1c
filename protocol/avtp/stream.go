/*
NAME
  stream.go

DESCRIPTION
  stream.go provides the accessor for fields shared by every AVTP *stream*
  subtype (AAF, CVF, IEC 61883/IIDC, RVF, VSF): the subtype_data bitfields,
  stream_id, avtp_time and stream_data_length. CRF does not compose this
  accessor; it has its own subtype_data layout and no avtp_time.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package avtp

import "github.com/pkg/errors"

// StreamField identifies a field shared by every AVTP stream subtype.
type StreamField uint8

const (
	SV StreamField = iota
	MR
	TV
	SeqNum
	TU
	StreamID
	Timestamp
	StreamDataLen
	streamFieldMax
)

// streamRegistry holds the bit-exact offsets from spec.md section 4.5:
// SV at bit 8, MR at bit 12, TV at bit 15, SeqNum at bits 16-23, TU at bit
// 31, all within the 32-bit subtype_data word (MSB = bit 0 of byte 0).
// StreamDataLen lives in the high 16 bits of packet_info, per
// avtp_stream.c's MASK_STREAM_DATA_LEN/SHIFT_STREAM_DATA_LEN (not
// format_specific, which every subtype overlays with its own fields).
var streamRegistry = map[StreamField]fieldDescriptor{
	SV:     {word: wordSubtypeData32, mask: 0x00800000, shift: 23},
	MR:     {word: wordSubtypeData32, mask: 0x00080000, shift: 19},
	TV:     {word: wordSubtypeData32, mask: 0x00010000, shift: 16},
	SeqNum: {word: wordSubtypeData32, mask: 0x0000FF00, shift: 8},
	TU:     {word: wordSubtypeData32, mask: 0x00000001, shift: 0},

	StreamDataLen: {word: wordPacketInfo32, mask: 0xFFFF0000, shift: 16},
}

// getStreamField dispatches the direct (non-bitfield) StreamID and
// Timestamp fields, and falls through to the registry for the rest.
func getStreamField(pdu []byte, field StreamField) (uint64, error) {
	switch field {
	case StreamID:
		if pdu == nil {
			return 0, errors.Wrap(ErrInvalidArgument, "nil pdu")
		}
		if len(pdu) < offStreamID+8 {
			return 0, errors.Wrap(ErrInvalidArgument, "pdu too short for stream_id")
		}
		return loadBE64(pdu, offStreamID), nil
	case Timestamp:
		if pdu == nil {
			return 0, errors.Wrap(ErrInvalidArgument, "nil pdu")
		}
		if len(pdu) < offAVTPTime+4 {
			return 0, errors.Wrap(ErrInvalidArgument, "pdu too short for avtp_time")
		}
		return uint64(loadBE32(pdu, offAVTPTime)), nil
	default:
		d, ok := streamRegistry[field]
		if !ok {
			return 0, errors.Wrapf(ErrInvalidArgument, "stream: unrecognized field %v", field)
		}
		return getField(pdu, 0, d)
	}
}

// setStreamField is the set-side counterpart of getStreamField.
func setStreamField(pdu []byte, field StreamField, val uint64) error {
	switch field {
	case StreamID:
		if pdu == nil {
			return errors.Wrap(ErrInvalidArgument, "nil pdu")
		}
		if len(pdu) < offStreamID+8 {
			return errors.Wrap(ErrInvalidArgument, "pdu too short for stream_id")
		}
		storeBE64(pdu, offStreamID, val)
		return nil
	case Timestamp:
		if pdu == nil {
			return errors.Wrap(ErrInvalidArgument, "nil pdu")
		}
		if len(pdu) < offAVTPTime+4 {
			return errors.Wrap(ErrInvalidArgument, "pdu too short for avtp_time")
		}
		storeBE32(pdu, offAVTPTime, uint32(val))
		return nil
	default:
		d, ok := streamRegistry[field]
		if !ok {
			return errors.Wrapf(ErrInvalidArgument, "stream: unrecognized field %v", field)
		}
		return setField(pdu, 0, d, val)
	}
}
