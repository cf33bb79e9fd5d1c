/*
NAME
  cvf.go

DESCRIPTION
  cvf.go provides the accessor and initializer for CVF (Compressed Video
  Format) stream PDUs, carrying H.264, MJPEG, or JPEG2000 payloads.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package avtp

import "github.com/pkg/errors"

// CVFField identifies a field of a CVF stream PDU.
type CVFField uint8

const (
	CVFSV CVFField = iota
	CVFMR
	CVFTV
	CVFSeqNum
	CVFTU
	CVFStreamID
	CVFTimestamp
	CVFStreamDataLen
	CVFFormat
	CVFFormatSubtype
	CVFM
	CVFEvt
	CVFH264PTV
	CVFH264Timestamp
)

// CVF 'format' field value.
const CVFFormatRFC uint64 = 0x02

// CVF 'format_subtype' field values.
const (
	CVFFormatSubtypeMJPEG    uint64 = 0x00
	CVFFormatSubtypeH264     uint64 = 0x01
	CVFFormatSubtypeJPEG2000 uint64 = 0x02
)

var cvfStreamShared = map[CVFField]StreamField{
	CVFSV: SV, CVFMR: MR, CVFTV: TV, CVFSeqNum: SeqNum, CVFTU: TU,
	CVFStreamID: StreamID, CVFTimestamp: Timestamp, CVFStreamDataLen: StreamDataLen,
}

// cvfRegistry reproduces avtp_cvf.c's shifts: FORMAT at shift 24 (8 bits)
// and FORMAT_SUBTYPE at shift 16 (8 bits) within format_specific; M at
// shift 12 (1 bit), EVT at shift 8 (4 bits), H264_PTV at shift 13 (1 bit)
// within packet_info.
var cvfRegistry = map[CVFField]fieldDescriptor{
	CVFFormat:        {word: wordFormatSpecific32, mask: 0xFF000000, shift: 24},
	CVFFormatSubtype: {word: wordFormatSpecific32, mask: 0x00FF0000, shift: 16},
	CVFM:             {word: wordPacketInfo32, mask: 0x00001000, shift: 12},
	CVFEvt:           {word: wordPacketInfo32, mask: 0x00000F00, shift: 8},
	CVFH264PTV:       {word: wordPacketInfo32, mask: 0x00002000, shift: 13},
}

var cvfH264TimestampDescriptor = fieldDescriptor{word: wordPayloadH264_32, mask: 0xFFFFFFFF, shift: 0}

// GetCVF returns the value of field from a CVF stream PDU. payloadOff is
// the byte offset of avtp_payload within pdu, required for H264Timestamp,
// which lives in the H.264 payload sub-header, not the fixed header.
func GetCVF(pdu []byte, payloadOff int, field CVFField) (uint64, error) {
	if sf, ok := cvfStreamShared[field]; ok {
		return getStreamField(pdu, sf)
	}
	if field == CVFH264Timestamp {
		return getField(pdu, payloadOff, cvfH264TimestampDescriptor)
	}
	d, ok := cvfRegistry[field]
	if !ok {
		return 0, errors.Wrapf(ErrInvalidArgument, "cvf: unrecognized field %v", field)
	}
	return getField(pdu, 0, d)
}

// SetCVF sets field of a CVF stream PDU to val.
func SetCVF(pdu []byte, payloadOff int, field CVFField, val uint64) error {
	if sf, ok := cvfStreamShared[field]; ok {
		return setStreamField(pdu, sf, val)
	}
	if field == CVFH264Timestamp {
		return setField(pdu, payloadOff, cvfH264TimestampDescriptor, val)
	}
	d, ok := cvfRegistry[field]
	if !ok {
		return errors.Wrapf(ErrInvalidArgument, "cvf: unrecognized field %v", field)
	}
	return setField(pdu, 0, d, val)
}

// InitCVF zeroes pdu's fixed header and sets subtype=CVF, sv=1, format=RFC,
// format_subtype=subtype. subtype must be <= CVFFormatSubtypeJPEG2000.
func InitCVF(pdu []byte, subtype uint64) error {
	if pdu == nil || len(pdu) < streamFixedHdrSize {
		return errors.Wrap(ErrInvalidArgument, "cvf: pdu too short")
	}
	if subtype > CVFFormatSubtypeJPEG2000 {
		return errors.Wrap(ErrInvalidArgument, "cvf: format_subtype out of range")
	}
	for i := 0; i < streamFixedHdrSize; i++ {
		pdu[i] = 0
	}
	if err := SetCommon(pdu, Subtype, SubtypeCVF); err != nil {
		return err
	}
	if err := SetCVF(pdu, 0, CVFSV, 1); err != nil {
		return err
	}
	if err := SetCVF(pdu, 0, CVFFormat, CVFFormatRFC); err != nil {
		return err
	}
	return SetCVF(pdu, 0, CVFFormatSubtype, subtype)
}
