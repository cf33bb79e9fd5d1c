/*
NAME
  vsf.go

DESCRIPTION
  vsf.go provides the accessor and initializer for VSF (Vendor Specific
  Format) stream PDUs. The only vendor-defined field exposed at this
  layer is vendor_id, a 48-bit value split across format_specific (high
  32 bits) and packet_info (low 16 bits); everything past that point is
  opaque vendor payload.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package avtp

import "github.com/pkg/errors"

// VSFField identifies a field of a VSF stream PDU.
type VSFField uint8

const (
	VSFSV VSFField = iota
	VSFMR
	VSFTV
	VSFSeqNum
	VSFTU
	VSFStreamID
	VSFTimestamp
	VSFStreamDataLen
	VSFVendorID
)

var vsfStreamShared = map[VSFField]StreamField{
	VSFSV: SV, VSFMR: MR, VSFTV: TV, VSFSeqNum: SeqNum, VSFTU: TU,
	VSFStreamID: StreamID, VSFTimestamp: Timestamp, VSFStreamDataLen: StreamDataLen,
}

var vsfVendorIDHiDescriptor = fieldDescriptor{word: wordFormatSpecific32, mask: 0xFFFFFFFF, shift: 0}
var vsfVendorIDLoDescriptor = fieldDescriptor{word: wordPacketInfo32, mask: 0x0000FFFF, shift: 0}

// GetVSF returns the value of field from a VSF stream PDU. vendor_id is
// composed from the full format_specific word (high 32 bits) and the low
// 16 bits of packet_info.
func GetVSF(pdu []byte, field VSFField) (uint64, error) {
	if sf, ok := vsfStreamShared[field]; ok {
		return getStreamField(pdu, sf)
	}
	if field != VSFVendorID {
		return 0, errors.Wrapf(ErrInvalidArgument, "vsf: unrecognized field %v", field)
	}
	hi, err := getField(pdu, 0, vsfVendorIDHiDescriptor)
	if err != nil {
		return 0, err
	}
	lo, err := getField(pdu, 0, vsfVendorIDLoDescriptor)
	if err != nil {
		return 0, err
	}
	return hi<<16 | lo, nil
}

// SetVSF sets field of a VSF stream PDU to val. For vendor_id, bits 47..16
// are written to format_specific and bits 15..0 to packet_info,
// independently, each preserving its own neighboring bits; bits above 47
// are silently truncated.
func SetVSF(pdu []byte, field VSFField, val uint64) error {
	if sf, ok := vsfStreamShared[field]; ok {
		return setStreamField(pdu, sf, val)
	}
	if field != VSFVendorID {
		return errors.Wrapf(ErrInvalidArgument, "vsf: unrecognized field %v", field)
	}
	if err := setField(pdu, 0, vsfVendorIDHiDescriptor, val>>16); err != nil {
		return err
	}
	return setField(pdu, 0, vsfVendorIDLoDescriptor, val&0xFFFF)
}

// InitVSF zeroes pdu's fixed header and sets subtype=VSF stream, sv=1.
func InitVSF(pdu []byte) error {
	if pdu == nil || len(pdu) < streamFixedHdrSize {
		return errors.Wrap(ErrInvalidArgument, "vsf: pdu too short")
	}
	for i := 0; i < streamFixedHdrSize; i++ {
		pdu[i] = 0
	}
	if err := SetCommon(pdu, Subtype, SubtypeVSFStream); err != nil {
		return err
	}
	return setStreamField(pdu, SV, 1)
}
