/*
NAME
  common.go

DESCRIPTION
  common.go provides the accessor for the fields shared by the first word
  of every AVTP PDU, regardless of subtype.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package avtp

import "github.com/pkg/errors"

// CommonField identifies a field of the Common PDU header, the first 32
// bits of every AVTP frame.
type CommonField uint8

const (
	Subtype CommonField = iota
	StreamValid
	Version
	commonFieldMax
)

// Subtype byte values, bit-exact per IEEE 1722-2016.
const (
	SubtypeIEC61883IIDC uint64 = 0x00
	SubtypeMMAStream    uint64 = 0x01
	SubtypeAAF          uint64 = 0x02
	SubtypeCVF          uint64 = 0x03
	SubtypeCRF          uint64 = 0x04
	SubtypeTSCF         uint64 = 0x05
	SubtypeSVF          uint64 = 0x06
	SubtypeRVF          uint64 = 0x07
	SubtypeVSFStream    uint64 = 0x6F

	// SubtypeControlMin is the lowest subtype byte value reserved for
	// control subtypes (everything at or above this value is a control
	// subtype, not a stream subtype).
	SubtypeControlMin uint64 = 0x82
)

var commonRegistry = map[CommonField]fieldDescriptor{
	Subtype:     {word: wordSubtypeData32, mask: 0xFF000000, shift: 24},
	StreamValid: {word: wordSubtypeData32, mask: 0x00800000, shift: 23},
	Version:     {word: wordSubtypeData32, mask: 0x00700000, shift: 20},
}

// GetCommon returns the value of field from the Common PDU header.
func GetCommon(pdu []byte, field CommonField) (uint64, error) {
	d, ok := commonRegistry[field]
	if !ok {
		return 0, errors.Wrapf(ErrInvalidArgument, "common: unrecognized field %v", field)
	}
	return getField(pdu, 0, d)
}

// SetCommon sets field of the Common PDU header to val.
func SetCommon(pdu []byte, field CommonField, val uint64) error {
	d, ok := commonRegistry[field]
	if !ok {
		return errors.Wrapf(ErrInvalidArgument, "common: unrecognized field %v", field)
	}
	return setField(pdu, 0, d, val)
}
