/*
NAME
  field.go

DESCRIPTION
  field.go provides the bit-range registry, the endian-safe word accessor,
  and the generic field get/set engine shared by every AVTP subtype
  accessor.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package avtp encodes and decodes Audio Video Transport Protocol (AVTP)
// PDUs as defined by IEEE 1722-2016, across the AAF, CRF, CVF, IEC
// 61883/IIDC, RVF and VSF stream subtypes.
package avtp

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// wordKind identifies which fixed header word or payload sub-header word a
// field lives in.
type wordKind uint8

const (
	wordSubtypeData32 wordKind = iota
	wordStreamID64
	wordAVTPTime32
	wordFormatSpecific32
	wordPacketInfo32
	wordPacketInfo64
	wordPayloadH264_32
	wordPayloadCIP1_32
	wordPayloadCIP2_32
	wordPayloadRAW64
)

// fieldDescriptor is the registry entry for one symbolic field identifier:
// which word it lives in, and the mask/shift that select it within the
// host-endian value of that word.
//
// Invariants (not checked at runtime, since the table is
// compile-time-fixed): mask != 0; mask>>shift is a contiguous run of
// 1-bits starting at bit 0; 0 <= shift <= width(word) - popcount(mask).
type fieldDescriptor struct {
	word  wordKind
	mask  uint64
	shift uint
}

// Common AVTP PDU fixed-header byte offsets, shared by every stream
// subtype. The Common PDU header occupies the first 4 bytes; subtype_data
// is those same first 4 bytes (subtype is its most significant byte).
const (
	offSubtypeData     = 0
	offStreamID        = 4
	offAVTPTime        = 12
	offFormatSpecific  = 16
	offPacketInfo      = 20
	streamFixedHdrSize = 24

	// CRF has a different fixed layout: subtype_data(4) + stream_id(8) +
	// packet_info(8), no avtp_time, no format_specific.
	offCRFPacketInfo = 12
	crfFixedHdrSize  = 20
)

// loadBE32 reads four bytes in big-endian order starting at buf[off].
func loadBE32(buf []byte, off int) uint32 {
	return binary.BigEndian.Uint32(buf[off : off+4])
}

// storeBE32 writes v as four big-endian bytes starting at buf[off].
func storeBE32(buf []byte, off int, v uint32) {
	binary.BigEndian.PutUint32(buf[off:off+4], v)
}

// loadBE64 reads eight bytes in big-endian order starting at buf[off].
func loadBE64(buf []byte, off int) uint64 {
	return binary.BigEndian.Uint64(buf[off : off+8])
}

// storeBE64 writes v as eight big-endian bytes starting at buf[off].
func storeBE64(buf []byte, off int, v uint64) {
	binary.BigEndian.PutUint64(buf[off:off+8], v)
}

// wordRegion describes where in a PDU buffer a wordKind's bytes begin, and
// how wide the word is.
type wordRegion struct {
	base  int
	width int // 4 or 8
}

// resolveWord returns the byte offset and width of kind within pdu, given
// payloadOff (the offset of avtp_payload from the start of pdu; ignored for
// non-payload word kinds).
func resolveWord(kind wordKind, payloadOff int) (wordRegion, error) {
	switch kind {
	case wordSubtypeData32:
		return wordRegion{offSubtypeData, 4}, nil
	case wordStreamID64:
		return wordRegion{offStreamID, 8}, nil
	case wordAVTPTime32:
		return wordRegion{offAVTPTime, 4}, nil
	case wordFormatSpecific32:
		return wordRegion{offFormatSpecific, 4}, nil
	case wordPacketInfo32:
		return wordRegion{offPacketInfo, 4}, nil
	case wordPacketInfo64:
		return wordRegion{offCRFPacketInfo, 8}, nil
	case wordPayloadH264_32:
		return wordRegion{payloadOff, 4}, nil
	case wordPayloadCIP1_32:
		return wordRegion{payloadOff, 4}, nil
	case wordPayloadCIP2_32:
		return wordRegion{payloadOff + 4, 4}, nil
	case wordPayloadRAW64:
		return wordRegion{payloadOff, 8}, nil
	default:
		return wordRegion{}, errors.Wrap(ErrInvalidArgument, "unrecognized word kind")
	}
}

// getField locates d's word within pdu (using payloadOff for payload-
// resident words), loads it, and returns (word & mask) >> shift.
func getField(pdu []byte, payloadOff int, d fieldDescriptor) (uint64, error) {
	if pdu == nil {
		return 0, errors.Wrap(ErrInvalidArgument, "nil pdu")
	}
	r, err := resolveWord(d.word, payloadOff)
	if err != nil {
		return 0, err
	}
	off := r.base
	if off < 0 || off+r.width > len(pdu) {
		return 0, errors.Wrap(ErrInvalidArgument, "pdu too short for field")
	}
	var word uint64
	if r.width == 8 {
		word = loadBE64(pdu, off)
	} else {
		word = uint64(loadBE32(pdu, off))
	}
	return (word & d.mask) >> d.shift, nil
}

// setField locates d's word within pdu, clears the masked bits, ORs in
// (val<<shift)&mask, and stores the word back. Neighboring bits in the
// same word are preserved exactly; no other word is touched.
func setField(pdu []byte, payloadOff int, d fieldDescriptor, val uint64) error {
	if pdu == nil {
		return errors.Wrap(ErrInvalidArgument, "nil pdu")
	}
	r, err := resolveWord(d.word, payloadOff)
	if err != nil {
		return err
	}
	off := r.base
	if off < 0 || off+r.width > len(pdu) {
		return errors.Wrap(ErrInvalidArgument, "pdu too short for field")
	}
	if r.width == 8 {
		word := loadBE64(pdu, off)
		word = (word &^ d.mask) | ((val << d.shift) & d.mask)
		storeBE64(pdu, off, word)
	} else {
		word := uint64(loadBE32(pdu, off))
		word = (word &^ d.mask) | ((val << d.shift) & d.mask)
		storeBE32(pdu, off, uint32(word))
	}
	return nil
}

// bitmask64 returns a mask of n contiguous 1-bits at bit 0, i.e. (1<<n)-1.
func bitmask64(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << n) - 1
}
