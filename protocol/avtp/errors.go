/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the sentinel errors returned by the avtp package.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package avtp

import "github.com/pkg/errors"

// Sentinel errors returned by get/set/init operations across every
// subtype. Callers should use errors.Is against these, since call sites
// wrap them with contextual detail via errors.Wrap/Wrapf.
var (
	// ErrInvalidArgument is returned for a nil PDU, an unrecognized field
	// identifier for the subtype, or an out-of-range initializer argument.
	ErrInvalidArgument = errors.New("avtp: invalid argument")

	// ErrShortRead is returned by the CRF daemon when a socket delivers
	// fewer bytes than a fixed-size record.
	ErrShortRead = errors.New("avtp: short read")

	// ErrShortWrite is returned by the CRF daemon when a socket accepts
	// fewer bytes than a fixed-size record.
	ErrShortWrite = errors.New("avtp: short write")

	// ErrPeerClosed is returned by the CRF daemon on an orderly peer
	// disconnect.
	ErrPeerClosed = errors.New("avtp: peer closed")
)
