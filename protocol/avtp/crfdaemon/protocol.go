/*
NAME
  protocol.go

DESCRIPTION
  protocol.go defines the local IPC records exchanged between a CRF daemon
  and its clients over a Unix domain socket, and the client-side Connect
  helper used to reach a running daemon.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package crfdaemon implements a CRF (Clock Reference Format) media clock
// recovery daemon: it multiplexes a single AVTP CRF stream to any number of
// local clients, each of which receives a recovered media clock as a
// sequence of timestamps.
package crfdaemon

import (
	"encoding/binary"
	"io"
	"net"

	"github.com/pkg/errors"
)

// EventType identifies the kind of event a client wants delivered.
type EventType uint32

const (
	EventPacketReceived EventType = iota
	EventTimestampResent
)

// requestType identifies the kind of request a client sends to the daemon.
type requestType uint32

const registerRequest requestType = 0

// RegisterRequest is sent by a client immediately after connecting to
// register interest in recovered media clock events. The daemon sends no
// acknowledgement; registration success is inferred from the arrival of the
// first EventResponse.
type RegisterRequest struct {
	EventsPerSec uint32
	EventType    EventType
}

const registerRequestSize = 4 + 4 + 4 // type + EventsPerSec + EventType

// Encode serializes r as a wire record.
func (r RegisterRequest) Encode() []byte {
	buf := make([]byte, registerRequestSize)
	binary.BigEndian.PutUint32(buf[0:4], uint32(registerRequest))
	binary.BigEndian.PutUint32(buf[4:8], r.EventsPerSec)
	binary.BigEndian.PutUint32(buf[8:12], uint32(r.EventType))
	return buf
}

// decodeRegisterRequest decodes a RegisterRequest from buf, which must have
// been validated to carry a registerRequest type tag and be at least
// registerRequestSize bytes.
func decodeRegisterRequest(buf []byte) RegisterRequest {
	return RegisterRequest{
		EventsPerSec: binary.BigEndian.Uint32(buf[4:8]),
		EventType:    EventType(binary.BigEndian.Uint32(buf[8:12])),
	}
}

// responseType identifies the kind of response the daemon sends a client.
type responseType uint32

const (
	errResponse   responseType = 0
	eventResponse responseType = 1
)

// ErrResponse reports that the daemon encountered an error servicing a
// client.
type ErrResponse struct {
	Err int32
}

// EventResponse carries a single recovered media clock timestamp, in
// nanoseconds.
type EventResponse struct {
	Timestamp uint64
}

const responseHeaderSize = 4 // type tag
const errResponseSize = responseHeaderSize + 4
const eventResponseSize = responseHeaderSize + 8

// Encode serializes r as a wire record.
func (r ErrResponse) Encode() []byte {
	buf := make([]byte, errResponseSize)
	binary.BigEndian.PutUint32(buf[0:4], uint32(errResponse))
	binary.BigEndian.PutUint32(buf[4:8], uint32(r.Err))
	return buf
}

// Encode serializes r as a wire record.
func (r EventResponse) Encode() []byte {
	buf := make([]byte, eventResponseSize)
	binary.BigEndian.PutUint32(buf[0:4], uint32(eventResponse))
	binary.BigEndian.PutUint64(buf[4:12], r.Timestamp)
	return buf
}

// ReadResponse reads and decodes a single response record from r, returning
// either an ErrResponse or an EventResponse.
func ReadResponse(r io.Reader) (interface{}, error) {
	hdr := make([]byte, responseHeaderSize)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, errors.Wrap(err, "crfdaemon: read response header")
	}
	switch responseType(binary.BigEndian.Uint32(hdr)) {
	case errResponse:
		body := make([]byte, errResponseSize-responseHeaderSize)
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, errors.Wrap(err, "crfdaemon: read err response")
		}
		return ErrResponse{Err: int32(binary.BigEndian.Uint32(body))}, nil
	case eventResponse:
		body := make([]byte, eventResponseSize-responseHeaderSize)
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, errors.Wrap(err, "crfdaemon: read event response")
		}
		return EventResponse{Timestamp: binary.BigEndian.Uint64(body)}, nil
	default:
		return nil, errors.New("crfdaemon: unrecognized response type")
	}
}

// Connect dials a CRF daemon listening on a Unix domain socket at
// socketPath, mirroring avtp_crf_daemon_connect. The caller should follow up
// with a RegisterRequest write to begin receiving events.
func Connect(socketPath string) (net.Conn, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, errors.Wrap(err, "crfdaemon: connect")
	}
	return conn, nil
}
