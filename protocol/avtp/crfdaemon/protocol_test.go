/*
NAME
  protocol_test.go

DESCRIPTION
  protocol_test.go tests encoding and decoding of the records exchanged
  between the CRF daemon and its clients.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package crfdaemon

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegisterRequestRoundTrip(t *testing.T) {
	want := RegisterRequest{EventsPerSec: 300, EventType: EventTimestampResent}
	rec := want.Encode()
	if len(rec) != registerRequestSize {
		t.Fatalf("unexpected record size: got %d, want %d", len(rec), registerRequestSize)
	}
	got := decodeRegisterRequest(rec)
	if !cmp.Equal(got, want) {
		t.Errorf("requests not equal\nwant: %v\ngot: %v", want, got)
	}
}

func TestReadResponseEvent(t *testing.T) {
	want := EventResponse{Timestamp: 0x1122334455667788}
	got, err := ReadResponse(bytes.NewReader(want.Encode()))
	if err != nil {
		t.Fatalf("unexpected error reading event response: %v", err)
	}
	if !cmp.Equal(got, want) {
		t.Errorf("responses not equal\nwant: %v\ngot: %v", want, got)
	}
}

func TestReadResponseErr(t *testing.T) {
	want := ErrResponse{Err: -22}
	got, err := ReadResponse(bytes.NewReader(want.Encode()))
	if err != nil {
		t.Fatalf("unexpected error reading err response: %v", err)
	}
	if !cmp.Equal(got, want) {
		t.Errorf("responses not equal\nwant: %v\ngot: %v", want, got)
	}
}

func TestReadResponseUnrecognizedTag(t *testing.T) {
	rec := []byte{0x00, 0x00, 0x00, 0xff}
	if _, err := ReadResponse(bytes.NewReader(rec)); err == nil {
		t.Error("expected error for unrecognized response type, got nil")
	}
}
