/*
NAME
  server.go

DESCRIPTION
  server.go implements the CRF daemon: a single-threaded, cooperatively
  scheduled process that reads CRF PDUs from an AVTP stream, recovers a
  media clock from each, and fans the recovered timestamps out to any
  number of registered local clients connected over a Unix domain socket.

  The daemon is deliberately NOT built on goroutines and channels. It
  multiplexes the CRF source and every client connection with a single
  poll(2) call per iteration, matching the reference crf-daemon's event
  loop so that client registration, CRF receipt, and clock recovery all
  happen on one thread with no locking.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package crfdaemon

import (
	"context"
	"encoding/binary"

	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/ausocean/avtp/protocol/avtp"
)

// Values based on IEEE 1722-2016 Table 28 recommendation, matching the
// reference crf-daemon and crf-talker examples.
const (
	CRFStreamID         uint64 = 0xAABBCCDDEEFF0002
	CRFSampleRate       uint64 = 48000
	CRFTimestampsPerSec uint64 = 300
	TimestampsPerPkt           = 6
	CRFDataLen                 = 8 * TimestampsPerPkt

	mclklistTSPerCRF = CRFSampleRate / CRFTimestampsPerSec
	nsecPerSec       = 1e9
	mclkPeriod       = nsecPerSec / CRFTimestampsPerSec

	crfPDUSize = 20 + CRFDataLen // crfFixedHdrSize + crf_data

	// DefaultSocketPath is the Unix domain socket path the daemon listens
	// on and clients Connect to, unless overridden.
	DefaultSocketPath = "/tmp/crf"

	// DefaultMaxClients bounds how many clients may be registered at once.
	DefaultMaxClients = 128

	pollTimeoutMillis = 500

	pkg = "crfdaemon: "
)

// Log describes a function signature required by the daemon for logging.
type Log func(lvl int8, msg string, args ...interface{})

// Config holds the parameters needed to construct a Server.
type Config struct {
	// SocketPath is the Unix domain socket the daemon listens on for
	// client connections. Defaults to DefaultSocketPath if empty.
	SocketPath string

	// MaxClients bounds the number of simultaneously registered clients.
	// Defaults to DefaultMaxClients if zero.
	MaxClients int

	// Logger receives daemon diagnostics. Required.
	Logger Log
}

// client tracks a single registered daemon client.
type client struct {
	fd           int
	eventsPerCRF uint32
	eventType    EventType
}

// Server is a running CRF daemon. It is not safe for concurrent use: Run
// drives the entire daemon from a single goroutine.
type Server struct {
	cfg      Config
	crf      crfSource
	serverFD int
	clients  []client
	seqNum   uint8
}

// crfSource abstracts the file descriptor a Server reads raw CRF PDUs
// from. Implementations are expected to wrap whatever the deployment uses
// to receive the AVTP CRF stream (an AF_PACKET socket bound to the
// AVTP stream's destination MAC, a multicast UDP socket, a test fake,
// etc.) — capturing link-layer AVTP traffic is environment-specific and is
// left to the caller rather than hard-coded here.
type crfSource interface {
	// Fd returns the underlying file descriptor, suitable for poll(2).
	Fd() int
	// ReadPDU reads one CRF PDU into buf, returning the number of bytes
	// read.
	ReadPDU(buf []byte) (int, error)
}

// NewServer creates a Server listening on cfg.SocketPath, reading the CRF
// stream from crf.
func NewServer(cfg Config, crf crfSource) (*Server, error) {
	if cfg.Logger == nil {
		return nil, errors.New("crfdaemon: Logger is required")
	}
	if cfg.SocketPath == "" {
		cfg.SocketPath = DefaultSocketPath
	}
	if cfg.MaxClients == 0 {
		cfg.MaxClients = DefaultMaxClients
	}

	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, errors.Wrap(err, "crfdaemon: socket")
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return nil, errors.Wrap(err, "crfdaemon: setsockopt")
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, errors.Wrap(err, "crfdaemon: set nonblocking")
	}
	unix.Unlink(cfg.SocketPath)
	if err := unix.Bind(fd, &unix.SockaddrUnix{Name: cfg.SocketPath}); err != nil {
		unix.Close(fd)
		return nil, errors.Wrap(err, "crfdaemon: bind")
	}
	if err := unix.Listen(fd, 32); err != nil {
		unix.Close(fd)
		return nil, errors.Wrap(err, "crfdaemon: listen")
	}

	return &Server{
		cfg:      cfg,
		crf:      crf,
		serverFD: fd,
		clients:  make([]client, 0, cfg.MaxClients),
	}, nil
}

// Close releases the daemon's listening socket.
func (s *Server) Close() error {
	for _, c := range s.clients {
		unix.Close(c.fd)
	}
	return unix.Close(s.serverFD)
}

// Run drives the daemon's event loop until ctx is cancelled, poll fails,
// or reading from the CRF source fails. A failed accept on the listening
// socket is logged and does not stop the loop.
func (s *Server) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fds := make([]unix.PollFd, 0, 2+len(s.clients))
		fds = append(fds, unix.PollFd{Fd: int32(s.serverFD), Events: unix.POLLIN})
		fds = append(fds, unix.PollFd{Fd: int32(s.crf.Fd()), Events: unix.POLLIN})
		for _, c := range s.clients {
			fds = append(fds, unix.PollFd{Fd: int32(c.fd), Events: unix.POLLIN})
		}

		n, err := unix.Poll(fds, pollTimeoutMillis)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return errors.Wrap(err, "crfdaemon: poll")
		}
		if n == 0 {
			continue // timed out; re-check ctx and loop.
		}

		if fds[0].Revents&unix.POLLIN != 0 {
			s.acceptClients()
		}
		// Client requests are handled before the CRF fan-out: removal
		// shifts client indices, so the fds index mapping built above must
		// not outlive either. Dead clients are collected first and removed
		// in descending order once the poll results have all been consumed.
		var dead []int
		for i := 2; i < len(fds); i++ {
			if fds[i].Revents&unix.POLLIN == 0 {
				continue
			}
			idx := i - 2
			if err := s.processRequest(idx); err != nil {
				s.cfg.Logger(logging.Debug, pkg+"client disconnected", "error", err)
				dead = append(dead, idx)
			}
		}
		for i := len(dead) - 1; i >= 0; i-- {
			s.removeClient(dead[i])
		}
		if fds[1].Revents&unix.POLLIN != 0 {
			if err := s.processCRF(); err != nil {
				return errors.Wrap(err, "crfdaemon: read CRF")
			}
		}
	}
}

// acceptClients accepts every pending connection on the listening socket,
// registering each until MaxClients is reached.
func (s *Server) acceptClients() {
	for {
		fd, _, err := unix.Accept(s.serverFD)
		if err != nil {
			if err != unix.EWOULDBLOCK && err != unix.EAGAIN {
				s.cfg.Logger(logging.Error, pkg+"accept failed", "error", err)
			}
			return
		}
		if len(s.clients) >= s.cfg.MaxClients {
			s.cfg.Logger(logging.Warning, pkg+"max clients reached, rejecting connection")
			unix.Close(fd)
			continue
		}
		unix.SetNonblock(fd, true)
		s.clients = append(s.clients, client{fd: fd})
	}
}

// removeClient closes and forgets the client at idx.
func (s *Server) removeClient(idx int) {
	unix.Close(s.clients[idx].fd)
	s.clients = append(s.clients[:idx], s.clients[idx+1:]...)
}

// processRequest reads and applies any pending requests from the client at
// idx.
func (s *Server) processRequest(idx int) error {
	buf := make([]byte, registerRequestSize)
	n, err := unix.Read(s.clients[idx].fd, buf)
	if err != nil {
		if err == unix.EWOULDBLOCK || err == unix.EAGAIN {
			return nil
		}
		return errors.Wrap(err, "crfdaemon: read request")
	}
	if n == 0 {
		return avtp.ErrPeerClosed
	}
	if n != registerRequestSize {
		return errors.Wrapf(avtp.ErrShortRead, "crfdaemon: request size %d", n)
	}
	if requestType(binary.BigEndian.Uint32(buf[0:4])) != registerRequest {
		s.cfg.Logger(logging.Warning, pkg+"unsupported request type")
		return nil
	}
	req := decodeRegisterRequest(buf)
	// events_per_crf is populated verbatim from the client's registration;
	// see DESIGN.md for why no package-size conversion is applied here.
	s.clients[idx].eventsPerCRF = req.EventsPerSec
	s.clients[idx].eventType = req.EventType
	return nil
}

// processCRF reads one CRF PDU from the CRF source and, if valid, recovers
// and fans out its media clock timestamps.
func (s *Server) processCRF() error {
	pdu := make([]byte, crfPDUSize)
	n, err := s.crf.ReadPDU(pdu)
	if err != nil {
		return err
	}
	// The CRF source may deliver non-AVTP traffic too (e.g. a raw capture
	// socket with no protocol filter); anything the wrong size is dropped.
	if n != crfPDUSize {
		return nil
	}
	if !s.isValidCRFPDU(pdu) {
		return nil
	}
	ticks := recoverMediaClock(pdu)
	alive := s.clients[:0]
	for _, c := range s.clients {
		if err := sendTicks(c.fd, ticks); err != nil {
			s.cfg.Logger(logging.Error, pkg+"send to client failed", "error", err)
			unix.Close(c.fd)
			continue
		}
		alive = append(alive, c)
	}
	s.clients = alive
	return nil
}

// sendTicks writes one EventResponse per tick to fd. A short write is as
// fatal to the client as a failed one; either closes the slot.
func sendTicks(fd int, ticks []uint64) error {
	for _, ts := range ticks {
		rec := EventResponse{Timestamp: ts}.Encode()
		n, err := unix.Write(fd, rec)
		if err != nil {
			return errors.Wrap(err, "crfdaemon: write event")
		}
		if n != len(rec) {
			return errors.Wrapf(avtp.ErrShortWrite, "crfdaemon: wrote %d of %d", n, len(rec))
		}
	}
	return nil
}

// isValidCRFPDU validates pdu against the expected CRF stream parameters,
// mirroring is_valid_crf_pdu. A sequence number mismatch is logged but does
// not invalidate the packet.
func (s *Server) isValidCRFPDU(pdu []byte) bool {
	subtype, err := avtp.GetCommon(pdu, avtp.Subtype)
	if err != nil || subtype != avtp.SubtypeCRF {
		return false
	}
	version, err := avtp.GetCommon(pdu, avtp.Version)
	if err != nil || version != 0 {
		return false
	}
	sv, err := avtp.GetCRF(pdu, avtp.CRFSV)
	if err != nil || sv != 1 {
		return false
	}
	fs, err := avtp.GetCRF(pdu, avtp.CRFFS)
	if err != nil || fs != 0 {
		return false
	}
	seqNum, err := avtp.GetCRF(pdu, avtp.CRFSeqNum)
	if err != nil {
		return false
	}
	if byte(seqNum) != s.seqNum {
		s.cfg.Logger(logging.Warning, pkg+"sequence number mismatch", "expected", s.seqNum, "got", seqNum)
		s.seqNum = byte(seqNum)
	}
	s.seqNum++

	typ, err := avtp.GetCRF(pdu, avtp.CRFType)
	if err != nil || typ != avtp.CRFTypeAudioSample {
		return false
	}
	streamID, err := avtp.GetCRF(pdu, avtp.CRFStreamID)
	if err != nil || streamID != CRFStreamID {
		return false
	}
	pull, err := avtp.GetCRF(pdu, avtp.CRFPull)
	if err != nil || pull != avtp.CRFPullMultBy1 {
		return false
	}
	baseFreq, err := avtp.GetCRF(pdu, avtp.CRFBaseFreq)
	if err != nil || baseFreq != CRFSampleRate {
		return false
	}
	dataLen, err := avtp.GetCRF(pdu, avtp.CRFDataLen)
	if err != nil || dataLen != CRFDataLen {
		return false
	}
	return true
}

// recoverMediaClock derives a media clock from pdu's CRF timestamps. Only
// the first timestamp is used: the remaining timestamps in the PDU
// increase monotonically from it (IEEE 1722-2016 §10.7), so a full media
// clock can be reconstructed from the first alone.
func recoverMediaClock(pdu []byte) []uint64 {
	crfData := pdu[20:] // crfFixedHdrSize
	tsCRF := binary.BigEndian.Uint64(crfData[:8])

	ticks := make([]uint64, mclklistTSPerCRF)
	for idx := range ticks {
		ticks[idx] = tsCRF + uint64(idx)*mclkPeriod
	}
	return ticks
}
