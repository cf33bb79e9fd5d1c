/*
NAME
  linksource.go

DESCRIPTION
  linksource.go implements crfSource on top of an AF_PACKET socket bound to
  a network interface and joined to the CRF stream's multicast destination
  address, the same mechanism create_listener_socket uses to receive AVTP
  traffic directly off the wire.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package crfdaemon

import (
	"net"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// EtherTypeTSN is the EtherType used for Time-Sensitive Networking (and
// AVTP) frames, linux/if_ether.h's ETH_P_TSN.
const EtherTypeTSN = 0x22F0

// LinkSource is a crfSource backed by a raw AF_PACKET socket listening for
// AVTP traffic on a network interface, joined to the given multicast MAC
// address.
type LinkSource struct {
	fd int
}

// NewLinkSource opens and binds an AF_PACKET socket on ifName, joining the
// multicast group identified by macAddr (the CRF stream's destination
// address) and filtering for protocol (normally EtherTypeTSN).
func NewLinkSource(ifName string, macAddr [6]byte, protocol int) (*LinkSource, error) {
	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_DGRAM, htons(protocol))
	if err != nil {
		return nil, errors.Wrap(err, "crfdaemon: open AF_PACKET socket")
	}

	iface, err := net.InterfaceByName(ifName)
	if err != nil {
		unix.Close(fd)
		return nil, errors.Wrap(err, "crfdaemon: resolve interface")
	}
	ifIndex := iface.Index

	addr := unix.SockaddrLinklayer{
		Protocol: uint16(htons(protocol)),
		Ifindex:  ifIndex,
		Halen:    6,
	}
	copy(addr.Addr[:], macAddr[:])
	if err := unix.Bind(fd, &addr); err != nil {
		unix.Close(fd)
		return nil, errors.Wrap(err, "crfdaemon: bind AF_PACKET socket")
	}

	mreq := unix.PacketMreq{
		Ifindex: int32(ifIndex),
		Type:    unix.PACKET_MR_MULTICAST,
		Alen:    6,
	}
	copy(mreq.Address[:], macAddr[:])
	if err := unix.SetsockoptPacketMreq(fd, unix.SOL_PACKET, unix.PACKET_ADD_MEMBERSHIP, &mreq); err != nil {
		unix.Close(fd)
		return nil, errors.Wrap(err, "crfdaemon: join multicast group")
	}

	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, errors.Wrap(err, "crfdaemon: set nonblocking")
	}

	return &LinkSource{fd: fd}, nil
}

// Fd returns the socket's file descriptor, suitable for poll(2).
func (l *LinkSource) Fd() int { return l.fd }

// ReadPDU reads a single frame's payload into buf.
func (l *LinkSource) ReadPDU(buf []byte) (int, error) {
	n, _, err := unix.Recvfrom(l.fd, buf, 0)
	if err != nil {
		return 0, errors.Wrap(err, "crfdaemon: recvfrom")
	}
	return n, nil
}

// Close releases the socket.
func (l *LinkSource) Close() error { return unix.Close(l.fd) }

func htons(v int) int {
	return int(uint16(v)>>8 | uint16(v)<<8)
}
