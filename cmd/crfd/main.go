/*
DESCRIPTION
  crfd runs a CRF media clock recovery daemon, listening for a CRF stream on
  a network interface and serving recovered media clock timestamps to local
  clients over a Unix domain socket.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package crfd is a CRF media clock recovery daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/avtp/protocol/avtp/crfdaemon"
	"github.com/ausocean/utils/logging"
)

// Logging configuration.
const (
	logPath      = "/var/log/crfd/crfd.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 10
	logMaxAge    = 28 // days
	logVerbosity = logging.Debug
	logSuppress  = true
)

func main() {
	socketPath := flag.String("socket", crfdaemon.DefaultSocketPath, "Unix domain socket path to serve clients on.")
	ifName := flag.String("ifname", "", "Network interface to receive the CRF stream on.")
	macAddr := flag.String("crf-addr", "", "CRF stream destination MAC address, e.g. 91:e0:f0:00:fe:02.")
	maxClients := flag.Int("max-clients", crfdaemon.DefaultMaxClients, "Maximum number of simultaneously registered clients.")
	flag.Parse()

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	l := logging.New(logVerbosity, fileLog, logSuppress)

	mac, err := parseMAC(*macAddr)
	if err != nil {
		l.Fatal("invalid crf-addr", "error", err)
	}
	if *ifName == "" {
		l.Fatal("ifname is required")
	}

	src, err := crfdaemon.NewLinkSource(*ifName, mac, crfdaemon.EtherTypeTSN)
	if err != nil {
		l.Fatal("could not open CRF link source", "error", err)
	}
	defer src.Close()

	srv, err := crfdaemon.NewServer(crfdaemon.Config{
		SocketPath: *socketPath,
		MaxClients: *maxClients,
		Logger:     l.Log,
	}, src)
	if err != nil {
		l.Fatal("could not create CRF daemon", "error", err)
	}
	defer srv.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	l.Info("crfd listening", "socket", *socketPath, "ifname", *ifName)
	if err := srv.Run(ctx); err != nil && err != context.Canceled {
		l.Error("crfd stopped", "error", err)
	}
}

// parseMAC parses a colon-separated MAC address string into its byte form.
func parseMAC(s string) ([6]byte, error) {
	var mac [6]byte
	n, err := fmt.Sscanf(s, "%02x:%02x:%02x:%02x:%02x:%02x",
		&mac[0], &mac[1], &mac[2], &mac[3], &mac[4], &mac[5])
	if err != nil || n != 6 {
		return mac, fmt.Errorf("crfd: invalid MAC address %q", s)
	}
	return mac, nil
}
