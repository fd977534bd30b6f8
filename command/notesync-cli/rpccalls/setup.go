// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"

	"github.com/bitmark-inc/notesync/fault"
	"github.com/bitmark-inc/notesync/rpc/certificate"
)

// errors
const (
	ErrFingerprintMismatch = fault.InvalidError("certificate fingerprint mismatch")
	ErrInvalidFingerprint  = fault.InvalidError("invalid certificate fingerprint")
)

// Client - to hold RPC connections streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// NewClient - create a RPC connection to a notesyncd
//
// the daemon certificate is self signed, a non-empty fingerprint pins
// it to the SHA3-256 value logged by the daemon at startup
func NewClient(connect string, fingerprint string, verbose bool, handle io.Writer) (*Client, error) {

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}

	if "" != fingerprint {
		expected, err := hex.DecodeString(strings.TrimSpace(fingerprint))
		if nil != err || 32 != len(expected) {
			return nil, ErrInvalidFingerprint
		}
		tlsConfig.VerifyPeerCertificate = func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
			if 0 == len(rawCerts) {
				return ErrFingerprintMismatch
			}
			actual := certificate.Fingerprint(rawCerts[0])
			if string(expected) != string(actual[:]) {
				return ErrFingerprintMismatch
			}
			return nil
		}
	}

	conn, err := tls.Dial("tcp", connect, tlsConfig)
	if err != nil {
		return nil, err
	}

	r := &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		verbose: verbose,
		handle:  handle,
	}
	return r, nil
}

// Close - shutdown the notesyncd connection
func (c *Client) Close() {
	c.client.Close()
	c.conn.Close()
}
