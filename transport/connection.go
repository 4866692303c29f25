// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/gorilla/websocket"

	"github.com/bitmark-inc/replierd/challenge"
	"github.com/bitmark-inc/replierd/fault"
)

const (
	readBufferSize  = 1024
	writeBufferSize = 1024
)

// Handler - receives decoded inbound messages
type Handler interface {
	Challenge(challenge.Challenge)
	Score(challenge.Score)
}

// Connection - an open websocket to the challenge server
type Connection struct {
	sync.Mutex // serialises writes

	conn         *websocket.Conn
	writeTimeout time.Duration
	log          *logger.L
	closeOnce    sync.Once
}

// ValidateURL - only ws:// and wss:// are accepted
func ValidateURL(address string) error {
	if "" == address {
		return fault.ErrMissingURL
	}
	u, err := url.Parse(address)
	if nil != err {
		return fmt.Errorf("%w: %s", fault.ErrInvalidURL, err)
	}
	switch u.Scheme {
	case "ws", "wss":
	default:
		return fmt.Errorf("%w: unsupported scheme: %q", fault.ErrInvalidURL, u.Scheme)
	}
	if "" == u.Host {
		return fmt.Errorf("%w: missing host", fault.ErrInvalidURL)
	}
	return nil
}

// Dial - connect to the server
func Dial(ctx context.Context, address string, handshakeTimeout time.Duration, writeTimeout time.Duration, log *logger.L) (*Connection, error) {

	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	if err := ValidateURL(address); nil != err {
		return nil, err
	}

	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: handshakeTimeout,
		ReadBufferSize:   readBufferSize,
		WriteBufferSize:  writeBufferSize,
	}

	conn, response, err := dialer.DialContext(ctx, address, nil)
	if nil != err {
		if nil != response {
			log.Errorf("dial: %s  status: %s", address, response.Status)
		}
		return nil, err
	}

	log.Infof("connected to: %s", address)

	c := &Connection{
		conn:         conn,
		writeTimeout: writeTimeout,
		log:          log,
	}

	conn.SetPingHandler(c.ping)

	return c, nil
}

// answer a ping with a pong, the library default does the same
// but without logging
func (c *Connection) ping(data string) error {
	c.log.Debugf("ping: %x", data)
	err := c.conn.WriteControl(websocket.PongMessage, []byte(data), c.deadline())
	if websocket.ErrCloseSent == err {
		return nil
	}
	return err
}

func (c *Connection) deadline() time.Time {
	if c.writeTimeout <= 0 {
		return time.Time{}
	}
	return time.Now().Add(c.writeTimeout)
}

// WriteResponse - send one response as a binary message
func (c *Connection) WriteResponse(r challenge.Response) error {
	packed := r.Pack()

	c.Lock()
	defer c.Unlock()

	if err := c.conn.SetWriteDeadline(c.deadline()); nil != err {
		return err
	}
	err := c.conn.WriteMessage(websocket.BinaryMessage, packed[:])
	if nil != err {
		return err
	}
	c.log.Debugf("sent: %s", r)
	return nil
}

// Run - read and dispatch messages until the connection fails or
// the context is done
//
// the returned error always wraps ErrConnectionClosed or
// ErrConnectionLost unless the context ended first
func (c *Connection) Run(ctx context.Context, handler Handler) error {

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			c.Close()
		case <-done:
		}
	}()

	for {
		messageType, data, err := c.conn.ReadMessage()
		if nil != err {
			if nil != ctx.Err() {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Infof("closed by server: %s", err)
				return fmt.Errorf("%w: %s", fault.ErrConnectionClosed, err)
			}
			c.log.Errorf("read error: %s", err)
			return fmt.Errorf("%w: %s", fault.ErrConnectionLost, err)
		}
		c.dispatch(messageType, data, handler)
	}
}

func (c *Connection) dispatch(messageType int, data []byte, handler Handler) {
	switch messageType {
	case websocket.TextMessage:
		c.log.Infof("server says: %s", data)

	case websocket.BinaryMessage:
		switch len(data) {
		case challenge.ChallengeSize:
			ch, err := challenge.Unpack(data)
			if nil != err {
				c.log.Warnf("challenge: %x  error: %s", data, err)
				return
			}
			c.log.Debugf("received: %s", ch)
			handler.Challenge(ch)

		case challenge.ScoreSize:
			score, err := challenge.UnpackScore(data)
			if nil != err {
				c.log.Warnf("score: %x  error: %s", data, err)
				return
			}
			handler.Score(score)

		default:
			c.log.Warnf("ignored binary message length: %d  data: %x", len(data), data)
		}

	default:
		c.log.Warnf("ignored message type: %d", messageType)
	}
}

// Close - send a close frame and release the socket
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = c.conn.WriteControl(websocket.CloseMessage, message, c.deadline())
		err = c.conn.Close()
	})
	return err
}
