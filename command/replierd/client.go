// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/replierd/challenge"
	"github.com/bitmark-inc/replierd/counter"
	"github.com/bitmark-inc/replierd/fault"
	"github.com/bitmark-inc/replierd/session"
	"github.com/bitmark-inc/replierd/statistics"
	"github.com/bitmark-inc/replierd/transport"
)

const (
	clientLoggerPrefix  = "client"
	sessionLoggerPrefix = "session"
	transportLogPrefix  = "transport"
)

// client - keeps one connection to the challenge server, reconnecting
// at a limited rate
type client struct {
	address          string
	handshakeTimeout time.Duration
	writeTimeout     time.Duration
	limiter          *rate.Limiter
	solver           session.Solver
	statistics       *statistics.Statistics
	connections      counter.Counter
	log              *logger.L
}

func newClient(conf *Configuration, solver session.Solver, stats *statistics.Statistics, log *logger.L) *client {
	return &client{
		address:          conf.Connect.URL,
		handshakeTimeout: conf.handshakeTimeout(),
		writeTimeout:     conf.writeTimeout(),
		limiter:          rate.NewLimiter(rate.Every(conf.reconnectDelay()), conf.Connect.ReconnectBurst),
		solver:           solver,
		statistics:       stats,
		log:              log,
	}
}

// Run - connect, serve, reconnect until shutdown
func (c *client) Run(args interface{}, shutdown <-chan struct{}) {
	c.log.Infof("starting: %s", c.address)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		select {
		case <-shutdown:
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		if err := c.limiter.Wait(ctx); nil != err {
			// a zero burst never admits a connection
			if nil == ctx.Err() {
				fault.Criticalf("client: reconnect limiter: %s", err)
			}
			break
		}

		err := c.serve(ctx)
		if nil != ctx.Err() {
			break
		}
		c.log.Warnf("connection: %d  ended: %s", c.connections.Uint64(), err)
	}

	c.log.Infof("stopped after %d connections", c.connections.Uint64())
}

// one connection with its own session, the session ends with the
// connection so no result is written to a later connection
func (c *client) serve(ctx context.Context) error {
	conn, err := transport.Dial(ctx, c.address, c.handshakeTimeout, c.writeTimeout, logger.New(transportLogPrefix))
	if nil != err {
		return err
	}
	defer conn.Close()

	n := c.connections.Increment()
	c.log.Infof("connection: %d  established", n)

	s := session.New(c.solver, conn, c.statistics, logger.New(sessionLoggerPrefix))
	defer s.Close()

	return conn.Run(ctx, &dispatcher{
		session:    s,
		statistics: c.statistics,
		log:        c.log,
	})
}

// dispatcher - routes decoded messages to the session and statistics
type dispatcher struct {
	session    *session.Session
	statistics *statistics.Statistics
	log        *logger.L
}

func (d *dispatcher) Challenge(c challenge.Challenge) {
	if _, err := d.session.Submit(c); nil != err {
		if last, ok := d.session.Current(); ok {
			d.log.Warnf("challenge: %s  rejected: %s  last accepted: %s", c, err, last)
		} else {
			d.log.Warnf("challenge: %s  rejected: %s", c, err)
		}
	}
}

func (d *dispatcher) Score(s challenge.Score) {
	d.statistics.Score(s)
}
