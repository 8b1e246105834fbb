// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/metachain/fault"
	"github.com/bitmark-inc/metachain/gateway"
	"github.com/bitmark-inc/metachain/history"
)

const (
	defaultListen             = "127.0.0.1:8300"
	defaultMaximumConnections = 50
	defaultRequestRate        = 10.0 // requests per second
	defaultRequestBurst       = 20
	defaultTimeout            = 30 // seconds
)

// Configuration - configuration file data for the HTTP server
type Configuration struct {
	Listen             []string            `gluamapper:"listen" json:"listen"`
	MaximumConnections uint64              `gluamapper:"maximum_connections" json:"maximum_connections"`
	RequestRate        float64             `gluamapper:"request_rate" json:"request_rate"`
	RequestBurst       int                 `gluamapper:"request_burst" json:"request_burst"`
	Timeout            int                 `gluamapper:"timeout" json:"timeout"` // seconds per request
	Allow              map[string][]string `gluamapper:"allow" json:"allow"`
}

// Defaults - the values used when a configuration file omits them
func Defaults() Configuration {
	return Configuration{
		Listen:             []string{defaultListen},
		MaximumConnections: defaultMaximumConnections,
		RequestRate:        defaultRequestRate,
		RequestBurst:       defaultRequestBurst,
		Timeout:            defaultTimeout,
	}
}

// Validate - check the limits
func (c *Configuration) Validate() error {
	if c.MaximumConnections < 1 {
		return fmt.Errorf("%w: rpc maximum_connections", fault.ErrMissingParameter)
	}
	if c.RequestRate <= 0 || c.RequestBurst < 1 {
		return fmt.Errorf("%w: rpc request_rate and request_burst", fault.ErrMissingParameter)
	}
	if c.Timeout < 0 {
		c.Timeout = 0
	}
	for path, addresses := range c.Allow {
		for _, ip := range addresses {
			if _, _, err := net.ParseCIDR(strings.TrimSpace(ip)); nil != err {
				return fmt.Errorf("%w: rpc allow: %s: %q", fault.ErrInvalidRange, path, ip)
			}
		}
	}
	return nil
}

// Server - the listeners and their shared handler
type Server struct {
	sync.Mutex

	log      *logger.L
	listen   []string
	handler  http.Handler
	servers  []*http.Server
	addrs    []net.Addr
	started  bool
	finished sync.WaitGroup
}

// New - create the HTTP interface over a resolver and its collaborators
func New(log *logger.L, configuration *Configuration, resolver *history.Resolver, store gateway.Store, anchor gateway.Anchor, version string) (*Server, error) {
	if err := configuration.Validate(); nil != err {
		return nil, err
	}

	// create access control to match http.Request.RemoteAddr
	allow := make(map[string][]*net.IPNet)
	for path, addresses := range configuration.Allow {
		set := make([]*net.IPNet, len(addresses))
		allow[path] = set
		for i, ip := range addresses {
			_, cidr, err := net.ParseCIDR(strings.TrimSpace(ip))
			if nil != err {
				return nil, err
			}
			set[i] = cidr
		}
	}

	h := &httpHandler{
		log:                log,
		resolver:           resolver,
		store:              store,
		anchor:             anchor,
		limiter:            rate.NewLimiter(rate.Limit(configuration.RequestRate), configuration.RequestBurst),
		timeout:            time.Duration(configuration.Timeout) * time.Second,
		start:              time.Now(),
		version:            version,
		allow:              allow,
		maximumConnections: configuration.MaximumConnections,
	}

	return &Server{
		log:     log,
		listen:  configuration.Listen,
		handler: h.mux(),
	}, nil
}

// Handler - the request router
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addrs - the bound addresses, valid after Start
func (s *Server) Addrs() []net.Addr {
	s.Lock()
	defer s.Unlock()
	return append([]net.Addr(nil), s.addrs...)
}

// Start - bind every listen address and serve in the background
func (s *Server) Start() error {
	s.Lock()
	defer s.Unlock()

	if s.started {
		return fault.ErrAlreadyInitialised
	}

	if 0 == len(s.listen) {
		s.log.Info("disabled: no listen addresses")
		s.started = true
		return nil
	}

	listeners := make([]net.Listener, 0, len(s.listen))
	for _, listen := range s.listen {
		if '*' == listen[0] {
			// change "*:PORT" to "[::]:PORT"
			// on the assumption that this will listen on tcp4 and tcp6
			listen = "[::]" + ":" + strings.Split(listen, ":")[1]
		}
		ln, err := net.Listen("tcp", listen)
		if nil != err {
			for _, l := range listeners {
				l.Close()
			}
			return err
		}
		listeners = append(listeners, ln)
	}

	for _, ln := range listeners {
		server := &http.Server{
			Handler:        s.handler,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   time.Minute,
			MaxHeaderBytes: 1 << 20,
		}
		s.servers = append(s.servers, server)
		s.addrs = append(s.addrs, ln.Addr())

		s.log.Infof("starting server on: %s", ln.Addr())

		s.finished.Add(1)
		go func(server *http.Server, ln net.Listener) {
			defer s.finished.Done()
			err := server.Serve(ln)
			if nil != err && !errors.Is(err, http.ErrServerClosed) {
				s.log.Errorf("server on: %s  error: %s", ln.Addr(), err)
			}
		}(server, ln)
	}

	s.started = true
	return nil
}

// Stop - shut down all listeners, waiting for active requests until
// ctx ends
func (s *Server) Stop(ctx context.Context) error {
	s.Lock()
	defer s.Unlock()

	if !s.started {
		return fault.ErrNotInitialised
	}

	s.log.Info("shutting down…")

	var first error
	for _, server := range s.servers {
		if err := server.Shutdown(ctx); nil != err && nil == first {
			first = err
		}
	}
	s.finished.Wait()

	s.servers = nil
	s.addrs = nil
	s.started = false

	s.log.Info("finished")
	return first
}
