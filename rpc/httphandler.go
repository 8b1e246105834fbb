// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/metachain/cid"
	"github.com/bitmark-inc/metachain/fault"
	"github.com/bitmark-inc/metachain/gateway"
	"github.com/bitmark-inc/metachain/history"
	"github.com/bitmark-inc/metachain/ratelimit"
)

// the argument passed to the handlers
type httpHandler struct {
	log                *logger.L
	resolver           *history.Resolver
	store              gateway.Store
	anchor             gateway.Anchor
	limiter            *rate.Limiter
	timeout            time.Duration
	start              time.Time
	version            string
	allow              map[string][]*net.IPNet
	maximumConnections uint64

	active   int64
	requests uint64
}

func (s *httpHandler) mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/history/{id}", s.history)
	mux.HandleFunc("/v1/anchor/{id}", s.anchorOf)
	mux.HandleFunc("/v1/details", s.details)
	mux.HandleFunc("/", s.root)
	return mux
}

// this matches anything not matched and returns error
func (s *httpHandler) root(w http.ResponseWriter, r *http.Request) {
	sendNotFound(w)
}

// common entry to the query handlers: method check, connection
// limit and rate limit; the returned context carries the request deadline
func (s *httpHandler) begin(w http.ResponseWriter, r *http.Request) (context.Context, context.CancelFunc, bool) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return nil, nil, false
	}

	atomic.AddUint64(&s.requests, 1)
	if n := atomic.AddInt64(&s.active, 1); uint64(n) > s.maximumConnections {
		atomic.AddInt64(&s.active, -1)
		s.log.Warnf("connection limit reached: %d  from: %q", s.maximumConnections, r.RemoteAddr)
		sendError(w, "too many connections", http.StatusServiceUnavailable)
		return nil, nil, false
	}

	var ctx context.Context
	var cancel context.CancelFunc
	if s.timeout > 0 {
		ctx, cancel = context.WithTimeout(r.Context(), s.timeout)
	} else {
		ctx, cancel = context.WithCancel(r.Context())
	}
	done := func() {
		cancel()
		atomic.AddInt64(&s.active, -1)
	}

	if err := ratelimit.Limit(ctx, s.limiter); nil != err {
		done()
		s.log.Warnf("rate limited: %q  error: %s", r.RemoteAddr, err)
		sendError(w, fault.ErrRateLimiting.Error(), http.StatusTooManyRequests)
		return nil, nil, false
	}

	return ctx, done, true
}

// decimal record id from the path
func recordID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if nil != err {
		sendBadRequest(w)
		return 0, false
	}
	return id, true
}

type historyReply struct {
	ID         uint64          `json:"id"`
	URIHistory []string        `json:"uriHistory"`
	CIDs       []cid.CID       `json:"cids"`
	Entries    []history.Entry `json:"entries,omitempty"`
	Code       int             `json:"code,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// GET every version of a record, newest first
//
// query parameters:
//   records=<bool>   [include the record of each version  default: false]
func (s *httpHandler) history(w http.ResponseWriter, r *http.Request) {
	ctx, done, ok := s.begin(w, r)
	if !ok {
		return
	}
	defer done()

	id, ok := recordID(w, r)
	if !ok {
		return
	}

	withRecords, _ := strconv.ParseBool(r.URL.Query().Get("records"))

	entries, err := s.resolver.Walk(ctx, id)

	reply := historyReply{
		ID:         id,
		URIHistory: make([]string, len(entries)),
		CIDs:       make([]cid.CID, len(entries)),
	}
	for i, e := range entries {
		reply.URIHistory[i] = e.URI
		reply.CIDs[i] = e.CID
	}
	if withRecords {
		reply.Entries = entries
	}

	code := http.StatusOK
	if nil != err {
		code = errorStatus(err)
		reply.Code = code
		reply.Error = err.Error()
		s.log.Warnf("history: %d  after: %d versions  error: %s", id, len(entries), err)
	} else {
		s.log.Debugf("history: %d  versions: %d", id, len(entries))
	}

	sendStatus(w, code, reply)
}

type anchorReply struct {
	ID  uint64  `json:"id"`
	CID cid.CID `json:"cid"`
	URI string  `json:"uri"`
	URL string  `json:"url"`
}

// GET the currently published identifier of a record
func (s *httpHandler) anchorOf(w http.ResponseWriter, r *http.Request) {
	ctx, done, ok := s.begin(w, r)
	if !ok {
		return
	}
	defer done()

	id, ok := recordID(w, r)
	if !ok {
		return
	}

	c, err := s.anchor.GetAnchor(ctx, id)
	if nil != err {
		s.log.Warnf("anchor: %d  error: %s", id, err)
		sendError(w, err.Error(), errorStatus(err))
		return
	}

	sendReply(w, anchorReply{
		ID:  id,
		CID: c,
		URI: c.URI(),
		URL: s.store.ResolveURI(c),
	})
}

// GET server status (restricted by the "details" allow list)
func (s *httpHandler) details(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !s.allowed("details", r.RemoteAddr) {
		s.log.Warnf("Deny access: %q", r.RemoteAddr)
		sendForbidden(w)
		return
	}

	type theReply struct {
		Version  string `json:"version"`
		Uptime   string `json:"uptime"`
		Requests uint64 `json:"requests"`
		Active   int64  `json:"active"`
	}

	sendReply(w, theReply{
		Version:  s.version,
		Uptime:   time.Since(s.start).String(),
		Requests: atomic.LoadUint64(&s.requests),
		Active:   atomic.LoadInt64(&s.active),
	})
}

// check the remote address against a path's allow list
func (s *httpHandler) allowed(path string, remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if nil != err {
		return false
	}
	ip := net.ParseIP(host)
	if nil == ip {
		return false
	}
	for _, n := range s.allow[path] {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// HTTP status for each class of error
func errorStatus(err error) int {
	switch {
	case errors.Is(err, fault.ErrTimeout),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout
	case errors.Is(err, fault.ErrRateLimiting):
		return http.StatusTooManyRequests
	case errors.Is(err, fault.ErrCycleDetected),
		errors.Is(err, fault.ErrMaxDepthExceeded):
		return http.StatusLoopDetected
	case fault.IsErrNotFound(err):
		return http.StatusNotFound
	case fault.IsErrInvalid(err):
		return http.StatusBadRequest
	case fault.IsErrProcess(err), fault.IsErrLimit(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// send an JSON encoded reply
func sendReply(w http.ResponseWriter, data interface{}) {
	sendStatus(w, http.StatusOK, data)
}

// send an JSON encoded reply with a specific status
func sendStatus(w http.ResponseWriter, code int, data interface{}) {
	text, err := json.Marshal(data)
	if nil != err {
		sendInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	w.Write(text)
}

// selected errors as required above
func sendBadRequest(w http.ResponseWriter) {
	sendError(w, "bad request", http.StatusBadRequest)
}
func sendNotFound(w http.ResponseWriter) {
	sendError(w, "not found", http.StatusNotFound)
}
func sendMethodNotAllowed(w http.ResponseWriter) {
	sendError(w, "method not allowed", http.StatusMethodNotAllowed)
}
func sendForbidden(w http.ResponseWriter) {
	sendError(w, "forbidden", http.StatusForbidden)
}
func sendInternalServerError(w http.ResponseWriter) {
	sendError(w, "internal server error", http.StatusInternalServerError)
}

// to compose JSON error messages
type eType struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// output an error with a JSON body
func sendError(w http.ResponseWriter, message string, code int) {
	text, err := json.Marshal(eType{
		Code:  code,
		Error: message,
	})
	if nil != err {
		// manually composed error just incase JSON fails
		http.Error(w, `{"code":500,"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	w.Write(text)
}
