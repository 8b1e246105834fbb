// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	cache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/metachain/cid"
	"github.com/bitmark-inc/metachain/fault"
	"github.com/bitmark-inc/metachain/ratelimit"
)

const (
	cidMetadataKey     = "cid"
	contentType        = "application/json"
	noSuchKey          = "NoSuchKey"
	cacheExpiration    = 30 * time.Minute
	cacheCleanup       = 10 * time.Minute
	gatewayDialTimeout = 5 * time.Second
)

// the parts of minio.Client in use
type objectClient interface {
	PutObject(ctx context.Context, bucketName string, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	StatObject(ctx context.Context, bucketName string, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

// Store - bundles uploaded to a bucket and read through a gateway
type Store struct {
	log     *logger.L
	config  Configuration
	client  objectClient
	http    *http.Client
	limiter *rate.Limiter
	cache   *cache.Cache
}

// New - connect to the object store described by configuration
func New(log *logger.L, configuration Configuration) (*Store, error) {
	configuration.Defaults()
	if err := configuration.Validate(); nil != err {
		return nil, err
	}

	client, err := minio.New(configuration.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(configuration.AccessKey, configuration.SecretKey, ""),
		Secure: !configuration.Insecure,
		Region: configuration.Region,
	})
	if nil != err {
		return nil, err
	}

	log.Infof("endpoint: %s  bucket: %s  gateway: %s", configuration.Endpoint, configuration.Bucket, configuration.Gateway)
	return newStore(log, configuration, client), nil
}

func newStore(log *logger.L, configuration Configuration, client objectClient) *Store {
	configuration.Defaults()

	dialer := &net.Dialer{
		Timeout:   gatewayDialTimeout,
		KeepAlive: 30 * time.Second,
	}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		MaxIdleConns:        16,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}

	return &Store{
		log:    log,
		config: configuration,
		client: client,
		http: &http.Client{
			Transport: transport,
			Timeout:   configuration.timeout(),
		},
		limiter: rate.NewLimiter(rate.Limit(configuration.Rate), configuration.Burst),
		cache:   cache.New(cacheExpiration, cacheCleanup),
	}
}

// Put - upload data unless an object with the same content is
// already present, then return the identifier assigned by the service
func (s *Store) Put(ctx context.Context, data []byte) (cid.CID, error) {
	if int64(len(data)) > s.config.MaximumSize {
		return "", fault.ErrBundleTooLarge
	}

	// the object name is derived from the content so a second upload
	// of identical bytes finds the first
	local, err := cid.Sum(data)
	if nil != err {
		return "", err
	}
	name := s.config.Prefix + local.String()

	id, err := s.stat(ctx, name)
	if nil == err {
		s.log.Debugf("exists: %s  cid: %s", name, id)
		return id, nil
	}
	if fault.ErrNotFound != err {
		return "", err
	}

	info, err := s.client.PutObject(ctx, s.config.Bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if nil != err {
		s.log.Errorf("upload: %s  error: %s", name, err)
		return "", err
	}
	s.log.Debugf("uploaded: %s  etag: %s  size: %d", name, info.ETag, info.Size)

	id, err = s.stat(ctx, name)
	if fault.ErrNotFound == err {
		return "", fault.ErrMissingCID
	}
	if nil != err {
		return "", err
	}

	s.cache.Set(id.String(), data, cache.DefaultExpiration)
	s.log.Infof("stored: %s  cid: %s  %d bytes", name, id, len(data))
	return id, nil
}

// identifier recorded for an object name
func (s *Store) stat(ctx context.Context, name string) (cid.CID, error) {
	info, err := s.client.StatObject(ctx, s.config.Bucket, name, minio.StatObjectOptions{})
	if nil != err {
		if noSuchKey == minio.ToErrorResponse(err).Code {
			return "", fault.ErrNotFound
		}
		return "", err
	}

	value := ""
	for k, v := range info.UserMetadata {
		if strings.EqualFold(k, cidMetadataKey) {
			value = v
			break
		}
	}
	if "" == value && nil != info.Metadata {
		value = info.Metadata.Get("X-Amz-Meta-Cid")
	}
	if "" == value {
		return "", fault.ErrMissingCID
	}
	return cid.Parse(value)
}

// Get - fetch an identifier through the gateway
func (s *Store) Get(ctx context.Context, id cid.CID) ([]byte, error) {
	if item, found := s.cache.Get(id.String()); found {
		return copyBytes(item.([]byte)), nil
	}

	if err := ratelimit.Limit(ctx, s.limiter); nil != err {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, s.ResolveURI(id), nil)
	if nil != err {
		return nil, err
	}

	response, err := s.http.Do(request)
	if nil != err {
		return nil, err
	}
	defer response.Body.Close()

	switch response.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusGone:
		return nil, fault.ErrNotFound
	case http.StatusTooManyRequests:
		return nil, fault.ErrRateLimiting
	default:
		return nil, fmt.Errorf("%w: %s", fault.ErrUnexpectedStatus, response.Status)
	}

	data, err := io.ReadAll(io.LimitReader(response.Body, s.config.MaximumSize+1))
	if nil != err {
		return nil, err
	}
	if int64(len(data)) > s.config.MaximumSize {
		return nil, fault.ErrBundleTooLarge
	}

	s.cache.Set(id.String(), data, cache.DefaultExpiration)
	s.log.Debugf("fetched: %s  %d bytes", id, len(data))
	return copyBytes(data), nil
}

// ResolveURI - gateway address of id
func (s *Store) ResolveURI(id cid.CID) string {
	return id.Locator(s.config.Gateway)
}

func copyBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
