// Package network holds the HTTP client used for remote catalogs.
package network

import (
	"net/http"
	"time"
)

// Client is shared by every remote catalog download.
var Client = &http.Client{
	Timeout:   15 * time.Second,
	Transport: newTransport(),
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConnsPerHost = 4
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 10 * time.Second
	return t
}
