package common

import "time"

const (
	// MaxJSONRequestBody limits JSON request bodies.
	MaxJSONRequestBody = 1 << 20
	// MaxMultipartMemory is the in-memory share of multipart photo uploads.
	MaxMultipartMemory = 10 << 20
	// RequestTimeout bounds every store round-trip made on behalf of a request.
	RequestTimeout = 5 * time.Second
)
