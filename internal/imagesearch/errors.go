package imagesearch

import "errors"

// Sentinel errors for provider lookups. They never escape the public
// Fetch methods; they classify the cause of a degraded lookup.
var (
	ErrNoKey          = errors.New("no image provider key")
	ErrProviderStatus = errors.New("image provider returned non-success status")
	ErrNetwork        = errors.New("image provider unreachable")
	ErrDecode         = errors.New("decoding image provider response")
	ErrNoResults      = errors.New("image provider returned no usable photo")
)
