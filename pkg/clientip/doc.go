// Package clientip resolves the address of the client behind reverse proxies.
//
// Only headers set by proxies you control should be trusted. The default
// order is CF-Connecting-IP, X-Forwarded-For, X-Real-IP, then RemoteAddr:
//
//	r.Use(clientip.New(cfg.TrustedHeaders...).Middleware)
//
//	ip := clientip.GetIPFromContext(ctx)
package clientip
