// Package principal identifies the user behind an HTTP request.
//
// Authentication itself happens elsewhere; this package only reads what the
// auth service left behind: a signed JWT (cookie or bearer header) or a
// server-side session in Redis. Resolvers are combined with Chain and
// installed with Middleware:
//
//	jwtRes, _ := principal.NewJWTResolver(cfg.JWTSecret,
//	    principal.WithExtractor(principal.FirstOf(
//	        principal.BearerTokenExtractor,
//	        principal.CookieTokenExtractor(cfg.TokenCookie),
//	    )),
//	)
//	chain := principal.NewChain(jwtRes, principal.NewRedisSessionResolver(rdb, cfg.SessionCookie, cfg.SessionPrefix))
//	r.Use(principal.Middleware(chain, log))
//
// Handlers read the result with FromContext.
package principal
