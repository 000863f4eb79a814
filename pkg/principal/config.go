package principal

// Config holds credential sources. Either source may be disabled by leaving it empty.
type Config struct {
	JWTSecret     string `env:"AUTH_JWT_SECRET"`
	JWTIssuer     string `env:"AUTH_JWT_ISSUER"`
	TokenCookie   string `env:"AUTH_TOKEN_COOKIE" envDefault:"auth_token"`
	SessionCookie string `env:"AUTH_SESSION_COOKIE" envDefault:"session_id"`
	SessionPrefix string `env:"AUTH_SESSION_PREFIX" envDefault:"session:"`
}
