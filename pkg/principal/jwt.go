package principal

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload issued by the auth service.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// JWTResolver resolves principals from HS256-signed tokens.
type JWTResolver struct {
	signingKey []byte
	extractor  TokenExtractorFunc
	issuer     string
}

// JWTOption configures a JWTResolver.
type JWTOption func(*JWTResolver)

// WithExtractor overrides where the token is read from. Defaults to the bearer header.
func WithExtractor(fn TokenExtractorFunc) JWTOption {
	return func(j *JWTResolver) {
		if fn != nil {
			j.extractor = fn
		}
	}
}

// WithIssuer requires and sets the iss claim.
func WithIssuer(iss string) JWTOption {
	return func(j *JWTResolver) {
		j.issuer = iss
	}
}

// NewJWTResolver creates a resolver validating tokens with signingKey.
func NewJWTResolver(signingKey string, opts ...JWTOption) (*JWTResolver, error) {
	if signingKey == "" {
		return nil, ErrMissingSigningKey
	}

	j := &JWTResolver{
		signingKey: []byte(signingKey),
		extractor:  BearerTokenExtractor,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

func (j *JWTResolver) Resolve(r *http.Request) (Principal, error) {
	tokenString, err := j.extractor(r)
	if err != nil {
		return Principal{}, err
	}
	return j.Parse(tokenString)
}

// Parse validates a token and returns its principal.
func (j *JWTResolver) Parse(tokenString string) (Principal, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if j.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(j.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return j.signingKey, nil
	}, parserOpts...)
	if err != nil {
		return Principal{}, errors.Join(ErrInvalidCredentials, err)
	}
	if !token.Valid || (claims.Subject == "" && claims.Role == "") {
		return Principal{}, ErrInvalidCredentials
	}

	return Principal{UserID: claims.Subject, Role: claims.Role}, nil
}

// Issue signs a token for p valid for ttl.
func (j *JWTResolver) Issue(p Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: p.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.signingKey)
}
