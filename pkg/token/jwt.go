package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Princeyelab/GlamgoYelab-sub005/pkg/utils"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnauthenticated is the single error kind exposed to callers. Missing,
// malformed, expired and badly signed credentials all collapse into it;
// the concrete reason is only logged.
var ErrUnauthenticated = errors.New("unauthenticated")

// Claims are the identity attributes carried inside an access token
type Claims struct {
	Sub  string `json:"sub"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Sub)
}

// Verifier issues and validates access tokens. Verification is a pure
// function of the raw token, the trust key and the current time.
type Verifier struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
	log    *zap.Logger
}

func NewVerifier(config utils.JWTConfig, log *zap.Logger) *Verifier {
	return &Verifier{
		secret: []byte(config.Secret),
		expiry: time.Duration(config.ExpiryHours) * time.Hour,
		now:    time.Now,
		log:    log.With(zap.String("component", "token")),
	}
}

// WithClock overrides the time source, used by tests to freeze expiry
func (v *Verifier) WithClock(now func() time.Time) *Verifier {
	v.now = now
	return v
}

// Issue creates a signed access token for the given identity
func (v *Verifier) Issue(userID uuid.UUID, role string) (string, time.Time, error) {
	issuedAt := v.now()
	expiresAt := issuedAt.Add(v.expiry)

	claims := Claims{
		Sub:  userID.String(),
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify validates signature and expiry and returns the embedded claims.
// Every failure is returned as ErrUnauthenticated; the sub-reason is logged
// so operators can tell an expired token from a forged one.
func (v *Verifier) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithTimeFunc(v.now))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			v.log.Warn("Token expired")
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			v.log.Warn("Token signature invalid")
		case errors.Is(err, jwt.ErrTokenMalformed):
			v.log.Warn("Token malformed")
		default:
			v.log.Warn("Token rejected", zap.Error(err))
		}
		return nil, ErrUnauthenticated
	}

	if !parsed.Valid {
		v.log.Warn("Token invalid after parse")
		return nil, ErrUnauthenticated
	}

	if _, err := claims.UserID(); err != nil {
		v.log.Warn("Token subject is not a UUID", zap.String("sub", claims.Sub))
		return nil, ErrUnauthenticated
	}

	return claims, nil
}

// VerifyHeader extracts the bearer token from an Authorization header value
// and verifies it. An absent or malformed header is a verification failure,
// never a panic.
func (v *Verifier) VerifyHeader(header string) (*Claims, error) {
	if header == "" {
		v.log.Warn("Missing authorization header")
		return nil, ErrUnauthenticated
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		v.log.Warn("Malformed authorization header")
		return nil, ErrUnauthenticated
	}

	return v.Verify(parts[1])
}
