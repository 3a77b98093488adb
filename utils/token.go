package utils

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const TokenCookie = "token"

// TokenIssuer signs login claims into the auth cookie. Validity is purely a
// function of signature and expiry; nothing is stored server side.
type TokenIssuer struct {
	secret     []byte
	ttl        time.Duration
	production bool
	now        func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration, production bool) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		ttl:        ttl,
		production: production,
		now:        time.Now,
	}
}

// WithClock returns a copy of the issuer that reads time from now.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	cp := *i
	cp.now = now
	return &cp
}

func (i *TokenIssuer) Secret() []byte {
	return i.secret
}

// Issue signs the supplied claims. iat and exp are always overwritten.
func (i *TokenIssuer) Issue(claims map[string]interface{}) (string, time.Time, error) {
	issuedAt := i.now()
	expiresAt := issuedAt.Add(i.ttl)

	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	mc["iat"] = issuedAt.Unix()
	mc["exp"] = expiresAt.Unix()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (i *TokenIssuer) Cookie(token string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   i.production,
		SameSite: i.sameSite(),
	}
}

// ClearCookie expires the auth cookie on the client. A copied token stays
// valid until its own exp.
func (i *TokenIssuer) ClearCookie() *fiber.Cookie {
	return &fiber.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  i.now().Add(-24 * time.Hour),
		HTTPOnly: true,
		Secure:   i.production,
		SameSite: i.sameSite(),
	}
}

func (i *TokenIssuer) sameSite() string {
	if i.production {
		return fiber.CookieSameSiteNoneMode
	}
	return fiber.CookieSameSiteStrictMode
}
