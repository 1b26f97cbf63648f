// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements idempotency support for unsafe requests. It validates
// an Idempotency-Key request header and, for routes that declare a scope,
// asks a lookup whether a stored result already exists for
// (user, scope, key). Downstream code can then:
//   - read the validated key (GetIdempotencyKey)
//   - detect replayed requests (IsReplay)
//   - skip edge rate limiting for a replay (IsRateBypass)
//
// Serving the stored payload is left to the service layer; this middleware
// only annotates the request.
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the request header carrying the idempotency key.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotencyReplayed marks responses served from a stored result.
const HeaderIdempotencyReplayed = "Idempotency-Replayed"

const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay"
	ctxKeyRateBypass = "rate.bypass"
)

// defaultKeyPattern is an RFC 7230 token plus common safe characters.
var defaultKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// GetIdempotencyKey returns the key validated by IdempotencyValidator.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether a stored result exists for this request's key.
func IsReplay(c *gin.Context) bool {
	return c.GetBool(ctxKeyIdemReplay)
}

// ScopeFunc names the idempotency scope of a request; "" disables lookup.
type ScopeFunc func(*gin.Context) string

// IdempotencyOptions configures IdempotencyValidator.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters; nil uses defaultKeyPattern.
	Pattern *regexp.Regexp
	// Scope maps a request to its idempotency scope. Nil disables lookup.
	Scope ScopeFunc
}

// IdempotencyLookup answers whether an unexpired result exists for
// (userID, scope, key) at now. Errors are treated as "no replay".
type IdempotencyLookup func(ctx context.Context, userID, scope, key string, now time.Time) (bool, error)

// IdempotencyValidator validates the Idempotency-Key header when present and
// stashes it in the Gin context. An invalid key is answered with 400. When
// the route has a scope and lookup reports a stored result, the request is
// marked as a replay and exempted from rate limiting.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = defaultKeyPattern
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": RequestIDFrom(c),
				"code":       "bad_idempotency_key",
				"message":    "invalid Idempotency-Key",
			})
			return
		}
		c.Set(ctxKeyIdemKey, key)

		if lookup != nil && opts.Scope != nil {
			if scope := opts.Scope(c); scope != "" {
				exists, err := lookup(c.Request.Context(), UserIDFrom(c), scope, key, time.Now().UTC())
				if err != nil {
					LoggerFrom(c).Warn().Err(err).Str("scope", scope).Msg("idempotency lookup failed")
				}
				if exists {
					c.Set(ctxKeyIdemReplay, true)
					c.Set(ctxKeyRateBypass, true)
				}
			}
		}

		c.Next()
	}
}
