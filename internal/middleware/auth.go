package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/convoycubano1-glitch/boostify-progress/internal/config"
	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/serializer"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// OwnerAuth authenticates requests with the HS256 bearer tokens issued by
// the account service and stores the owner identity in the gin context.
// Every data route in this service is owner-scoped, so an absent or
// invalid token short-circuits here with 401.
func OwnerAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(cfg.Auth.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		// owner_id identifies requests in traces for per-account filtering
		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			span.SetAttributes(attribute.String("owner_id", sub))
		}

		c.Set("owner_id", sub)
		if name, ok := claims["name"].(string); ok {
			c.Set("owner_name", name)
		}
		c.Next()
	}
}
