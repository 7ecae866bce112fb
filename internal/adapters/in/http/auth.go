package http

import (
	"fmt"
	"net/http"
	"strings"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// Authenticate resolves the calling actor from an HS256 bearer token.
func Authenticate(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			if !ok || raw == "" {
				return errorJSON(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
			}

			claims := jwt.MapClaims{}
			_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if _, isHMAC := token.Method.(*jwt.SigningMethodHMAC); !isHMAC {
					return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
				}
				return secret, nil
			})
			if err != nil {
				return errorJSON(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
			}

			actor, err := actorFromClaims(claims)
			if err != nil {
				return errorJSON(c, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func actorFromClaims(claims jwt.MapClaims) (commands.Actor, error) {
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)

	id, err := kernel.UUIDFromString(sub)
	if err != nil {
		return commands.Actor{}, fmt.Errorf("invalid subject: %w", err)
	}
	return commands.NewActor(id, commands.Role(role))
}

func actorFrom(c echo.Context) commands.Actor {
	actor, _ := c.Get(actorContextKey).(commands.Actor)
	return actor
}
