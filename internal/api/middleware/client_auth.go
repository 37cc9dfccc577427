package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gameforge/auth-core/internal/api/metrics"
	"github.com/gameforge/auth-core/internal/core/domain"
	"github.com/gameforge/auth-core/internal/core/ports"
)

// ContextKeyClient is where ClientAuth stores the verified client identity.
const ContextKeyClient = "api_client_id"

// ClientAuth authenticates the calling service. The bearer token must verify
// against the codec and its embedded version must equal the live APIClient
// version; a bumped version rejects every previously issued token. All
// failure modes collapse into the same 401 so callers learn nothing about
// which check tripped.
func ClientAuth(codec ports.TokenCodec, clients ports.ClientRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorizedClient("missing_header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return unauthorizedClient("bad_header")
			}

			claims, err := codec.Verify(parts[1])
			if err != nil {
				return unauthorizedClient("bad_token")
			}

			client, err := clients.FindByID(c.Request().Context(), claims.ClientID)
			if err != nil {
				if errors.Is(err, domain.ErrClientNotFound) {
					return unauthorizedClient("unknown_client")
				}
				// Store failure, not a credential problem: the
				// central handler logs it and answers 500.
				return err
			}
			if client.Version != claims.Version {
				return unauthorizedClient("stale_version")
			}

			c.Set(ContextKeyClient, client.ID)
			return next(c)
		}
	}
}

func unauthorizedClient(reason string) error {
	metrics.GateDenialsTotal.WithLabelValues("client_auth", reason).Inc()
	return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
}
