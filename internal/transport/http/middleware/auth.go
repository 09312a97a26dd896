package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pribylovaa/go-fitness-tracker/internal/models"
	"github.com/pribylovaa/go-fitness-tracker/internal/service"
	"github.com/pribylovaa/go-fitness-tracker/internal/transport/http/httperr"
)

// TokenVerifier проверяет access-токен и возвращает identity-claims.
type TokenVerifier interface {
	Authenticate(ctx context.Context, accessToken string) (*models.Claims, error)
}

type claimsKeyType struct{}

var claimsKey claimsKeyType

// ClaimsFrom возвращает identity-claims запроса, положенные AuthBearer.
func ClaimsFrom(ctx context.Context) (*models.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*models.Claims)
	return c, ok
}

// AuthBearer извлекает Bearer-токен из Authorization, проверяет его и кладёт
// claims в контекст. Запросы без токена получают 401, с истёкшим — 401
// token_expired (клиенту следует обновиться через refresh), с подделанным — 403.
func AuthBearer(v TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				httperr.WriteError(w, r, service.ErrMissingToken)
				return
			}

			claims, err := v.Authenticate(r.Context(), token)
			if err != nil {
				httperr.WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if strings.HasPrefix(auth, prefix) && len(auth) > len(prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}
	return ""
}
