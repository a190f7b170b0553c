package middleware

import (
	"net/http"
	"strings"
)

// RequireAdmin corta con 401 si no hay claims y con 403 si el rol no es admin.
// Se cuelga de los grupos de rutas administrativas en el router; los handlers
// después solo leen GetClaims cuando necesitan el user id.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !claims.IsAdmin() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
