package middlewares

import "net/http"

// CORS allows the browser-based POS form to call the gateway from any
// origin. The surface is a local middleware, not a user-facing API.
func CORS(next http.Handler) http.Handler {
	corsFunc := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(corsFunc)
}
