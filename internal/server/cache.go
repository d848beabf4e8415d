package server

import "net/http"

// noStore wraps a handler to set Cache-Control: no-store. Used for
// personalized pages like pending reviews.
func noStore(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		handler(w, r)
	}
}

// cacheControlHandler wraps an http.Handler to add a Cache-Control header.
func cacheControlHandler(h http.Handler, value string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", value)
		h.ServeHTTP(w, r)
	})
}
