package markup

import (
	"net/http"
)

// Respond renders c and writes it as an HTML response. When rendering fails
// the partial output is discarded and a plain 500 response is sent instead.
func Respond(w http.ResponseWriter, c Content) {
	body, err := Render(c)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// Handler returns an http.Handler that renders the content built for each
// request.
func Handler(fn func(r *http.Request) Content) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Respond(w, fn(r))
	})
}
