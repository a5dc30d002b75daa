package middleware

import (
	"log"
	"net/http"
)

// RequestLog logs every incoming request with its body size. Image uploads
// carry multi-megabyte base64 payloads, so the size is worth having in logs.
func RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		size := r.Header.Get("Content-Length")
		if size == "" {
			size = "0"
		}
		log.Printf("Incoming Request: %s %s - Data size: %s bytes", r.Method, r.URL.Path, size)
		next.ServeHTTP(w, r)
	})
}
