package web

import (
	"net/http"
	"strings"

	"mouldsite/framework/httpserver"
	"mouldsite/internal/config"
)

const cacheControlPublicHour = "public, max-age=3600, s-maxage=3600"

// cacheControlLocation keeps location pages fresh for a shorter time since
// their content follows the registry deploys.
const cacheControlLocation = "public, max-age=600, s-maxage=3600"

func setCacheControlPublicHour(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", cacheControlPublicHour)
}

func cachePolicies(cfg config.Config) httpserver.CachePolicies {
	policies := httpserver.DefaultCachePolicies()
	policies.HTML = cacheControlPublicHour
	policies.Static = cacheControlPublicHour
	if live := strings.TrimSpace(cfg.CacheLiveNavigation); live != "" {
		policies.Partial = live
	}
	return policies
}

// withLocationCache shortens the page cache for location routes only.
func withLocationCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/locations/") {
			next.ServeHTTP(&locationCacheWriter{ResponseWriter: w}, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type locationCacheWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *locationCacheWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		if code == http.StatusOK && w.Header().Get("Cache-Control") == cacheControlPublicHour {
			w.Header().Set("Cache-Control", cacheControlLocation)
		}
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *locationCacheWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *locationCacheWriter) Flush() {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (w *locationCacheWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
