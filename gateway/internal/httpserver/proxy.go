package httpserver

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	echo "github.com/labstack/echo/v4"
)

// newProxy forwards to target after removing stripPrefix from the path.
// Upstream failures become a 502 with an echo-style {"message": ...} body.
func newProxy(name, target, stripPrefix string, logger *slog.Logger) (echo.HandlerFunc, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	p := &httputil.ReverseProxy{
		Transport:     transport,
		FlushInterval: 100 * time.Millisecond,
		Rewrite: func(r *httputil.ProxyRequest) {
			if stripPrefix != "" {
				r.Out.URL.Path = strings.TrimPrefix(r.Out.URL.Path, stripPrefix)
				r.Out.URL.RawPath = strings.TrimPrefix(r.Out.URL.RawPath, stripPrefix)
			}
			r.SetURL(u)
			r.SetXForwarded()
			r.Out.Host = r.In.Host
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error("upstream_failed",
				"upstream", name,
				"method", r.Method,
				"path", r.URL.Path,
				"error", err,
			)
			w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
			w.WriteHeader(http.StatusBadGateway)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": name + " service unavailable"})
		},
	}

	return func(c echo.Context) error {
		p.ServeHTTP(c.Response(), c.Request())
		return nil
	}, nil
}
