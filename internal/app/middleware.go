package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/buildtrack/buildtrack/internal/observability"
	"github.com/buildtrack/buildtrack/internal/shared"
)

// MiddlewareConfig carries what the BuildTrack middleware chain needs.
type MiddlewareConfig struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	Metrics        *observability.Metrics
}

// MiddlewareStack returns the chain in installation order. Sessions load
// before Recoverer so a panicking handler still persists its session.
func MiddlewareStack(cfg MiddlewareConfig) []func(http.Handler) http.Handler {
	chain := []func(http.Handler) http.Handler{
		middleware.RealIP,
		middleware.RequestID,
		sessionLoader(cfg.Logger, cfg.SessionManager),
		middleware.Recoverer,
		middleware.Timeout(requestTimeout(cfg.Config)),
		secureHeaders(cfg.Logger, cfg.Config.IsProduction()),
		middleware.Compress(5),
		httprate.Limit(rateLimit(cfg.Config), time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)),
		csrfGuard(cfg.Logger, cfg.CSRFManager),
	}
	if cfg.Metrics != nil {
		chain = append(chain, cfg.Metrics.Middleware)
	}
	return chain
}

// sessionLoader attaches the session to the request context and writes it
// back to Redis before the first byte of the response.
func sessionLoader(logger *slog.Logger, sessions *shared.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sessions.Load(r.Context(), r)
			if err != nil {
				logger.Error("load session", slog.Any("error", err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			r = r.WithContext(shared.ContextWithSession(r.Context(), sess))
			sw := &sessionWriter{ResponseWriter: w, logger: logger, sessions: sessions, sess: sess, req: r}
			next.ServeHTTP(sw, r)
			sw.commit()
		})
	}
}

type sessionWriter struct {
	http.ResponseWriter
	logger    *slog.Logger
	sessions  *shared.SessionManager
	sess      *shared.Session
	req       *http.Request
	committed bool
}

// commit runs once, while headers can still carry the session cookie.
func (w *sessionWriter) commit() {
	if w.committed {
		return
	}
	w.committed = true
	if err := w.sessions.Commit(w.req.Context(), w.ResponseWriter, w.req, w.sess); err != nil {
		w.logger.Error("commit session", slog.String("path", w.req.URL.Path), slog.Any("error", err))
	}
}

func (w *sessionWriter) WriteHeader(status int) {
	w.commit()
	w.ResponseWriter.WriteHeader(status)
}

func (w *sessionWriter) Write(p []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(p)
}

func (w *sessionWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// secureHeaders applies the browser hardening headers. Pages carry no
// script and no inline style, so the policy stays at 'self'.
func secureHeaders(logger *slog.Logger, production bool) func(http.Handler) http.Handler {
	headers := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "same-origin",
		PermissionsPolicy:     "camera=(), microphone=(), geolocation=()",
		ContentSecurityPolicy: "default-src 'self'; form-action 'self'; frame-ancestors 'none'",
		SSLRedirect:           production,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
	})
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := headers.Process(w, r); err != nil {
				logger.Warn("secure headers rejected request", slog.String("host", r.Host), slog.Any("error", err))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// csrfGuard checks the token of every unsafe request, from the form field
// or the header.
func csrfGuard(logger *slog.Logger, tokens *shared.CSRFManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			sess := shared.SessionFromContext(r.Context())
			if sess == nil {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			token := r.PostFormValue(shared.CSRFFormField)
			if token == "" {
				token = r.Header.Get(shared.CSRFHeader)
			}
			if err := tokens.VerifyToken(r.Context(), sess, token); err != nil {
				logger.Warn("csrf check failed", slog.String("path", r.URL.Path), slog.Any("error", err))
				http.Error(w, shared.UserSafeMessage(err), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestTimeout(cfg *Config) time.Duration {
	if cfg == nil || cfg.AppRequestTimeout <= 0 {
		return 30 * time.Second
	}
	return cfg.AppRequestTimeout
}

// rateLimit is the per-IP request budget per minute. The skeleton page
// refreshes itself while sections load, so the budget leaves room for it.
func rateLimit(cfg *Config) int {
	const base = 120
	if cfg == nil || cfg.SkeletonRefresh <= 0 {
		return base
	}
	return base + int(time.Minute/cfg.SkeletonRefresh)
}
