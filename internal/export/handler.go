package export

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/buildtrack/buildtrack/internal/platform/httpx"
	"github.com/buildtrack/buildtrack/internal/sectiondata"
	"github.com/buildtrack/buildtrack/internal/shared"
)

// Loader provides the rows of a section for the request user.
type Loader interface {
	Load(r *http.Request, section sectiondata.Section) (any, error)
}

// Handler serves CSV downloads.
type Handler struct {
	logger  *slog.Logger
	loader  Loader
	now     func() time.Time
	csvPool sync.Pool
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, loader Loader) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{logger: logger, loader: loader, now: time.Now}
	h.csvPool.New = func() any { return new(bytes.Buffer) }
	return h
}

// MountRoutes registers the download route. Callers gate it behind the
// export permission.
func (h *Handler) MountRoutes(r chi.Router) {
	limiter := httprate.Limit(10, time.Minute,
		httprate.WithKeyFuncs(rateLimitKey),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)
	r.With(limiter).Get("/{section}.csv", h.handleCSV)
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "section")
	section, ok := sectiondata.Parse(raw)
	if !ok || !Supports(section.String()) {
		httpx.RespondError(w, fmt.Errorf("export %q: %w", raw, httpx.ErrNotFound))
		return
	}

	data, err := h.loader.Load(r, section)
	if errors.Is(err, shared.ErrUnauthenticated) {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", shared.UserSafeMessage(err))
		return
	}
	if errors.Is(err, httpx.ErrForbidden) {
		httpx.RespondError(w, err)
		return
	}
	if err != nil {
		h.logger.Warn("load export rows", slog.String("section", section.String()), slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Export Failed", sectiondata.Message(err))
		return
	}

	buf := h.csvPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		buf.Reset()
		h.csvPool.Put(buf)
	}()

	if err := Write(buf, section, data); err != nil {
		h.logger.Error("write csv", slog.String("section", section.String()), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("buildtrack-%s-%s.csv", section, h.now().Format(dateLayout))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("stream csv", slog.Any("error", err))
	}
}

func rateLimitKey(r *http.Request) (string, error) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		if user := strings.TrimSpace(sess.User()); user != "" {
			return "user:" + user, nil
		}
	}
	key, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}
	return "ip:" + key, nil
}
