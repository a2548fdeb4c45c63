package componentbuilder

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"
)

const (
	PathConvert = "/convert"
	PathHealthz = "/healthz"

	// markup bodies beyond this size are rejected
	maxBodyBytes = 10 << 20
)

type service struct {
	b *Builder
	l *zap.Logger
}

// NewService exposes a builder over http, POST markup to /convert to get the element tree as json
func NewService(b *Builder, l *zap.Logger) http.Handler {
	if l == nil {
		l = zap.NewNop()
	}
	return &service{
		b: b,
		l: l,
	}
}

func (s *service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case PathHealthz:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	case PathConvert:
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.convert(w, r)
	default:
		http.Error(w, "not found, try POST "+PathConvert, http.StatusNotFound)
	}
}

func (s *service) convert(w http.ResponseWriter, r *http.Request) {
	markupBytes, errRead := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if errRead != nil {
		s.l.Info("could not read markup", zap.Error(errRead))
		http.Error(w, "could not read markup: "+errRead.Error(), http.StatusBadRequest)
		return
	}
	element, errBuild := s.b.Build(string(markupBytes))
	if errBuild != nil {
		s.l.Info("could not convert markup", zap.Error(errBuild), zap.Int("length", len(markupBytes)))
		http.Error(w, "could not convert markup: "+errBuild.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	errEncode := json.NewEncoder(w).Encode(element)
	if errEncode != nil {
		s.l.Warn("could not encode element tree", zap.Error(errEncode))
	}
}
