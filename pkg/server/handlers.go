package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/isosort/pkg/buildinfo"
	"github.com/matzehuels/isosort/pkg/errors"
	"github.com/matzehuels/isosort/pkg/observability"
	"github.com/matzehuels/isosort/pkg/pipeline"
	"github.com/matzehuels/isosort/pkg/scene"
)

// Request is the body of the POST routes.
type Request struct {
	Scene        json.RawMessage  `json:"scene,omitempty"`
	Source       string           `json:"source,omitempty"`
	SourceFormat string           `json:"source_format,omitempty"`
	Options      pipeline.Options `json:"options"`
}

// scene decodes whichever form of the scene the request carries.
func (req *Request) scene() (*scene.Scene, error) {
	switch {
	case len(req.Scene) > 0 && req.Source != "":
		return nil, errors.New(errors.ErrCodeInvalidInput, "send either scene or source, not both")
	case len(req.Scene) > 0:
		return scene.Parse(req.Scene, scene.FormatJSON)
	case req.Source != "":
		f, err := scene.ParseFormat(req.SourceFormat)
		if err != nil {
			return nil, err
		}
		return scene.Parse([]byte(req.Source), f)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "scene or source is required")
}

// ErrorBody is the JSON shape of an error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   string `json:"cause,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	req, sc, err := s.decode(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.runner.SortWithCacheInfo(r.Context(), sc, req.Options)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	setCacheHeader(w, res.CacheHit)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	req, sc, err := s.decode(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts := req.Options
	if opts.Format == "" {
		opts.Format = pipeline.FormatSVG
	}
	data, hit, err := s.runner.GraphWithCacheInfo(r.Context(), sc, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	setCacheHeader(w, hit)
	w.Header().Set("Content-Type", pipeline.ContentType(opts.Format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*Request, *scene.Scene, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req Request
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", MaxBodyBytes)
		}
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	sc, err := req.scene()
	if err != nil {
		return nil, nil, err
	}
	return &req, sc, nil
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}

	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	detail := ErrorDetail{Code: string(code), Message: errors.UserMessage(err)}
	if cause := stderrors.Unwrap(err); cause != nil && status < http.StatusInternalServerError {
		detail.Cause = cause.Error()
	}
	writeJSON(w, status, ErrorBody{Error: detail})
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
