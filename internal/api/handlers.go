package api

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/meander/pkg/buildinfo"
	"github.com/matzehuels/meander/pkg/errors"
	"github.com/matzehuels/meander/pkg/meander"
	"github.com/matzehuels/meander/pkg/pipeline"
)

// Response headers set by the generate endpoint.
const (
	HeaderCache      = "X-Cache"
	HeaderParamsHash = "X-Params-Hash"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, meander.DefaultParams())
}

// handleGenerate decodes parameters over the defaults, runs the pipeline for
// a single format, and streams the artifact back.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatDXF
	}

	p, err := decodeParams(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	opts := pipeline.Options{
		Params:  p,
		Formats: []string{format},
		Logger:  s.logger.With("id", RequestIDFromContext(r.Context())),
	}
	if scale := r.URL.Query().Get("scale"); scale != "" {
		v, err := strconv.ParseFloat(scale, 64)
		if err != nil || v <= 0 {
			s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "scale must be a positive number, got %q", scale))
			return
		}
		opts.PNGScale = v
	}
	opts.Refresh, _ = strconv.ParseBool(r.URL.Query().Get("refresh"))

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	cacheStatus := "miss"
	if res.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	data := res.Artifacts[format]

	h := w.Header()
	h.Set("Content-Type", pipeline.ContentType(format))
	h.Set("Content-Length", strconv.Itoa(len(data)))
	h.Set(HeaderCache, cacheStatus)
	h.Set(HeaderParamsHash, res.ParamsHash)
	if format != pipeline.FormatSVG && format != pipeline.FormatJSON {
		h.Set("Content-Disposition", `attachment; filename="`+downloadName(p.Filename, format)+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// decodeParams reads a JSON parameter object on top of the defaults.
// An empty body yields the defaults.
func decodeParams(body io.Reader) (meander.Params, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return meander.Params{}, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return meander.Params{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}

	p := meander.DefaultParams()
	if len(bytes.TrimSpace(data)) == 0 {
		return p, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return meander.Params{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode parameters")
	}
	return p, nil
}

// downloadName derives an attachment filename for format from the
// requested output filename.
func downloadName(filename, format string) string {
	if filename == "" {
		filename = meander.DefaultFilename
	}
	paths, err := pipeline.OutputPaths(filename, []string{format})
	if err != nil {
		return "meander." + format
	}
	return strings.ReplaceAll(filepath.Base(paths[format]), `"`, "")
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidParameter, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestIDFromContext(r.Context()), "error", err)
	} else {
		s.logger.Debug("request rejected", "id", RequestIDFromContext(r.Context()), "error", err)
	}
	writeError(w, status, string(code), errors.UserMessage(err))
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{
		Code:      code,
		Message:   message,
		RequestID: w.Header().Get(HeaderRequestID),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
