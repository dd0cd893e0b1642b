package web

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/excel2erp/excel2erp"
	"github.com/excel2erp/excel2erp/internal/logging"
	"github.com/go-chi/chi/v5"
)

type indexData struct {
	Config *excel2erp.Config
}

type formsData struct {
	Config  *excel2erp.Config
	Source  *excel2erp.Source
	Missing []excel2erp.ResultProperty
}

type errorData struct {
	Message string
	Details string
}

// handleIndex renders the landing page with the source selector.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "index.html.tmpl", indexData{Config: s.cfg})
}

// handleForms renders the form partial for the selected source: one input
// per property the source cannot supply, plus the workbook picker. An empty
// or unknown source yields an empty partial, clearing the form area.
func (s *Server) handleForms(w http.ResponseWriter, r *http.Request) {
	src := s.cfg.Source(r.URL.Query().Get("source"))
	if src == nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		return
	}
	s.render(w, http.StatusOK, "forms.html.tmpl", formsData{
		Config:  s.cfg,
		Source:  src,
		Missing: excel2erp.MissingProperties(src, s.cfg.Result.Header),
	})
}

// handleLoad converts an uploaded workbook and streams back the archive as
// an attachment. Date-typed user fields are normalized to digits before the
// conversion runs.
func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadSize)
	if err := r.ParseMultipartForm(s.opts.MaxUploadSize); err != nil {
		s.renderError(w, http.StatusBadRequest, s.cfg.Param("extractionError"), err.Error())
		return
	}

	sourceName := r.FormValue("source")
	src := s.cfg.Source(sourceName)
	if src == nil {
		s.renderError(w, http.StatusBadRequest, "Fuente no seleccionada", "")
		return
	}

	file, fh, err := r.FormFile("wbFile")
	if err != nil {
		s.renderError(w, http.StatusBadRequest, "Archivo no proporcionado", "")
		return
	}
	defer file.Close()
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
		s.renderError(w, http.StatusBadRequest, "Solo archivos .xlsx", "")
		return
	}

	fields := make(excel2erp.Record)
	for _, p := range excel2erp.MissingProperties(src, s.cfg.Result.Header) {
		value := r.FormValue(p.Name)
		if p.Type.IsDate() {
			value = excel2erp.NormalizeDate(value)
		}
		fields[p.Name] = value
	}

	res, err := excel2erp.ConvertReader(file, s.cfg, sourceName, fields)
	if err != nil {
		logger.Error("conversion failed",
			"source", sourceName,
			"file", fh.Filename,
			"error", err,
		)
		s.renderError(w, http.StatusUnprocessableEntity, s.cfg.Param("extractionError"), err.Error())
		return
	}

	logger.Info("conversion complete",
		"source", sourceName,
		"file", fh.Filename,
		"rows", len(res.Detail),
		"archive", res.Name,
	)
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, res.Name))
	w.Write(res.Archive)
}

// handleAsset serves logo files referenced by the configuration. Only bare
// file names are allowed; anything path-like is rejected.
func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.opts.AssetsDir, name))
}

// handleShutdown acknowledges the request, then triggers the configured
// shutdown callback so in-flight responses can complete.
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	logging.FromContext(r.Context()).Info("shutdown requested", "ip", r.RemoteAddr)
	w.WriteHeader(http.StatusAccepted)
	fmt.Fprintln(w, "shutting down")
	if s.opts.OnShutdown != nil {
		go s.opts.OnShutdown()
	}
}

// render executes a template into a buffer first, so a failing template
// still produces a clean 500 instead of a half-written page.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("render template", "template", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (s *Server) renderError(w http.ResponseWriter, status int, message, details string) {
	s.render(w, status, "error.html.tmpl", errorData{Message: message, Details: details})
}
