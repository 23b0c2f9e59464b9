package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/graphsketch/pkg/buildinfo"
	"github.com/matzehuels/graphsketch/pkg/edit"
	"github.com/matzehuels/graphsketch/pkg/errors"
	"github.com/matzehuels/graphsketch/pkg/httputil"
	"github.com/matzehuels/graphsketch/pkg/interact"
	graphio "github.com/matzehuels/graphsketch/pkg/io"
	"github.com/matzehuels/graphsketch/pkg/session"
)

// maxBody bounds request bodies, imports included.
const maxBody = 4 << 20

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) createEditor(w http.ResponseWriter, r *http.Request) {
	ed := s.newEditor()
	ed.SetWeighted(s.opts.Weighted)
	ed.SetDirected(s.opts.Directed)

	sess, err := s.sessions.Create(r.Context(), ed)
	if err != nil {
		ed.Close()
		httputil.WriteError(w, err)
		return
	}
	s.logger.Info("editor created", "id", sess.ID)
	s.writeView(w, http.StatusCreated, sess, "")
}

func (s *Server) listEditors(w http.ResponseWriter, r *http.Request) {
	list, err := s.sessions.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	ids := make([]string, len(list))
	for i, sess := range list {
		ids[i] = sess.ID
	}
	httputil.WriteJSON(w, http.StatusOK, map[string][]string{"editors": ids})
}

func (s *Server) getEditor(w http.ResponseWriter, r *http.Request) {
	s.writeView(w, http.StatusOK, sessionFrom(r), "")
}

func (s *Server) deleteEditor(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := s.sessions.Delete(r.Context(), sess.ID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	s.logger.Info("editor closed", "id", sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) postEvents(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	body, err := readBody(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	reqs, err := decodeEvents(body)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	// Decode everything first so a bad event in a batch applies nothing.
	evs := make([]interact.Event, 0, len(reqs))
	for _, req := range reqs {
		ev, err := req.event()
		if err != nil {
			s.logMisuse(err)
			httputil.WriteError(w, err)
			return
		}
		evs = append(evs, ev)
	}
	for _, ev := range evs {
		sess.Editor.Handle(ev)
	}
	s.writeView(w, http.StatusOK, sess, "")
}

func (s *Server) postCommand(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	var req commandRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	cmd, err := edit.Parse(req.Name, req.Args)
	if err != nil {
		s.logMisuse(err)
		httputil.WriteError(w, err)
		return
	}

	rejected := ""
	if err := sess.Editor.Apply(cmd); err != nil {
		if !errors.IsRejected(err) {
			httputil.WriteError(w, err)
			return
		}
		rejected = errors.UserMessage(err)
	}
	s.writeView(w, http.StatusOK, sess, rejected)
}

func (s *Server) putWeight(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	var req weightRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if req.W == nil {
		httputil.WriteError(w, errors.New(errors.ErrCodeInvalidInput, "missing w"))
		return
	}
	if err := sess.Editor.SubmitWeight(*req.W); err != nil {
		if errors.Is(err, errors.ErrCodeProtocolMisuse) {
			err = errors.Wrap(errors.ErrCodeRejectedEdit, err, "select an edge of a weighted graph first")
		}
		httputil.WriteError(w, err)
		return
	}
	s.writeView(w, http.StatusOK, sess, "")
}

func (s *Server) cancelWeight(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.Editor.CancelWeight()
	s.writeView(w, http.StatusOK, sess, "")
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.Editor.Reset()
	s.writeView(w, http.StatusOK, sess, "")
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	format := formatParam(r)
	data, err := sess.Editor.Export(format)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	w.Write(data)
}

func (s *Server) importGraph(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	body, err := readBody(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := sess.Editor.Import(formatParam(r), body); err != nil {
		httputil.WriteError(w, err)
		return
	}
	s.writeView(w, http.StatusOK, sess, "")
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	format := chi.URLParam(r, "format")
	out, err := s.renderer.Render(r.Context(), sess.Editor.Graph(), format)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	w.Write(out)
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) writeView(w http.ResponseWriter, status int, sess *session.Session, rejected string) {
	resp, err := newViewResponse(sess.ID, sess.Editor)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	resp.Rejected = rejected
	httputil.WriteJSON(w, status, resp)
}

// logMisuse logs unknown commands and events at error level; they mean a
// client is out of sync with this server.
func (s *Server) logMisuse(err error) {
	if errors.Is(err, errors.ErrCodeProtocolMisuse) {
		s.logger.Error("protocol misuse", "err", err)
	}
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	if len(body) > maxBody {
		return nil, errors.New(errors.ErrCodeInvalidInput, "body larger than %d bytes", maxBody)
	}
	return body, nil
}

func decodeJSON(r *http.Request, v any) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	return nil
}

func formatParam(r *http.Request) string {
	if f := r.URL.Query().Get("format"); f != "" {
		return f
	}
	return graphio.FormatJSON
}

func contentType(format string) string {
	switch format {
	case "json":
		return "application/json"
	case "yaml":
		return "application/yaml"
	case "svg":
		return "image/svg+xml"
	case "png":
		return "image/png"
	default:
		return "text/plain; charset=utf-8"
	}
}
