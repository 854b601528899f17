package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"

	"quarteto/engine/ast"
	"quarteto/lib/script"
	scriptmodel "quarteto/model/script"
	"quarteto/stage"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func readRequest(req *http.Request) ([]byte, error) {
	defer req.Body.Close()
	return ioutil.ReadAll(req.Body)
}

type server struct {
	stage stage.Stage
}

func (s server) setHandlers(router *mux.Router) {
	router.HandleFunc("/run", s.Run).Methods(http.MethodPost)
	router.HandleFunc("/vocabularies", s.Vocabularies).Methods(http.MethodGet)
	router.HandleFunc("/scripts", s.StoreScript).Methods(http.MethodPost)
	router.HandleFunc("/scripts", s.ListScripts).Methods(http.MethodGet)
	router.HandleFunc("/scripts/{name}", s.GetScript).Methods(http.MethodGet)
	router.HandleFunc("/scripts/{name}/run", s.RunScript).Methods(http.MethodPost)

	// for any requests starting with /debug, hand the control to default servemux
	// needed to enable pprof
	router.PathPrefix("/debug/").Handler(http.DefaultServeMux)
}

func (s server) Run(w http.ResponseWriter, req *http.Request) {
	data, err := readRequest(req)
	if err != nil {
		s.fail(w, req, err, http.StatusBadRequest)
		return
	}
	request, err := getRunRequestFromRest(data)
	if err != nil {
		s.fail(w, req, fmt.Errorf("invalid request: %v", err), http.StatusBadRequest)
		return
	}
	vocab, err := request.Vocab()
	if err != nil {
		s.fail(w, req, err, http.StatusBadRequest)
		return
	}
	s.exec(w, req, vocab, request.Source, request.Bindings)
}

func (s server) Vocabularies(w http.ResponseWriter, req *http.Request) {
	s.respond(w, req, ast.VocabularyNames())
}

func (s server) StoreScript(w http.ResponseWriter, req *http.Request) {
	data, err := readRequest(req)
	if err != nil {
		s.fail(w, req, err, http.StatusBadRequest)
		return
	}
	sc, err := getScriptFromRest(data)
	if err != nil {
		s.fail(w, req, fmt.Errorf("invalid request: %v", err), http.StatusBadRequest)
		return
	}
	if err := sc.Validate(); err != nil {
		s.fail(w, req, fmt.Errorf("invalid request: %v", err), http.StatusBadRequest)
		return
	}
	id, err := scriptmodel.Insert(req.Context(), s.stage, sc)
	if err != nil {
		s.fail(w, req, err, http.StatusInternalServerError)
		return
	}
	s.stage.Logger.Info("stored script", zap.String("name", sc.Name), zap.Uint64("id", id))
	sc.ID = id
	s.respond(w, req, sc)
}

func (s server) ListScripts(w http.ResponseWriter, req *http.Request) {
	scripts, err := scriptmodel.List(req.Context(), s.stage)
	if err != nil {
		s.fail(w, req, err, http.StatusInternalServerError)
		return
	}
	s.respond(w, req, scripts)
}

func (s server) GetScript(w http.ResponseWriter, req *http.Request) {
	sc, err := scriptmodel.Retrieve(req.Context(), s.stage, mux.Vars(req)["name"])
	if err != nil {
		s.fail(w, req, err, statusOf(err))
		return
	}
	s.respond(w, req, sc)
}

func (s server) RunScript(w http.ResponseWriter, req *http.Request) {
	data, err := readRequest(req)
	if err != nil {
		s.fail(w, req, err, http.StatusBadRequest)
		return
	}
	bindings, err := getRunScriptBindingsFromRest(data)
	if err != nil {
		s.fail(w, req, fmt.Errorf("invalid request: %v", err), http.StatusBadRequest)
		return
	}
	sc, err := scriptmodel.Retrieve(req.Context(), s.stage, mux.Vars(req)["name"])
	if err != nil {
		s.fail(w, req, err, statusOf(err))
		return
	}
	vocab, err := ast.VocabularyByName(sc.Vocabulary)
	if err != nil {
		s.fail(w, req, err, http.StatusInternalServerError)
		return
	}
	s.exec(w, req, vocab, sc.Source, bindings)
}

func (s server) exec(w http.ResponseWriter, req *http.Request, vocab ast.Vocabulary, source string, bindings map[string]string) {
	res, err := s.stage.Executor.Exec(req.Context(), vocab, source, bindings)
	if err != nil {
		s.fail(w, req, err, statusOf(err))
		return
	}
	s.respond(w, req, res)
}

func (s server) respond(w http.ResponseWriter, req *http.Request, v interface{}) {
	ser, err := json.Marshal(v)
	if err != nil {
		s.fail(w, req, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(ser); err != nil {
		s.stage.Logger.Warn("failed to write response", zap.String("path", req.URL.Path), zap.Error(err))
	}
}

func (s server) fail(w http.ResponseWriter, req *http.Request, err error, status int) {
	http.Error(w, err.Error(), status)
	if status >= http.StatusInternalServerError {
		s.stage.Logger.Error("request failed", zap.String("path", req.URL.Path), zap.Error(err))
	} else {
		s.stage.Logger.Debug("bad request", zap.String("path", req.URL.Path), zap.Error(err))
	}
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, script.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
