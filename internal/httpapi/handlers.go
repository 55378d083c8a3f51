/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"dirpx.dev/dxpred/dxcore/check"
	dxerrors "dirpx.dev/dxpred/dxcore/errors"
	"dirpx.dev/dxpred/dxcore/model/predicate"
	"github.com/go-chi/chi/v5/middleware"
)

type pairRequest struct {
	Premise    string `json:"premise"`
	Conclusion string `json:"conclusion"`
}

type impliesResponse struct {
	Premise    string                          `json:"premise"`
	Conclusion string                          `json:"conclusion"`
	Verdict    predicate.Implication           `json:"verdict"`
	Fits       bool                            `json:"fits"`
	Domains    map[string]check.ArgumentDomain `json:"domains,omitempty"`
}

type fitsResponse struct {
	Premise    string `json:"premise"`
	Conclusion string `json:"conclusion"`
	Fits       bool   `json:"fits"`
}

type domainRequest struct {
	Predicate string `json:"predicate"`
	Argument  string `json:"argument,omitempty"`
}

type domainResponse struct {
	Predicate string            `json:"predicate"`
	Arguments []string          `json:"arguments"`
	Argument  string            `json:"argument,omitempty"`
	Domain    string            `json:"domain,omitempty"`
	Domains   map[string]string `json:"domains,omitempty"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	Offset    *int   `json:"offset,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server[T]) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server[T]) handleImplies(w http.ResponseWriter, r *http.Request) {
	premise, conclusion, ok := s.parsePair(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, impliesResponse{
		Premise:    premise.String(),
		Conclusion: conclusion.String(),
		Verdict:    premise.Implies(conclusion),
		Fits:       premise.Fits(conclusion),
		Domains:    check.Domains(premise, conclusion),
	})
}

func (s *Server[T]) handleFits(w http.ResponseWriter, r *http.Request) {
	premise, conclusion, ok := s.parsePair(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, fitsResponse{
		Premise:    premise.String(),
		Conclusion: conclusion.String(),
		Fits:       premise.Fits(conclusion),
	})
}

func (s *Server[T]) handleDomain(w http.ResponseWriter, r *http.Request) {
	var req domainRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Argument != "" && !predicate.IsIdentifier(req.Argument) {
		s.fail(w, r, http.StatusBadRequest, "argument", errors.New("not a valid argument name"))
		return
	}
	p, err := s.runner.Parse(req.Predicate)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, "predicate", err)
		return
	}

	resp := domainResponse{
		Predicate: p.String(),
		Arguments: p.ArgumentNames(),
	}
	if resp.Arguments == nil {
		resp.Arguments = []string{}
	}
	if req.Argument != "" {
		resp.Argument = req.Argument
		resp.Domain = p.Domain(req.Argument).String()
	} else if len(resp.Arguments) > 0 {
		resp.Domains = make(map[string]string, len(resp.Arguments))
		for _, name := range resp.Arguments {
			resp.Domains[name] = p.Domain(name).String()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server[T]) handleBatch(w http.ResponseWriter, r *http.Request) {
	if !s.batches.TryAcquire(1) {
		s.fail(w, r, http.StatusTooManyRequests, "", errors.New("too many batches in progress"))
		return
	}
	defer s.batches.Release(1)

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		s.fail(w, r, bodyStatus(err), "", err)
		return
	}
	suite, err := check.ParseSuite(data)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, "", err)
		return
	}

	rep, err := s.runner.Run(r.Context(), suite)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.fail(w, r, http.StatusServiceUnavailable, "", err)
		return
	case err != nil:
		s.fail(w, r, http.StatusBadRequest, "", err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server[T]) parsePair(w http.ResponseWriter, r *http.Request) (premise, conclusion predicate.Predicate[T], ok bool) {
	var req pairRequest
	if !s.decode(w, r, &req) {
		return premise, conclusion, false
	}
	premise, err := s.runner.Parse(req.Premise)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, "premise", err)
		return premise, conclusion, false
	}
	conclusion, err = s.runner.Parse(req.Conclusion)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, "conclusion", err)
		return premise, conclusion, false
	}
	return premise, conclusion, true
}

func (s *Server[T]) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.fail(w, r, bodyStatus(err), "", err)
		return false
	}
	return true
}

func (s *Server[T]) fail(w http.ResponseWriter, r *http.Request, status int, field string, err error) {
	resp := errorResponse{
		Error:     err.Error(),
		Field:     field,
		RequestID: middleware.GetReqID(r.Context()),
	}
	var syn *dxerrors.SyntaxError
	if errors.As(err, &syn) && syn.Offset >= 0 {
		offset := syn.Offset
		resp.Offset = &offset
	}
	s.logger.Debug("request rejected", "request_id", resp.RequestID, "status", status, "error", resp.Error)
	writeJSON(w, status, resp)
}

func bodyStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
