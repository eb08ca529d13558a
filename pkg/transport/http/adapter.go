// Package http serves the talentgate API over HTTP. It owns routing,
// JSON serialization, the mapping from error kinds to status codes, and
// the server lifecycle. Handlers read the verified principal at the
// boundary and thread it explicitly into every service call.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/talentgate/talentgate/pkg/api"
	"github.com/talentgate/talentgate/pkg/auth"
	"github.com/talentgate/talentgate/pkg/service"
)

// Adapter wires the service layer to an http.ServeMux.
type Adapter struct {
	authSvc      *service.AuthService
	userSvc      *service.UserService
	positionSvc  *service.PositionService
	applicantSvc *service.ApplicantService
	mux          *http.ServeMux
	maxBodySize  int64
}

// NewAdapter creates the adapter and registers all routes.
func NewAdapter(
	authSvc *service.AuthService,
	userSvc *service.UserService,
	positionSvc *service.PositionService,
	applicantSvc *service.ApplicantService,
	maxBodySize int64,
) *Adapter {
	a := &Adapter{
		authSvc:      authSvc,
		userSvc:      userSvc,
		positionSvc:  positionSvc,
		applicantSvc: applicantSvc,
		mux:          http.NewServeMux(),
		maxBodySize:  maxBodySize,
	}

	a.mux.HandleFunc("POST /api/auth/register", a.handleRegister)
	a.mux.HandleFunc("POST /api/auth/login", a.handleLogin)
	a.mux.HandleFunc("GET /api/auth/me", a.handleMe)
	a.mux.HandleFunc("POST /api/auth/logout", a.handleLogout)

	a.mux.HandleFunc("POST /api/users", a.handleCreateUser)
	a.mux.HandleFunc("GET /api/users", a.handleListUsers)
	a.mux.HandleFunc("GET /api/users/{id}", a.handleGetUser)
	a.mux.HandleFunc("DELETE /api/users/{id}", a.handleDeleteUser)

	a.mux.HandleFunc("POST /api/positions", a.handleCreatePosition)
	a.mux.HandleFunc("GET /api/positions", a.handleListPositions)
	a.mux.HandleFunc("GET /api/positions/{id}", a.handleGetPosition)
	a.mux.HandleFunc("PUT /api/positions/{id}", a.handleUpdatePosition)
	a.mux.HandleFunc("DELETE /api/positions/{id}", a.handleDeletePosition)

	a.mux.HandleFunc("POST /api/applicants", a.handleCreateApplicant)
	a.mux.HandleFunc("GET /api/applicants", a.handleListApplicants)
	a.mux.HandleFunc("GET /api/applicants/{id}", a.handleGetApplicant)
	a.mux.HandleFunc("PATCH /api/applicants/{id}/status", a.handleUpdateApplicantStatus)
	a.mux.HandleFunc("PATCH /api/applicants/{id}/notes", a.handleUpdateApplicantNotes)
	a.mux.HandleFunc("DELETE /api/applicants/{id}", a.handleDeleteApplicant)

	a.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	return a
}

// Mux returns the route multiplexer without any middleware. The server
// assembles the full chain; tests can hit the mux directly.
func (a *Adapter) Mux() *http.ServeMux {
	return a.mux
}

// --- auth ---

func (a *Adapter) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if !a.decode(w, r, &req) {
		return
	}

	resp, err := a.authSvc.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (a *Adapter) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if !a.decode(w, r, &req) {
		return
	}

	resp, err := a.authSvc.Login(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *Adapter) handleMe(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	profile, err := a.authSvc.Me(r.Context(), p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// handleLogout acknowledges a logout. Tokens are stateless, so the server
// keeps no session to destroy; the client discards the token.
func (a *Adapter) handleLogout(w http.ResponseWriter, r *http.Request) {
	if _, ok := principal(w, r); !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "logout successful"})
}

// --- users ---

func (a *Adapter) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req api.CreateUserRequest
	if !a.decode(w, r, &req) {
		return
	}

	profile, err := a.userSvc.Create(r.Context(), p, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (a *Adapter) handleListUsers(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	users, err := a.userSvc.List(r.Context(), p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (a *Adapter) handleGetUser(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	profile, err := a.userSvc.Get(r.Context(), p, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": profile})
}

func (a *Adapter) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	if err := a.userSvc.Delete(r.Context(), p, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

// --- positions ---

func (a *Adapter) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req api.CreatePositionRequest
	if !a.decode(w, r, &req) {
		return
	}

	pos, err := a.positionSvc.Create(r.Context(), p, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"position": pos})
}

func (a *Adapter) handleListPositions(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	positions, err := a.positionSvc.List(r.Context(), p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"positions": positions})
}

func (a *Adapter) handleGetPosition(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	pos, err := a.positionSvc.Get(r.Context(), p, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"position": pos})
}

func (a *Adapter) handleUpdatePosition(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var upd api.PositionUpdate
	if !a.decode(w, r, &upd) {
		return
	}

	pos, err := a.positionSvc.Update(r.Context(), p, r.PathValue("id"), &upd)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"position": pos})
}

func (a *Adapter) handleDeletePosition(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	if err := a.positionSvc.Delete(r.Context(), p, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "position deleted"})
}

// --- applicants ---

func (a *Adapter) handleCreateApplicant(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req api.CreateApplicantRequest
	if !a.decode(w, r, &req) {
		return
	}

	app, err := a.applicantSvc.Create(r.Context(), p, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (a *Adapter) handleListApplicants(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	applicants, err := a.applicantSvc.List(r.Context(), p, r.URL.Query().Get("position_id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"applicants": applicants})
}

func (a *Adapter) handleGetApplicant(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	app, err := a.applicantSvc.Get(r.Context(), p, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (a *Adapter) handleUpdateApplicantStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req api.UpdateApplicantStatusRequest
	if !a.decode(w, r, &req) {
		return
	}

	app, err := a.applicantSvc.UpdateStatus(r.Context(), p, r.PathValue("id"), req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (a *Adapter) handleUpdateApplicantNotes(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req api.UpdateApplicantNotesRequest
	if !a.decode(w, r, &req) {
		return
	}

	app, err := a.applicantSvc.UpdateNotes(r.Context(), p, r.PathValue("id"), req.Notes)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (a *Adapter) handleDeleteApplicant(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	if err := a.applicantSvc.Delete(r.Context(), p, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "applicant deleted"})
}

// --- helpers ---

// principal reads the verified principal from the request context. The
// auth gate guarantees it is present on protected routes; a missing one
// means a route was wired outside the gate, which is rejected rather
// than served unauthenticated.
func principal(w http.ResponseWriter, r *http.Request) (auth.Principal, bool) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, api.NewUnauthorizedError("authentication required"))
		return auth.Principal{}, false
	}
	return p, true
}

// decode reads the request body as JSON into dst, enforcing the body
// size limit. On failure it writes an invalid_request error and returns
// false.
func (a *Adapter) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, a.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, api.NewInvalidRequestError("", "request body is not valid JSON"))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response failed", "error", err)
	}
}

// writeServiceError maps a service error to a transport response. Errors
// that are not APIErrors become a generic server error so that internal
// detail never reaches a client.
func writeServiceError(w http.ResponseWriter, err error) {
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		apiErr = api.NewServerError("internal error")
	}
	writeError(w, apiErr)
}

func writeError(w http.ResponseWriter, apiErr *api.APIError) {
	writeJSON(w, statusFor(apiErr.Type), api.ErrorResponse{Error: apiErr})
}

// statusFor maps an error kind to its HTTP status code.
func statusFor(t api.ErrorType) int {
	switch t {
	case api.ErrorTypeInvalidRequest:
		return http.StatusBadRequest
	case api.ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case api.ErrorTypeNotFound:
		return http.StatusNotFound
	case api.ErrorTypeAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
