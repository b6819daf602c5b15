package httpserver

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/urzavoge/zuev-1c/coordinator"
)

// Handler exposes the coordinator's operations over HTTP.
type Handler struct {
	coord *coordinator.Coordinator
	log   *slog.Logger
}

// NewHandler creates a handler backed by the given coordinator.
func NewHandler(coord *coordinator.Coordinator, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{coord: coord, log: log}
}

// RegisterRoutes registers the user and admin endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/user/register", h.handleRegisterUser)
	r.Post("/user/predict", h.handleSubmitPrediction)
	r.Get("/user/get", h.handleGetPredictions)

	r.Post("/admin/start", h.handleStartSession)
	r.Post("/admin/stop", h.handleStopSession)
	r.Post("/admin/answer", h.handleAnswerUser)
	r.Get("/admin/get", h.handleListWaiters)
	r.Get("/admin/stat", h.handleGetStat)
}

type registerUserRequest struct {
	Socket string `json:"socket"`
}

type registerUserResponse struct {
	ID int `json:"id"`
}

type predictRequest struct {
	ID   int `json:"id"`
	Pred int `json:"pred"`
}

type getPredictionsRequest struct {
	ID int `json:"id"`
}

type getPredictionsResponse struct {
	Predictions string `json:"predictions"`
}

// adminRequest covers every admin endpoint. Secret and ID use json.Number so
// clients may send them as JSON numbers or as decimal strings.
type adminRequest struct {
	Secret json.Number `json:"secret"`
	ID     json.Number `json:"id,omitempty"`
	Answer string      `json:"answer,omitempty"`
}

func (req *adminRequest) secret() (uint64, error) {
	return strconv.ParseUint(req.Secret.String(), 10, 64)
}

func (req *adminRequest) userID() (int, error) {
	return strconv.Atoi(req.ID.String())
}

// callbackAddress combines the requester's host with the socket (port) the
// user asked notifications to be delivered on.
func callbackAddress(r *http.Request, socket string) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RealIP middleware may have stripped the port already.
		host = r.RemoteAddr
	}
	return net.JoinHostPort(host, socket)
}

func (h *Handler) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := h.coord.RegisterUser(callbackAddress(r, req.Socket))

	json.NewEncoder(w).Encode(&registerUserResponse{ID: id})
}

func (h *Handler) handleSubmitPrediction(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.coord.SubmitPrediction(req.ID, req.Pred); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleGetPredictions(w http.ResponseWriter, r *http.Request) {
	var req getPredictionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	preds, err := h.coord.GetPredictions(req.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	json.NewEncoder(w).Encode(&getPredictionsResponse{Predictions: preds})
}

func (h *Handler) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req adminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	secret, err := req.secret()
	if err != nil {
		http.Error(w, "invalid secret", http.StatusBadRequest)
		return
	}

	if err := h.coord.StartSession(secret); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleStopSession(w http.ResponseWriter, r *http.Request) {
	var req adminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	secret, err := req.secret()
	if err != nil {
		http.Error(w, "invalid secret", http.StatusBadRequest)
		return
	}

	if err := h.coord.StopSession(secret); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleAnswerUser(w http.ResponseWriter, r *http.Request) {
	var req adminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	secret, err := req.secret()
	if err != nil {
		http.Error(w, "invalid secret", http.StatusBadRequest)
		return
	}
	id, err := req.userID()
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.coord.AnswerUser(secret, id, req.Answer); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleListWaiters(w http.ResponseWriter, r *http.Request) {
	var req adminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	secret, err := req.secret()
	if err != nil {
		http.Error(w, "invalid secret", http.StatusBadRequest)
		return
	}

	waiters, err := h.coord.ListWaiters(secret)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	json.NewEncoder(w).Encode(waiters)
}

func (h *Handler) handleGetStat(w http.ResponseWriter, r *http.Request) {
	var req adminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	secret, err := req.secret()
	if err != nil {
		http.Error(w, "invalid secret", http.StatusBadRequest)
		return
	}

	stats, err := h.coord.GetStat(secret)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	json.NewEncoder(w).Encode(&stats)
}
