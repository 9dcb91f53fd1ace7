package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/triciahf/devops-capstone-project/internal/models"
	"github.com/triciahf/devops-capstone-project/internal/repositories"
)

const (
	ServiceName    = "Account REST API Service"
	ServiceVersion = "1.0"
)

type AccountHandler struct {
	repo repositories.AccountRepository
}

func NewAccountHandler(repo repositories.AccountRepository) *AccountHandler {
	return &AccountHandler{repo: repo}
}

// Index returns service metadata for the root URL.
func (h *AccountHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":    ServiceName,
		"version": ServiceVersion,
		"paths": map[string]string{
			"accounts": "/accounts",
		},
	})
}

func (h *AccountHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !hasJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var account models.Account
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := account.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The store assigns the id; one supplied by the client is ignored.
	account.ID = 0
	if err := h.repo.Create(r.Context(), &account); err != nil {
		log.Printf("create account: %v", err)
		writeError(w, http.StatusInternalServerError, "could not create account")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/accounts/%d", account.ID))
	writeJSON(w, http.StatusCreated, &account)
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "account not found")
		return
	}

	account, err := h.repo.GetByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("account with id %d not found", id))
		return
	}
	if err != nil {
		log.Printf("get account %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "could not read account")
		return
	}

	writeJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.repo.List(r.Context())
	if err != nil {
		log.Printf("list accounts: %v", err)
		writeError(w, http.StatusInternalServerError, "could not list accounts")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"data": accounts})
}

func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "account not found")
		return
	}

	// Existence is checked before the body is read, so updating a
	// missing id is 404 even when the payload is empty or invalid.
	existing, err := h.repo.GetByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("account with id %d not found", id))
		return
	}
	if err != nil {
		log.Printf("get account %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "could not read account")
		return
	}

	var account models.Account
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := account.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	account.ID = id
	if account.DateJoined.IsZero() {
		account.DateJoined = existing.DateJoined
	}

	if err := h.repo.Update(r.Context(), &account); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("account with id %d not found", id))
			return
		}
		log.Printf("update account %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "could not update account")
		return
	}

	writeJSON(w, http.StatusOK, &account)
}

// Delete is idempotent: removing an id that does not exist still
// reports 204.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "account not found")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		log.Printf("delete account %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "could not delete account")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func accountID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func hasJSONContentType(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

type errorResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{
		Status:  status,
		Error:   http.StatusText(status),
		Message: message,
	})
}
