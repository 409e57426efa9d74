package routehandlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/evportal-ch/newshub/datastore"
	"github.com/evportal-ch/newshub/models"
	"github.com/evportal-ch/newshub/webutil"
	"github.com/google/uuid"
)

type StatusHandler struct {
	Repo *datastore.StatusCheckRepository
}

func NewStatusHandler(repo *datastore.StatusCheckRepository) *StatusHandler {
	return &StatusHandler{Repo: repo}
}

type createStatusCheckRequest struct {
	ClientName string `json:"client_name"`
}

func (h *StatusHandler) HandleCreateStatusCheck(w http.ResponseWriter, r *http.Request) error {
	var req createStatusCheckRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return webutil.ErrBadRequest("Invalid request payload: " + err.Error())
	}
	defer r.Body.Close()

	if req.ClientName == "" {
		return webutil.ErrBadRequest("Missing required field client_name")
	}

	check := models.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: req.ClientName,
		Timestamp:  time.Now().UTC(),
	}

	if err := h.Repo.CreateStatusCheck(r.Context(), &check); err != nil {
		log.Printf("ERROR: Failed to create status check for '%s': %v", req.ClientName, err)
		return webutil.ErrInternalServerWrap("Failed to create status check", err)
	}

	webutil.RespondWithJSON(w, http.StatusCreated, check)
	return nil
}

func (h *StatusHandler) HandleGetStatusChecks(w http.ResponseWriter, r *http.Request) error {
	checks, err := h.Repo.GetStatusChecks(r.Context())
	if err != nil {
		log.Printf("ERROR: Failed to get status checks: %v", err)
		return webutil.ErrInternalServerWrap("Failed to retrieve status checks", err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, checks)
	return nil
}
