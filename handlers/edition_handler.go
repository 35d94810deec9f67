package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Dosada05/sinuca-cup/models"
	"github.com/Dosada05/sinuca-cup/services"
	"github.com/google/uuid"
)

type EditionHandler struct {
	editionService services.EditionService
}

func NewEditionHandler(es services.EditionService) *EditionHandler {
	return &EditionHandler{editionService: es}
}

type changeStatusRequest struct {
	Status models.EditionStatus `json:"status"`
}

type enrollRequest struct {
	PlayerID uuid.UUID `json:"player_id"`
}

// CreateEdition creates a quarterly edition
// @Summary Create an edition
// @Description Number is optional; when omitted the next free number of the year is used.
// @Tags Editions
// @Accept json
// @Produce json
// @Param input body services.CreateEditionInput true "Edition"
// @Success 201 {object} models.Edition
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /editions [post]
// @Security Bearer
func (h *EditionHandler) CreateEdition(w http.ResponseWriter, r *http.Request) {
	var input services.CreateEditionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	edition, err := h.editionService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"edition": edition}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListEditions lists editions, newest first
// @Summary List editions
// @Tags Editions
// @Produce json
// @Param status query string false "registration_open, bracketing, in_progress or finished"
// @Param year query int false "Year"
// @Success 200 {array} models.Edition
// @Router /editions [get]
func (h *EditionHandler) ListEditions(w http.ResponseWriter, r *http.Request) {
	var input services.ListEditionsInput

	query := r.URL.Query()
	if raw := query.Get("status"); raw != "" {
		status := models.EditionStatus(raw)
		input.Status = &status
	}
	if raw := query.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			badRequestResponse(w, r, errors.New("query parameter \"year\" must be an integer"))
			return
		}
		input.Year = &year
	}

	editions, err := h.editionService.List(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"editions": editions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EditionHandler) GetEdition(w http.ResponseWriter, r *http.Request) {
	editionID, err := getUUIDFromURL(r, "editionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	edition, err := h.editionService.GetByID(r.Context(), editionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"edition": edition}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// NextNumber подсказывает номер следующего издания за год (по умолчанию текущий).
func (h *EditionHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			badRequestResponse(w, r, errors.New("query parameter \"year\" must be an integer"))
			return
		}
		year = parsed
	}

	number, err := h.editionService.NextNumber(r.Context(), year)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"year": year, "next_number": number}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Overview returns everything the bracket screen needs in one call
// @Summary Edition overview
// @Tags Editions
// @Produce json
// @Param editionID path string true "Edition ID"
// @Success 200 {object} models.EditionOverview
// @Failure 404 {object} map[string]string
// @Router /editions/{editionID}/overview [get]
func (h *EditionHandler) Overview(w http.ResponseWriter, r *http.Request) {
	editionID, err := getUUIDFromURL(r, "editionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	overview, err := h.editionService.Overview(r.Context(), editionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"overview": overview}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ChangeStatus moves the edition forward
// @Summary Change edition status
// @Description Only registration_open -> bracketing -> in_progress. Finishing happens through settlement.
// @Tags Editions
// @Accept json
// @Produce json
// @Param editionID path string true "Edition ID"
// @Success 200 {object} models.Edition
// @Failure 409 {object} map[string]string
// @Router /editions/{editionID}/status [patch]
// @Security Bearer
func (h *EditionHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	editionID, err := getUUIDFromURL(r, "editionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var req changeStatusRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if req.Status == "" {
		badRequestResponse(w, r, errors.New("status is required"))
		return
	}

	edition, err := h.editionService.ChangeStatus(r.Context(), editionID, req.Status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"edition": edition}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EditionHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	editionID, err := getUUIDFromURL(r, "editionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var req enrollRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if req.PlayerID == uuid.Nil {
		badRequestResponse(w, r, errors.New("player_id is required"))
		return
	}

	enrollment, err := h.editionService.Enroll(r.Context(), editionID, req.PlayerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"enrollment": enrollment}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EditionHandler) Unenroll(w http.ResponseWriter, r *http.Request) {
	editionID, err := getUUIDFromURL(r, "editionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := getUUIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.editionService.Unenroll(r.Context(), editionID, playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *EditionHandler) ListEnrolled(w http.ResponseWriter, r *http.Request) {
	h.listPlayers(w, r, h.editionService.ListEnrolled)
}

func (h *EditionHandler) AvailablePlayers(w http.ResponseWriter, r *http.Request) {
	h.listPlayers(w, r, h.editionService.AvailablePlayers)
}

func (h *EditionHandler) listPlayers(w http.ResponseWriter, r *http.Request, list func(ctx context.Context, id uuid.UUID) ([]models.Player, error)) {
	editionID, err := getUUIDFromURL(r, "editionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	players, err := list(r.Context(), editionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
