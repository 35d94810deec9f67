package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Dosada05/sinuca-cup/models"
	"github.com/Dosada05/sinuca-cup/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type MatchHandler struct {
	bracketService    services.BracketService
	matchService      services.MatchService
	correctionService services.CorrectionService
}

func NewMatchHandler(bs services.BracketService, ms services.MatchService, cs services.CorrectionService) *MatchHandler {
	return &MatchHandler{
		bracketService:    bs,
		matchService:      ms,
		correctionService: cs,
	}
}

// GenerateBracket creates the opening round and pending byes
// @Summary Generate bracket
// @Description Regeneration wipes every match and bye of the edition and requires overwrite=true.
// @Tags Bracket
// @Produce json
// @Param editionID path string true "Edition ID"
// @Param overwrite query bool false "Replace the existing bracket"
// @Success 201 {object} services.GenerateBracketResult
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /editions/{editionID}/bracket [post]
// @Security Bearer
func (h *MatchHandler) GenerateBracket(w http.ResponseWriter, r *http.Request) {
	editionID, err := getUUIDFromURL(r, "editionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	overwrite, err := queryBool(r, "overwrite")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.bracketService.Generate(r.Context(), editionID, overwrite)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"bracket": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMatches lists matches of the edition, optionally one phase only
// @Summary List matches
// @Tags Bracket
// @Produce json
// @Param editionID path string true "Edition ID"
// @Param phase query string false "round_of_16, quarterfinal, semifinal or final"
// @Success 200 {array} models.Match
// @Router /editions/{editionID}/matches [get]
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	editionID, err := getUUIDFromURL(r, "editionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var phase *models.Phase
	if raw := r.URL.Query().Get("phase"); raw != "" {
		p, err := parsePhase(raw)
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		phase = &p
	}

	matches, err := h.matchService.List(r.Context(), editionID, phase)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	editionID, err := getUUIDFromURL(r, "editionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchID, err := getUUIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetByID(r.Context(), editionID, matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RegisterWinner records the winner and advances the bracket when the phase completes
// @Summary Register match winner
// @Tags Bracket
// @Accept json
// @Produce json
// @Param editionID path string true "Edition ID"
// @Param matchID path string true "Match ID"
// @Param input body services.RegisterWinnerInput true "Winner pair"
// @Success 200 {object} services.RegisterWinnerResult
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /editions/{editionID}/matches/{matchID}/winner [post]
// @Security Bearer
func (h *MatchHandler) RegisterWinner(w http.ResponseWriter, r *http.Request) {
	editionID, err := getUUIDFromURL(r, "editionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchID, err := getUUIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RegisterWinnerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.matchService.RegisterWinner(r.Context(), editionID, matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"result": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AdvancePhase повторно проверяет фазу и создаёт следующий раунд, если его ещё нет.
func (h *MatchHandler) AdvancePhase(w http.ResponseWriter, r *http.Request) {
	editionID, err := getUUIDFromURL(r, "editionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	phase, err := parsePhase(chi.URLParam(r, "phase"))
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.matchService.Advance(r.Context(), editionID, phase)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"result": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CorrectionImpact reports which later phases a correction would clear
// @Summary Preview result correction
// @Tags Bracket
// @Accept json
// @Produce json
// @Param editionID path string true "Edition ID"
// @Param matchID path string true "Match ID"
// @Param input body services.CorrectResultInput true "New winner"
// @Success 200 {object} services.CorrectionImpact
// @Router /editions/{editionID}/matches/{matchID}/correction/impact [post]
// @Security Bearer
func (h *MatchHandler) CorrectionImpact(w http.ResponseWriter, r *http.Request) {
	editionID, matchID, input, ok := h.readCorrection(w, r)
	if !ok {
		return
	}

	impact, err := h.correctionService.AnalyzeImpact(r.Context(), editionID, matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"impact": impact}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CorrectResult swaps the winner and clears the affected later matches
// @Summary Apply result correction
// @Tags Bracket
// @Accept json
// @Produce json
// @Param editionID path string true "Edition ID"
// @Param matchID path string true "Match ID"
// @Param input body services.CorrectResultInput true "New winner"
// @Success 200 {object} services.CorrectionResult
// @Failure 409 {object} map[string]string
// @Router /editions/{editionID}/matches/{matchID}/correction [post]
// @Security Bearer
func (h *MatchHandler) CorrectResult(w http.ResponseWriter, r *http.Request) {
	editionID, matchID, input, ok := h.readCorrection(w, r)
	if !ok {
		return
	}

	result, err := h.correctionService.Apply(r.Context(), editionID, matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"correction": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) readCorrection(w http.ResponseWriter, r *http.Request) (editionID, matchID uuid.UUID, input services.CorrectResultInput, ok bool) {
	var err error
	if editionID, err = getUUIDFromURL(r, "editionID"); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if matchID, err = getUUIDFromURL(r, "matchID"); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err = readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	return editionID, matchID, input, true
}

func parsePhase(raw string) (models.Phase, error) {
	if raw == "" {
		return "", errors.New("phase is required")
	}
	phase := models.Phase(raw)
	if !phase.IsValid() {
		return "", fmt.Errorf("unknown phase %q", raw)
	}
	return phase, nil
}
