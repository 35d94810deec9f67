package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/sinuca-cup/services"
)

var errConfirmRequired = errors.New("settlement is irreversible; repeat the request with confirm=true")

type SettlementHandler struct {
	settlementService services.SettlementService
}

func NewSettlementHandler(ss services.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementService: ss}
}

// Settle finishes the edition and distributes ranking points
// @Summary Settle edition
// @Description Champion +10, runner-up +6, every other enrolled player +2. Runs once per edition.
// @Tags Editions
// @Produce json
// @Param editionID path string true "Edition ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} services.SettlementResult
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /editions/{editionID}/settle [post]
// @Security Bearer
func (h *SettlementHandler) Settle(w http.ResponseWriter, r *http.Request) {
	editionID, err := getUUIDFromURL(r, "editionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	confirm, err := queryBool(r, "confirm")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if !confirm {
		badRequestResponse(w, r, errConfirmRequired)
		return
	}

	result, err := h.settlementService.Settle(r.Context(), editionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"settlement": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
