package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/sinuca-cup/services"
	"github.com/google/uuid"
)

type PairingHandler struct {
	pairingService services.PairingService
}

func NewPairingHandler(ps services.PairingService) *PairingHandler {
	return &PairingHandler{pairingService: ps}
}

type reorderPairsRequest struct {
	PairIDs []uuid.UUID `json:"pair_ids"`
}

func (h *PairingHandler) ListPairs(w http.ResponseWriter, r *http.Request) {
	editionID, err := getUUIDFromURL(r, "editionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	pairs, err := h.pairingService.List(r.Context(), editionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"pairs": pairs}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AutoPair builds balanced pairs from the enrolled players
// @Summary Automatic pairing
// @Description Strongest player is paired with the weakest. Existing pairs are replaced only with overwrite=true.
// @Tags Pairs
// @Produce json
// @Param editionID path string true "Edition ID"
// @Param overwrite query bool false "Replace existing pairs"
// @Success 201 {array} models.Pair
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /editions/{editionID}/pairs/auto [post]
// @Security Bearer
func (h *PairingHandler) AutoPair(w http.ResponseWriter, r *http.Request) {
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

	pairs, err := h.pairingService.AutoPair(r.Context(), editionID, overwrite)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"pairs": pairs}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PairingHandler) CreatePair(w http.ResponseWriter, r *http.Request) {
	editionID, err := getUUIDFromURL(r, "editionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CreatePairInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	pair, err := h.pairingService.Create(r.Context(), editionID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"pair": pair}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PairingHandler) DeletePair(w http.ResponseWriter, r *http.Request) {
	editionID, err := getUUIDFromURL(r, "editionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	pairID, err := getUUIDFromURL(r, "pairID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.pairingService.Delete(r.Context(), editionID, pairID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SwapPlayers exchanges one player of pair A with one player of pair B
// @Summary Swap players between pairs
// @Tags Pairs
// @Accept json
// @Produce json
// @Param editionID path string true "Edition ID"
// @Param input body services.SwapPlayersInput true "Slots are 1 or 2"
// @Success 200 {array} models.Pair
// @Router /editions/{editionID}/pairs/swap [post]
// @Security Bearer
func (h *PairingHandler) SwapPlayers(w http.ResponseWriter, r *http.Request) {
	editionID, err := getUUIDFromURL(r, "editionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.SwapPlayersInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	pairs, err := h.pairingService.Swap(r.Context(), editionID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"pairs": pairs}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PairingHandler) ReorderPairs(w http.ResponseWriter, r *http.Request) {
	editionID, err := getUUIDFromURL(r, "editionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var req reorderPairsRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if len(req.PairIDs) == 0 {
		badRequestResponse(w, r, errors.New("pair_ids must not be empty"))
		return
	}

	pairs, err := h.pairingService.Reorder(r.Context(), editionID, req.PairIDs)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"pairs": pairs}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
