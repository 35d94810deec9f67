package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/sinuca-cup/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{services.ErrOddPlayerCount, http.StatusBadRequest},
		{fmt.Errorf("%w: Ana has no partner", services.ErrOddPlayerCount), http.StatusBadRequest},
		{services.ErrEditionNotBracketing, http.StatusConflict},
		{services.ErrAlreadyFinalized, http.StatusConflict},
		{services.ErrMatchNotFound, http.StatusNotFound},
		{services.ErrOddAdvancement, http.StatusInternalServerError},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestMapServiceErrorToHTTP_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: password authentication failed"))
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestReadJSON(t *testing.T) {
	type input struct {
		Name string `json:"name"`
	}

	cases := map[string]string{
		"empty":         "",
		"malformed":     `{"name":`,
		"unknown field": `{"nick":"x"}`,
		"wrong type":    `{"name":1}`,
		"two values":    `{"name":"a"}{"name":"b"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			var dst input
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
			assert.Error(t, readJSON(httptest.NewRecorder(), req, &dst))
		})
	}

	var dst input
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Copa"}`))
	require.NoError(t, readJSON(httptest.NewRecorder(), req, &dst))
	assert.Equal(t, "Copa", dst.Name)
}

func TestQueryBoolAndUUIDParams(t *testing.T) {
	id := uuid.New()
	var gotID uuid.UUID
	var gotFlag bool
	var flagErr error

	r := chi.NewRouter()
	r.Get("/editions/{editionID}", func(w http.ResponseWriter, r *http.Request) {
		var err error
		gotID, err = getUUIDFromURL(r, "editionID")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotFlag, flagErr = queryBool(r, "overwrite")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/editions/"+id.String()+"?overwrite=true", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, gotID)
	assert.True(t, gotFlag)
	assert.NoError(t, flagErr)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/editions/"+id.String()+"?overwrite=maybe", nil))
	assert.Error(t, flagErr)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/editions/42", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
