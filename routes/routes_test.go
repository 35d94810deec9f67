package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/sinuca-cup/brackets"
	"github.com/Dosada05/sinuca-cup/handlers"
	"github.com/Dosada05/sinuca-cup/middleware"
	"github.com/Dosada05/sinuca-cup/repositories"
	"github.com/Dosada05/sinuca-cup/services"
	"github.com/Dosada05/sinuca-cup/utils"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testJWTSecret     = "routes-test-secret"
	testAdminPassword = "sinuca-admin-2025"
)

type testApp struct {
	router   chi.Router
	hub      *brackets.Hub
	editions services.EditionService
	players  services.PlayerService
}

func newTestApp(t *testing.T, adminHash string) *testApp {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repositories.NewMemoryStore()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := brackets.NewHub(logger)
	go hub.Run(ctx)

	playerService := services.NewPlayerService(store, nil, nil, logger)
	editionService := services.NewEditionService(store, hub, logger)

	router := chi.NewRouter()
	SetupRoutes(router, Handlers{
		Auth:    handlers.NewAuthHandler(services.NewAuthService(adminHash, logger), testJWTSecret),
		Player:  handlers.NewPlayerHandler(playerService),
		Edition: handlers.NewEditionHandler(editionService),
		Pairing: handlers.NewPairingHandler(services.NewPairingService(store, hub, logger)),
		Match: handlers.NewMatchHandler(
			services.NewBracketService(store, nil, hub, logger),
			services.NewMatchService(store, hub, logger),
			services.NewCorrectionService(store, hub, logger),
		),
		Settlement: handlers.NewSettlementHandler(services.NewSettlementService(store, nil, hub, logger)),
		WebSocket:  handlers.NewWebSocketHandler(hub, editionService, []string{"*"}, logger),
	}, Options{JWTSecret: []byte(testJWTSecret), AllowedOrigins: []string{"*"}})

	return &testApp{router: router, hub: hub, editions: editionService, players: playerService}
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		middleware.ClaimSubject: "admin",
		middleware.ClaimRole:    middleware.RoleAdmin,
		"exp":                   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, key string, dst interface{}) {
	t.Helper()
	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	raw, ok := env[key]
	require.True(t, ok, "missing %q in %s", key, rec.Body.String())
	require.NoError(t, json.Unmarshal(raw, dst))
}

type idOnly struct {
	ID string `json:"id"`
}

type matchView struct {
	ID      string  `json:"id"`
	Pair1ID *string `json:"pair1_id"`
}

func TestAuthLogin(t *testing.T) {
	hash, err := utils.HashPassword(testAdminPassword)
	require.NoError(t, err)
	app := newTestApp(t, hash)

	rec := app.do(t, http.MethodPost, "/api/auth/login", map[string]string{"password": "wrong-password"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/auth/login", map[string]string{"password": testAdminPassword}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var token string
	decode(t, rec, "token", &token)

	rec = app.do(t, http.MethodPost, "/api/players", map[string]string{"name": "Maria Souza", "sector": "TI"}, token)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestMutationsRequireToken(t *testing.T) {
	app := newTestApp(t, "")

	rec := app.do(t, http.MethodPost, "/api/players", map[string]string{"name": "Maria Souza", "sector": "TI"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/players", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestErrorStatuses(t *testing.T) {
	app := newTestApp(t, "")
	token := adminToken(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"malformed id", http.MethodGet, "/api/editions/not-a-uuid", nil, http.StatusBadRequest},
		{"unknown edition", http.MethodGet, "/api/editions/6f1c1c52-0000-4000-8000-000000000000", nil, http.StatusNotFound},
		{"unknown phase", http.MethodGet, "/api/editions/6f1c1c52-0000-4000-8000-000000000000/matches?phase=groups", nil, http.StatusBadRequest},
		{"validation", http.MethodPost, "/api/editions", map[string]interface{}{"name": "Q1", "year": 2025, "start_date": "2025-01-15"}, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/api/players", map[string]string{"nickname": "x"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := app.do(t, tc.method, tc.path, tc.body, token)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestEditionLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t, "")
	token := adminToken(t)

	playerIDs := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		rec := app.do(t, http.MethodPost, "/api/players", map[string]string{
			"name":   fmt.Sprintf("Jogador %02d", i+1),
			"sector": "Operações",
		}, token)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var p idOnly
		decode(t, rec, "player", &p)
		playerIDs = append(playerIDs, p.ID)
	}

	rec := app.do(t, http.MethodPost, "/api/editions", map[string]interface{}{
		"name": "Copa Sinuca Q1", "year": 2025, "start_date": "2025-01-15",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var edition idOnly
	decode(t, rec, "edition", &edition)
	base := "/api/editions/" + edition.ID

	for _, id := range playerIDs {
		rec = app.do(t, http.MethodPost, base+"/enrollments", map[string]string{"player_id": id}, token)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	rec = app.do(t, http.MethodPost, base+"/enrollments", map[string]string{"player_id": playerIDs[0]}, token)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = app.do(t, http.MethodPatch, base+"/status", map[string]string{"status": "bracketing"}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.do(t, http.MethodPost, base+"/pairs/auto", nil, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var pairs []idOnly
	decode(t, rec, "pairs", &pairs)
	assert.Len(t, pairs, 4)

	rec = app.do(t, http.MethodPost, base+"/pairs/auto", nil, token)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = app.do(t, http.MethodPost, base+"/bracket", nil, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var bracket services.GenerateBracketResult
	decode(t, rec, "bracket", &bracket)
	assert.Equal(t, "semifinal", string(bracket.Phase))
	assert.Equal(t, 2, bracket.MatchCount)
	assert.Empty(t, bracket.ByePairNames)

	rec = app.do(t, http.MethodPost, base+"/bracket", nil, token)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = app.do(t, http.MethodPatch, base+"/status", map[string]string{"status": "in_progress"}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	playPhase := func(phase string) services.RegisterWinnerResult {
		rec := app.do(t, http.MethodGet, base+"/matches?phase="+phase, nil, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var matches []matchView
		decode(t, rec, "matches", &matches)
		require.NotEmpty(t, matches)

		var last services.RegisterWinnerResult
		for _, m := range matches {
			rec := app.do(t, http.MethodPost, base+"/matches/"+m.ID+"/winner", map[string]string{"winner_id": *m.Pair1ID}, token)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			decode(t, rec, "result", &last)
		}
		return last
	}

	semis := playPhase("semifinal")
	assert.True(t, semis.NextRoundCreated)
	final := playPhase("final")
	assert.True(t, final.TournamentComplete)

	rec = app.do(t, http.MethodPost, base+"/settle", nil, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodPost, base+"/settle?confirm=true", nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var settlement struct {
		PlayersAwarded int `json:"players_awarded"`
	}
	decode(t, rec, "settlement", &settlement)
	assert.Equal(t, 8, settlement.PlayersAwarded)

	rec = app.do(t, http.MethodPost, base+"/settle?confirm=true", nil, token)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already finalized")

	rec = app.do(t, http.MethodGet, "/api/ranking", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var ranking []struct {
		PointsTotal int `json:"points_total"`
	}
	decode(t, rec, "ranking", &ranking)
	require.Len(t, ranking, 8)
	assert.Equal(t, services.ChampionPoints, ranking[0].PointsTotal)
	assert.Equal(t, services.ParticipationPoints, ranking[7].PointsTotal)
}

func TestWebSocketReceivesEditionEvents(t *testing.T) {
	app := newTestApp(t, "")
	ctx := context.Background()

	edition, err := app.editions.Create(ctx, services.CreateEditionInput{Name: "Copa Sinuca Q2", Year: 2025, StartDate: "2025-04-15"})
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		p, err := app.players.Register(ctx, services.RegisterPlayerInput{Name: fmt.Sprintf("Jogador %d", i+1), Sector: "Vendas"})
		require.NoError(t, err)
		_, err = app.editions.Enroll(ctx, edition.ID, p.ID)
		require.NoError(t, err)
	}

	server := httptest.NewServer(app.router)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/editions/" + edition.ID.String()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	room := brackets.RoomForEdition(edition.ID)
	require.Eventually(t, func() bool { return app.hub.RoomSize(room) == 1 }, time.Second, 10*time.Millisecond)

	rec := app.do(t, http.MethodPatch, "/api/editions/"+edition.ID.String()+"/status", map[string]string{"status": "bracketing"}, adminToken(t))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg brackets.WebSocketMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, brackets.EventEditionStatusChanged, msg.Type)
	assert.Equal(t, room, msg.RoomID)
}

func TestWebSocketUnknownEdition(t *testing.T) {
	app := newTestApp(t, "")
	server := httptest.NewServer(app.router)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/editions/6f1c1c52-0000-4000-8000-000000000000"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
