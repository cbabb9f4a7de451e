package httpx

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"kasupel/internal/game"
)

// statePayload picks out the fields the tests care about.
type statePayload struct {
	TurnName   string `json:"turnName"`
	Status     string `json:"status"`
	GameOver   bool   `json:"gameOver"`
	WinnerName string `json:"winnerName"`
	Pieces     []struct {
		TypeName string `json:"typeName"`
	} `json:"pieces"`
}

func newTestHandler() http.Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewServer(game.DefaultConfig(), log).routes()
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func createGame(t *testing.T, h http.Handler, body string) string {
	t.Helper()
	rr := doJSON(t, h, http.MethodPost, "/api/games", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create game: status %d, body %s", rr.Code, rr.Body)
	}
	var payload struct {
		ID    string       `json:"id"`
		State statePayload `json:"state"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if payload.ID == "" {
		t.Fatal("create response is missing the game id")
	}
	return payload.ID
}

func TestCreateAndFetchGame(t *testing.T) {
	h := newTestHandler()
	id := createGame(t, h, `{"initialSeconds":60}`)

	rr := doJSON(t, h, http.MethodGet, "/api/games/"+id, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("fetch game: status %d", rr.Code)
	}
	var payload struct {
		State statePayload `json:"state"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if payload.State.TurnName != "white" {
		t.Fatalf("turn = %q", payload.State.TurnName)
	}
	if len(payload.State.Pieces) != 32 {
		t.Fatalf("piece count = %d", len(payload.State.Pieces))
	}
}

func TestCreateGameRejectsBadConfig(t *testing.T) {
	h := newTestHandler()
	rr := doJSON(t, h, http.MethodPost, "/api/games", `{"files":2,"ranks":2}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("tiny board: status %d", rr.Code)
	}
}

func TestUnknownGameIs404(t *testing.T) {
	h := newTestHandler()
	for _, path := range []string{
		"/api/games/nope",
		"/api/games/nope/board.svg",
	} {
		rr := doJSON(t, h, http.MethodGet, path, "")
		if rr.Code != http.StatusNotFound {
			t.Fatalf("%s: status %d", path, rr.Code)
		}
	}
}

func TestMoveEndpoint(t *testing.T) {
	h := newTestHandler()
	id := createGame(t, h, "")

	rr := doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/games/%s/move", id),
		`{"side":"white","from":"e2","to":"e4"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("move: status %d, body %s", rr.Code, rr.Body)
	}
	var result struct {
		Accepted bool         `json:"accepted"`
		Error    string       `json:"error"`
		State    statePayload `json:"state"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if !result.Accepted {
		t.Fatalf("move rejected: %q", result.Error)
	}
	if result.State.TurnName != "black" {
		t.Fatalf("turn after move = %q", result.State.TurnName)
	}

	// A rejected move still reports the current state.
	rr = doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/games/%s/move", id),
		`{"side":"white","from":"d2","to":"d4"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("out-of-turn move: status %d", rr.Code)
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Accepted || result.Error != "NotYourPiece" {
		t.Fatalf("out-of-turn move: accepted=%v error=%q", result.Accepted, result.Error)
	}
}

func TestMoveEndpointRejectsMalformedRequests(t *testing.T) {
	h := newTestHandler()
	id := createGame(t, h, "")
	path := fmt.Sprintf("/api/games/%s/move", id)

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "e2e4"},
		{name: "bad side", body: `{"side":"green","from":"e2","to":"e4"}`},
		{name: "bad from", body: `{"side":"white","from":"zz","to":"e4"}`},
		{name: "bad promotion", body: `{"side":"white","from":"e2","to":"e4","promotion":"king"}`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, h, http.MethodPost, path, tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status %d", rr.Code)
			}
		})
	}
}

func TestResignEndpoint(t *testing.T) {
	h := newTestHandler()
	id := createGame(t, h, "")

	rr := doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/games/%s/resign", id),
		`{"side":"black"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("resign: status %d", rr.Code)
	}
	var payload struct {
		State statePayload `json:"state"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if !payload.State.GameOver || payload.State.WinnerName != "white" {
		t.Fatalf("state after resignation = %+v", payload.State)
	}

	// Resigning a finished game conflicts.
	rr = doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/games/%s/resign", id),
		`{"side":"white"}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("double resign: status %d", rr.Code)
	}
}

func TestDrawOfferEndpoint(t *testing.T) {
	h := newTestHandler()
	id := createGame(t, h, "")
	path := fmt.Sprintf("/api/games/%s/draw-offer", id)

	rr := doJSON(t, h, http.MethodPost, path, `{"side":"white"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("first offer: status %d", rr.Code)
	}
	var payload struct {
		State statePayload `json:"state"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if payload.State.GameOver {
		t.Fatal("one offer must not end the game")
	}

	rr = doJSON(t, h, http.MethodPost, path, `{"side":"black"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("second offer: status %d", rr.Code)
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if !payload.State.GameOver || payload.State.WinnerName != "" {
		t.Fatalf("state after agreement = %+v", payload.State)
	}
}

func TestBoardSVGEndpoint(t *testing.T) {
	h := newTestHandler()
	id := createGame(t, h, `{"files":6,"ranks":6}`)

	rr := doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/games/%s/board.svg", id), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("board.svg: status %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rr.Body.String(), "<svg") {
		t.Fatal("response does not look like SVG")
	}
}

func TestCustomBoardSizeCreation(t *testing.T) {
	h := newTestHandler()
	id := createGame(t, h, `{"files":10,"ranks":10}`)

	rr := doJSON(t, h, http.MethodGet, "/api/games/"+id, "")
	var payload struct {
		State struct {
			Geometry struct {
				Files int `json:"files"`
				Ranks int `json:"ranks"`
			} `json:"geometry"`
		} `json:"state"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if payload.State.Geometry.Files != 10 || payload.State.Geometry.Ranks != 10 {
		t.Fatalf("geometry = %+v", payload.State.Geometry)
	}
}
