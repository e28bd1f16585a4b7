package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

const testImageData = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mP8/x8AAwMBAp4pWZkAAAAASUVORK5CYII="

func uploadImage(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/images", map[string]string{
		"image_data": testImageData,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	var body uploadResponse
	decodeInto(t, resp, &body)
	if body.Image.ID == "" {
		t.Fatalf("expected image id in upload response")
	}
	return body.Image.ID
}

// uploadBracket uploads four images and returns their ids in upload order.
func uploadBracket(t *testing.T, ts *httptest.Server) []string {
	t.Helper()
	ids := make([]string, 0, 4)
	for i := 0; i < 4; i++ {
		ids = append(ids, uploadImage(t, ts))
	}
	return ids
}

func fetchState(t *testing.T, ts *httptest.Server) StatePayload {
	t.Helper()
	resp := doRequest(t, ts, http.MethodGet, "/api/state", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	var state StatePayload
	decodeInto(t, resp, &state)
	return state
}

func castVote(t *testing.T, ts *httptest.Server, id string, match int) *http.Response {
	t.Helper()
	return doRequest(t, ts, http.MethodPost, "/api/votes", map[string]any{
		"id":    id,
		"match": match,
	})
}

func mustVote(t *testing.T, ts *httptest.Server, id string) StatePayload {
	t.Helper()
	resp := castVote(t, ts, id, 0)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("vote %s: expected status %d, got %d (%v)", id, http.StatusOK, resp.StatusCode, decodeBody(t, resp))
	}
	var body voteResponse
	decodeInto(t, resp, &body)
	return body.State
}

func pairIDs(state StatePayload) []string {
	ids := make([]string, 0, len(state.CurrentPair))
	for _, img := range state.CurrentPair {
		ids = append(ids, img.ID)
	}
	return ids
}

func queueIDs(state StatePayload) []string {
	ids := make([]string, 0, len(state.Queue))
	for _, img := range state.Queue {
		ids = append(ids, img.ID)
	}
	return ids
}

func imageByID(t *testing.T, state StatePayload, id string) (int, int) {
	t.Helper()
	for _, img := range state.Images {
		if img.ID == id {
			return img.Wins, img.Losses
		}
	}
	t.Fatalf("image %s not in state", id)
	return 0, 0
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func decodeInto(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}
