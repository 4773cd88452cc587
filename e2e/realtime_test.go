package e2e

import (
	"net/http"
	"strings"
	"testing"
)

func upgradeHeaders(token string) map[string]string {
	h := map[string]string{
		"Connection":            "Upgrade",
		"Upgrade":               "websocket",
		"Sec-WebSocket-Version": "13",
		"Sec-WebSocket-Key":     "dGhlIHNhbXBsZSBub25jZQ==",
	}
	if token != "" {
		h["Authorization"] = "Bearer " + token
	}
	return h
}

func TestSongSocket_RequiresOwner(t *testing.T) {
	ta := setupApp(t)
	songID := uploadSong(t, ta.app)
	path := "/ws/songs/" + songID

	resp, _ := doRequest(ta.app, http.MethodGet, path, "", nil)
	assertStatus(t, resp, http.StatusUpgradeRequired)

	resp, _ = doRequest(ta.app, http.MethodGet, path, "", upgradeHeaders(""))
	assertStatus(t, resp, http.StatusUnauthorized)

	resp, _ = doRequest(ta.app, http.MethodGet, path, "", upgradeHeaders(generateToken(t, "someone-else")))
	assertStatus(t, resp, http.StatusNotFound)

	// Browsers pass the token in the query string.
	resp, _ = doRequest(ta.app, http.MethodGet, path+"?token="+generateToken(t, "someone-else"), "", upgradeHeaders(""))
	assertStatus(t, resp, http.StatusNotFound)

	resp, _ = doRequest(ta.app, http.MethodGet, "/ws/songs/missing", "", upgradeHeaders(generateToken(t, testUserID)))
	assertStatus(t, resp, http.StatusNotFound)

	if n := ta.hub.Subscribers(songID); n != 0 {
		t.Errorf("subscribers = %d, want 0", n)
	}
}

func TestSwaggerDoc(t *testing.T) {
	ta := setupApp(t)

	resp, err := doRequest(ta.app, http.MethodGet, "/swagger/doc.json", "", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	body := readBody(t, resp)
	for _, path := range []string{`"/api/projects/{projectId}/songs"`, `"/api/songs/{songId}/preview"`, `"/internal/worker/songs/{songId}/cut"`} {
		if !strings.Contains(body, path) {
			t.Errorf("doc.json is missing %s", path)
		}
	}
}
