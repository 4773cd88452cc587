package e2e

import (
	"net/http"
	"testing"
)

func createProject(t *testing.T, ta *testApp, name string) string {
	t.Helper()
	resp := doAuthRequest(t, ta.app, http.MethodPost, "/api/projects", `{"name":"`+name+`"}`)
	assertStatus(t, resp, http.StatusCreated)
	id, _ := parseJSON(t, resp)["id"].(string)
	if id == "" {
		t.Fatal("project create returned no id")
	}
	return id
}

// TestProjectFlow creates a project, fills it with songs and deletes it.
func TestProjectFlow(t *testing.T) {
	ta := setupApp(t)

	resp := doAuthRequest(t, ta.app, http.MethodPost, "/api/projects", `{"name":""}`)
	assertStatus(t, resp, http.StatusBadRequest)

	projectID := createProject(t, ta, "Regionals")
	base := "/api/projects/" + projectID

	resp = doAuthRequest(t, ta.app, http.MethodPut, base, `{"name":"Nationals"}`)
	assertStatus(t, resp, http.StatusOK)
	if body := parseJSON(t, resp); body["name"] != "Nationals" {
		t.Errorf("renamed project = %v", body)
	}

	resp = doAuthRequest(t, ta.app, http.MethodGet, "/api/projects", "")
	assertStatus(t, resp, http.StatusOK)
	if list, _ := parseJSON(t, resp)["projects"].([]interface{}); len(list) != 1 {
		t.Errorf("projects = %v", list)
	}

	first := uploadSongTo(t, ta.app, projectID)
	second := uploadSongTo(t, ta.app, projectID)
	loose := uploadSong(t, ta.app)

	resp = doAuthRequest(t, ta.app, http.MethodGet, base+"/songs", "")
	assertStatus(t, resp, http.StatusOK)
	songs, _ := parseJSON(t, resp)["songs"].([]interface{})
	if len(songs) != 2 {
		t.Fatalf("project songs = %d, want 2", len(songs))
	}

	other := map[string]string{"Authorization": "Bearer " + generateToken(t, "someone-else")}
	for _, path := range []string{base, base + "/songs"} {
		resp, _ = doRequest(ta.app, http.MethodGet, path, "", other)
		assertStatus(t, resp, http.StatusNotFound)
	}
	resp, _ = doRequest(ta.app, http.MethodDelete, base, "", other)
	assertStatus(t, resp, http.StatusNotFound)

	resp = doAuthRequest(t, ta.app, http.MethodDelete, base, "")
	assertStatus(t, resp, http.StatusNoContent)

	for _, id := range []string{first, second} {
		resp = doAuthRequest(t, ta.app, http.MethodGet, "/api/songs/"+id, "")
		assertStatus(t, resp, http.StatusNotFound)
	}
	resp = doAuthRequest(t, ta.app, http.MethodGet, "/api/songs/"+loose, "")
	assertStatus(t, resp, http.StatusOK)
	if len(ta.storage.objects) != 1 {
		t.Errorf("stored objects = %d, want only the loose song", len(ta.storage.objects))
	}

	resp = doAuthRequest(t, ta.app, http.MethodGet, base, "")
	assertStatus(t, resp, http.StatusNotFound)
}

func TestProjects_AuthAndMissing(t *testing.T) {
	ta := setupApp(t)
	projectID := createProject(t, ta, "Mine")

	resp, _ := doRequest(ta.app, http.MethodGet, "/api/projects/"+projectID, "", nil)
	assertStatus(t, resp, http.StatusUnauthorized)

	resp = doAuthRequest(t, ta.app, http.MethodGet, "/api/projects/missing/songs", "")
	assertStatus(t, resp, http.StatusNotFound)
}

func TestSongDelete(t *testing.T) {
	ta := setupApp(t)
	songID := uploadSong(t, ta.app)
	base := "/api/songs/" + songID

	resp := doAuthRequest(t, ta.app, http.MethodPost, base+"/analyze", "")
	assertStatus(t, resp, http.StatusAccepted)
	jobID, _ := parseJSON(t, resp)["jobId"].(string)

	// Refused while the analysis is running.
	resp = doAuthRequest(t, ta.app, http.MethodDelete, base, "")
	assertStatus(t, resp, http.StatusConflict)

	doWorkerRequest(t, ta.app, "/internal/worker/songs/"+songID+"/analysis", `{"job_id":"`+jobID+`","status":"failed","error":"unreadable file"}`)

	resp, _ = doRequest(ta.app, http.MethodDelete, base, "", map[string]string{
		"Authorization": "Bearer " + generateToken(t, "someone-else"),
	})
	assertStatus(t, resp, http.StatusNotFound)

	resp = doAuthRequest(t, ta.app, http.MethodDelete, base, "")
	assertStatus(t, resp, http.StatusNoContent)
	if len(ta.storage.objects) != 0 {
		t.Errorf("stored objects = %d, want 0", len(ta.storage.objects))
	}

	resp = doAuthRequest(t, ta.app, http.MethodGet, base, "")
	assertStatus(t, resp, http.StatusNotFound)
}
