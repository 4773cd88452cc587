package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	fiberSwagger "github.com/gofiber/swagger"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	_ "github.com/choreosync/api/docs"
	"github.com/choreosync/api/internal/auth"
	"github.com/choreosync/api/internal/client"
	"github.com/choreosync/api/internal/config"
	"github.com/choreosync/api/internal/cutplan"
	"github.com/choreosync/api/internal/handler"
	"github.com/choreosync/api/internal/middleware"
	"github.com/choreosync/api/internal/service"
	"github.com/choreosync/api/internal/store"
	ws "github.com/choreosync/api/internal/websocket"
)

const (
	testJWTSecret     = "test-secret-for-e2e"
	testWebhookSecret = "webhook-secret-for-e2e"
	testUserID        = "test-user-123"
)

// dispatch is one request received by the fake worker
type dispatch struct {
	Path   string
	SongID string `json:"song_id"`
	JobID  string `json:"job_id"`
}

// fakeWorker stands in for the analysis and render workers
type fakeWorker struct {
	mu         sync.Mutex
	reject     bool
	dispatches []dispatch
}

func (w *fakeWorker) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	var d dispatch
	_ = json.NewDecoder(r.Body).Decode(&d)
	d.Path = r.URL.Path

	w.mu.Lock()
	defer w.mu.Unlock()
	w.dispatches = append(w.dispatches, d)
	if w.reject || r.Header.Get(middleware.SecretHeader) != testWebhookSecret {
		rw.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	rw.WriteHeader(http.StatusAccepted)
}

func (w *fakeWorker) setReject(reject bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reject = reject
}

func (w *fakeWorker) last() dispatch {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.dispatches) == 0 {
		return dispatch{}
	}
	return w.dispatches[len(w.dispatches)-1]
}

type recordingEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
}

func (e *recordingEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *memoryStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *memoryStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memoryStorage) GetSignedURL(ctx context.Context, key, filename string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("https://r2.test/%s?download=%s", key, filename), nil
}

// testApp holds all components needed for testing
type testApp struct {
	app      *fiber.App
	worker   *fakeWorker
	enqueuer *recordingEnqueuer
	storage  *memoryStorage
	store    *store.SongStore
	hub      *ws.Hub
}

// setupApp creates a Fiber app wired like main.go, with miniredis, an in-memory
// bucket and an httptest server for the workers.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	fw := &fakeWorker{}
	workerSrv := httptest.NewServer(fw)
	t.Cleanup(workerSrv.Close)

	ta := &testApp{
		worker:   fw,
		enqueuer: &recordingEnqueuer{},
		storage:  &memoryStorage{objects: make(map[string][]byte)},
		store:    store.NewSongStore(redisClient),
		hub:      ws.NewHub(),
	}
	go ta.hub.Run()
	projectStore := store.NewProjectStore(redisClient)

	validate := validator.New()
	opts := cutplan.DefaultOptions()

	workerClient := client.NewWorkerClient(&config.WorkerConfig{
		AnalyzeURL:  workerSrv.URL + "/analyze",
		GenerateURL: workerSrv.URL + "/generate",
		Timeout:     2 * time.Second,
	}, testWebhookSecret)

	songService := service.NewSongService(ta.store, projectStore, ta.storage, opts, time.Minute)
	projectService := service.NewProjectService(projectStore, songService)
	jobService := service.NewJobService(ta.store, workerClient, ta.enqueuer, opts)
	downloadService := service.NewDownloadService(ta.store, ta.storage)
	webhookService := service.NewWebhookService(testWebhookSecret, ta.enqueuer)

	songHandler := handler.NewSongHandler(songService, validate)
	projectHandler := handler.NewProjectHandler(projectService, validate)
	jobHandler := handler.NewJobHandler(jobService)
	downloadHandler := handler.NewDownloadHandler(downloadService, validate)
	workerHandler := handler.NewWorkerHandler(jobService, webhookService, validate)
	authHandler := handler.NewAuthHandler(nil, testJWTSecret)

	authMiddleware := middleware.NewLegacyAuthMiddleware(testJWTSecret)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	app := fiber.New(fiber.Config{
		BodyLimit: 55 * 1024 * 1024,
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"services": fiber.Map{
				"redis":   true,
				"r2":      true,
				"workers": workerClient.IsConfigured(),
				"auth":    true,
			},
		})
	})
	app.Get("/swagger/*", fiberSwagger.HandlerDefault)
	app.Get("/auth/verify", authHandler.Verify)

	app.Post("/api/webhook/worker", workerHandler.Webhook)
	internal := app.Group("/internal/worker", middleware.WorkerSecret(webhookService))
	internal.Post("/songs/:songId/analysis", workerHandler.AnalysisResult)
	internal.Post("/songs/:songId/cut", workerHandler.CutResult)

	api := app.Group("/api", authMiddleware.Authenticate())

	projects := api.Group("/projects")
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/:projectId", projectHandler.Get)
	projects.Put("/:projectId", projectHandler.Rename)
	projects.Delete("/:projectId", projectHandler.Delete)
	projects.Get("/:projectId/songs", projectHandler.Songs)

	// Use very high rate limits so tests don't get blocked
	songs := api.Group("/songs")
	songs.Post("/", rateLimiter.UploadLimit(10000), songHandler.Upload)
	songs.Get("/", songHandler.List)
	songs.Get("/:songId", songHandler.Get)
	songs.Delete("/:songId", songHandler.Delete)
	songs.Put("/:songId/target", songHandler.SetTarget)
	songs.Put("/:songId/tags", songHandler.SetTags)
	songs.Post("/:songId/preview", rateLimiter.PreviewLimit(10000), songHandler.Preview)
	songs.Post("/:songId/analyze", rateLimiter.AnalyzeLimit(10000), jobHandler.Analyze)
	songs.Post("/:songId/generate", rateLimiter.GenerateLimit(10000), jobHandler.Generate)
	songs.Get("/:songId/jobs/:kind", jobHandler.Status)
	songs.Get("/:songId/download", downloadHandler.Get)
	api.Post("/downloads/batch", downloadHandler.Batch)

	app.Use("/ws", middleware.WebSocketUpgrade())
	app.Get("/ws/songs/:songId", authMiddleware.Authenticate(), songHandler.RequireOwner, websocket.New(func(c *websocket.Conn) {
		ta.hub.HandleConnection(c, c.Params("songId"))
	}))

	ta.app = app
	return ta
}

// generateToken creates a legacy HMAC JWT token for test requests.
func generateToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.IssueLegacyToken(userID, "test@example.com", testJWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}
	return token
}

// doRequest is a helper to perform HTTP requests against the test app.
func doRequest(app *fiber.App, method, path string, body string, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, path, bodyReader)
	if err != nil {
		return nil, err
	}

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return app.Test(req, -1)
}

// doAuthRequest performs a request as the default test user.
func doAuthRequest(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	resp, err := doRequest(app, method, path, body, map[string]string{
		"Authorization": "Bearer " + generateToken(t, testUserID),
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

// doWorkerRequest performs a worker call carrying the shared secret.
func doWorkerRequest(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	resp, err := doRequest(app, http.MethodPost, path, body, map[string]string{
		middleware.SecretHeader: testWebhookSecret,
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

// uploadSong creates a song through the multipart endpoint and returns its id.
func uploadSong(t *testing.T, app *fiber.App) string {
	t.Helper()
	return uploadSongTo(t, app, "")
}

// uploadSongTo uploads a song into a project.
func uploadSongTo(t *testing.T, app *fiber.App, projectID string) string {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if projectID != "" {
		_ = writer.WriteField("projectId", projectID)
	}

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", `form-data; name="file"; filename="routine.mp3"`)
	partHeader.Set("Content-Type", "audio/mpeg")
	part, err := writer.CreatePart(partHeader)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	_, _ = part.Write([]byte("ID3\x04\x00\x00\x00\x00\x00\x00"))
	_, _ = part.Write(make([]byte, 1024))
	writer.Close()

	req, _ := http.NewRequest(http.MethodPost, "/api/songs", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+generateToken(t, testUserID))

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	assertStatus(t, resp, http.StatusCreated)
	body := parseJSON(t, resp)
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatalf("upload returned no id: %v", body)
	}
	return id
}

// analysisJSON is intro 0-20, verse 20-50, chorus 50-80, verse 80-110,
// chorus 110-140, outro 140-150 with a beat every 0.5s.
func analysisJSON() string {
	beats := make([]string, 0, 301)
	for i := 0; i <= 300; i++ {
		beats = append(beats, fmt.Sprintf("%g", float64(i)*0.5))
	}
	return `{"sections":[` +
		`{"label":"intro","start":0,"end":20},` +
		`{"label":"verse","start":20,"end":50},` +
		`{"label":"chorus","start":50,"end":80},` +
		`{"label":"verse","start":80,"end":110},` +
		`{"label":"chorus","start":110,"end":140},` +
		`{"label":"outro","start":140,"end":150}],` +
		`"beats":[` + strings.Join(beats, ",") + `],"downbeats":[],"bpm":120}`
}

// readBody reads and returns the response body as a string.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(b)
}

// parseJSON parses response body into a map.
func parseJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body := readBody(t, resp)
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, body)
	}
	return result
}

// errorCode returns error.code from an error envelope.
func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	body := parseJSON(t, resp)
	detail, _ := body["error"].(map[string]interface{})
	code, _ := detail["code"].(string)
	return code
}

// assertStatus checks the HTTP status code.
func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("expected status %d, got %d", expected, resp.StatusCode)
	}
}
