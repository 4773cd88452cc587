package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/choreosync/api/internal/config"
	"github.com/choreosync/api/internal/model"
)

func TestDispatchAnalysis(t *testing.T) {
	var got AnalysisDispatch
	var secret string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secret = r.Header.Get("X-Webhook-Secret")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewWorkerClient(&config.WorkerConfig{AnalyzeURL: srv.URL, Timeout: time.Second}, "shh")
	err := c.DispatchAnalysis(context.Background(), &AnalysisDispatch{SongID: "s1", JobID: "j1", StorageKey: "songs/s1.mp3"})
	if err != nil {
		t.Fatalf("DispatchAnalysis: %v", err)
	}
	if got.SongID != "s1" || got.JobID != "j1" || got.StorageKey != "songs/s1.mp3" {
		t.Errorf("body = %+v", got)
	}
	if secret != "shh" {
		t.Errorf("secret header = %q", secret)
	}
}

func TestDispatchGeneration_SendsPlan(t *testing.T) {
	var got GenerationDispatch
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	c := NewWorkerClient(&config.WorkerConfig{GenerateURL: srv.URL, Timeout: time.Second}, "")
	plan := &model.CutPlan{TargetDurationMs: 150000, CrossfadePoints: []float64{50}}
	if err := c.DispatchGeneration(context.Background(), &GenerationDispatch{SongID: "s1", JobID: "j2", Plan: plan}); err != nil {
		t.Fatal(err)
	}
	if got.Plan == nil || got.Plan.TargetDurationMs != 150000 {
		t.Errorf("plan = %+v", got.Plan)
	}
}

func TestDispatch_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "queue full", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewWorkerClient(&config.WorkerConfig{AnalyzeURL: srv.URL, Timeout: time.Second}, "")
	err := c.DispatchAnalysis(context.Background(), &AnalysisDispatch{SongID: "s1"})
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Errorf("err = %v, want 503 rejection", err)
	}
}

func TestDispatch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewWorkerClient(&config.WorkerConfig{AnalyzeURL: srv.URL, Timeout: 20 * time.Millisecond}, "")
	if err := c.DispatchAnalysis(context.Background(), &AnalysisDispatch{SongID: "s1"}); err == nil {
		t.Error("expected timeout error")
	}
}

func TestDispatch_NotConfigured(t *testing.T) {
	c := NewWorkerClient(&config.WorkerConfig{}, "")
	if err := c.DispatchGeneration(context.Background(), &GenerationDispatch{}); !errors.Is(err, ErrWorkerNotConfigured) {
		t.Errorf("err = %v, want ErrWorkerNotConfigured", err)
	}
}
