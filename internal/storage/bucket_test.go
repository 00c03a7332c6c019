package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestBucketClient_Download(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/docs/sample.txt":
			w.Write([]byte("file contents"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewBucketClient(srv.URL+"/", 5*time.Second)

	data, err := client.Download(context.Background(), "docs/sample.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "file contents" {
		t.Errorf("got %q", data)
	}

	if _, err := client.Download(context.Background(), "missing.txt"); err == nil {
		t.Error("expected error for missing object")
	}
}

func TestBucketClient_LeadingSlashNormalized(t *testing.T) {
	var seenPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenPath = r.URL.Path
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := NewBucketClient(srv.URL, time.Second)
	if _, err := client.Download(context.Background(), "/a/b.txt"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seenPath != "/a/b.txt" {
		t.Errorf("path doubled or dropped a slash: %q", seenPath)
	}
}
