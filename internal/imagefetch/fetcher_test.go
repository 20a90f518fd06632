package imagefetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetcher_FetchSuccess(t *testing.T) {
	var receivedUA string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpeg bytes"))
	}))
	defer server.Close()

	data, err := New().Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Errorf("data = %q", data)
	}
	if receivedUA != "Mozilla/5.0 (compatible; LegoBot/1.0)" {
		t.Errorf("unexpected User-Agent: %s", receivedUA)
	}
}

func TestFetcher_FetchFollowsRedirect(t *testing.T) {
	image := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png bytes"))
	}))
	defer image.Close()

	redirect := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, image.URL, http.StatusFound)
	}))
	defer redirect.Close()

	data, err := New().Fetch(context.Background(), redirect.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "png bytes" {
		t.Errorf("data = %q", data)
	}
}

func TestFetcher_FetchNotAnImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>CDN splash page</body></html>"))
	}))
	defer server.Close()

	_, err := New().Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error for non-image response")
	}
	if !strings.Contains(err.Error(), "text/html") {
		t.Errorf("error should carry the content type: %v", err)
	}
	if !strings.Contains(err.Error(), "CDN splash page") {
		t.Errorf("error should carry a body sample: %v", err)
	}
}

func TestFetcher_FetchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := New().Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error should carry the status: %v", err)
	}
}

func TestFetcher_FetchNetworkError(t *testing.T) {
	_, err := New().Fetch(context.Background(), "http://127.0.0.1:1/image.jpg")
	if err == nil {
		t.Fatal("expected error for network failure")
	}
}
