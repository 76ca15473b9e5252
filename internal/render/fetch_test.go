package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
)

// servePNG writes a tiny valid PNG.
func servePNG(t *testing.T, w http.ResponseWriter) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 22, G: 101, B: 52, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test PNG: %v", err)
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

func TestFetch_Direct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected Authorization header on direct fetch")
		}
		servePNG(t, w)
	}))
	defer srv.Close()

	f := NewImageFetcher("", nil)
	img, err := f.Fetch(context.Background(), srv.URL+"/photo.png")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Fatalf("fetched image width = %d, want 4", img.Bounds().Dx())
	}
}

func TestFetch_FallsBackToBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		servePNG(t, w)
	}))
	defer srv.Close()

	f := NewImageFetcher("", StaticToken("secret-token"))
	img, err := f.Fetch(context.Background(), srv.URL+"/photo.png")
	if err != nil {
		t.Fatalf("Fetch with bearer fallback: %v", err)
	}
	if img == nil {
		t.Fatal("Fetch returned nil image")
	}
}

func TestFetch_AllAttemptsFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	f := NewImageFetcher("", StaticToken("secret-token"))
	if _, err := f.Fetch(context.Background(), srv.URL+"/photo.png"); err == nil {
		t.Fatal("Fetch should fail when every attempt is rejected")
	}
}

func TestFetch_EmptyURL(t *testing.T) {
	f := NewImageFetcher("", nil)
	if _, err := f.Fetch(context.Background(), ""); err == nil {
		t.Fatal("Fetch should fail on empty URL")
	}
}

func TestFetch_NonImageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not an image</html>"))
	}))
	defer srv.Close()

	f := NewImageFetcher("", nil)
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("Fetch should fail on undecodable body")
	}
}

func TestNormalizeURL(t *testing.T) {
	f := NewImageFetcher("https://api.ploggingethiopia.org/", nil)

	cases := map[string]string{
		"https://cdn.example.com/p.jpg": "https://cdn.example.com/p.jpg",
		"http://cdn.example.com/p.jpg":  "http://cdn.example.com/p.jpg",
		"/uploads/photos/p.jpg":         "https://api.ploggingethiopia.org/uploads/photos/p.jpg",
		"uploads/photos/p.jpg":          "https://api.ploggingethiopia.org/uploads/photos/p.jpg",
		"weird-relative.jpg":            "weird-relative.jpg",
	}
	for in, want := range cases {
		if got := f.NormalizeURL(in); got != want {
			t.Fatalf("NormalizeURL(%q) = %q, want %q", in, got, want)
		}
	}
}
