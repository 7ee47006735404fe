package media

import (
	"context"
	"strings"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	m := NewMemory("https://cdn.example.com")
	if err := m.Upload(context.Background(), "destinations/1/a.jpg", "image/jpeg", strings.NewReader("bytes")); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	b, ok := m.Object("destinations/1/a.jpg")
	if !ok || string(b) != "bytes" {
		t.Fatalf("object not stored: %q %v", b, ok)
	}
	if got := m.PublicURL("destinations/1/a.jpg"); got != "https://cdn.example.com/destinations/1/a.jpg" {
		t.Fatalf("PublicURL = %q", got)
	}
}

func TestMemoryStoreDefaultBaseURL(t *testing.T) {
	m := NewMemory("")
	if got := m.PublicURL("k"); got != "mem://media/k" {
		t.Fatalf("PublicURL = %q", got)
	}
}
