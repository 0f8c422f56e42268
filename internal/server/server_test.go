package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func TestDeriveEncryptionKeyIs32Bytes(t *testing.T) {
	key := deriveEncryptionKey("any-secret")
	raw, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		t.Fatalf("key is not valid base64: %v", err)
	}
	if len(raw) != 32 {
		t.Errorf("expected 32-byte key, got %d", len(raw))
	}

	if deriveEncryptionKey("any-secret") != key {
		t.Error("key derivation is not deterministic")
	}
}

func TestErrorHandlerAnswersAPIWithJSON(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	app.Get("/api/v1/boom", func(c fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadGateway, "upstream unavailable")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/boom", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body["error"] != true {
		t.Errorf("expected error=true, got %v", body["error"])
	}
	if body["detail"] != "upstream unavailable" {
		t.Errorf("unexpected detail %q", body["detail"])
	}
}

func TestErrorHandlerAPIUnknownRoute(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/missing", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
}
