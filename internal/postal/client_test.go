package postal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ws/01001000/json/":
			w.Write([]byte(`{"cep":"01001-000","logradouro":"Praça da Sé","bairro":"Sé","localidade":"São Paulo","uf":"SP"}`))
		case "/ws/99999999/json/":
			w.Write([]byte(`{"erro": true}`))
		case "/ws/88888888/json/":
			w.Write([]byte(`{"erro": "true"}`))
		case "/ws/77777777/json/":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.Write([]byte(`not json`))
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second)
	ctx := context.Background()

	addr, err := c.Lookup(ctx, "01001000")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if addr.Line() != "Praça da Sé, Sé, São Paulo - SP" {
		t.Fatalf("unexpected address line %q", addr.Line())
	}

	for _, code := range []string{"99999999", "88888888"} {
		if _, err := c.Lookup(ctx, code); !errors.Is(err, ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound, got %v", code, err)
		}
	}

	for _, code := range []string{"77777777", "66666666"} {
		_, err := c.Lookup(ctx, code)
		if err == nil || errors.Is(err, ErrNotFound) {
			t.Fatalf("%s: expected transport error, got %v", code, err)
		}
	}
}

func TestClientLookupUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, 200*time.Millisecond)
	if _, err := c.Lookup(context.Background(), "01001000"); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func TestAddressLineSkipsEmptyParts(t *testing.T) {
	a := Address{City: "Brasília", State: "DF"}
	if got := a.Line(); got != "Brasília - DF" {
		t.Fatalf("unexpected line %q", got)
	}
}
