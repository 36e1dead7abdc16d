package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDebitSuccess(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/debit" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Api-Key") != "key-1" {
			t.Errorf("Api-Key = %q", r.Header.Get("Api-Key"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL, "key-1")
	if err := g.Debit(context.Background(), "0xabc", 250); err != nil {
		t.Fatalf("Debit: %v", err)
	}

	if got["wallet"] != "0xabc" || got["amount"] != float64(250) {
		t.Fatalf("payload = %v", got)
	}
}

func TestDebitRejected(t *testing.T) {
	for _, status := range []int{http.StatusPaymentRequired, http.StatusUnprocessableEntity} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		g := NewHTTPGateway(srv.URL, "key-1")
		err := g.Debit(context.Background(), "0xabc", 250)
		if !errors.Is(err, ErrPaymentRejected) {
			t.Fatalf("status %d: Debit error = %v, want ErrPaymentRejected", status, err)
		}
		srv.Close()
	}
}

func TestDebitServerFault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL, "key-1")
	err := g.Debit(context.Background(), "0xabc", 250)
	if err == nil || errors.Is(err, ErrPaymentRejected) {
		t.Fatalf("Debit error = %v, want a plain failure", err)
	}
}
