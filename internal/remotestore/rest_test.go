package remotestore

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/achrafamalou77/ephedia-store/pkg/errors"
	"github.com/achrafamalou77/ephedia-store/pkg/store"
)

// recordedRequest captures what the client sent for assertions.
// recordedRequest 捕获客户端发送的内容以便断言。
type recordedRequest struct {
	method string
	path   string
	query  map[string]string
	apiKey string
	body   []byte
}

// newTestServer returns a server that records the last request and replies
// with the given status and JSON body.
func newTestServer(t *testing.T, status int, respond interface{}) (*httptest.Server, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = map[string]string{}
		for k := range r.URL.Query() {
			rec.query[k] = r.URL.Query().Get(k)
		}
		rec.apiKey = r.Header.Get("apikey")
		rec.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if respond != nil {
			json.NewEncoder(w).Encode(respond)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestGetProductBuildsFilterQuery(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, []store.Product{
		{ID: "p1", Title: "Gold Ring", Price: 2500},
	})

	client := New(srv.URL, "test-key")
	p, err := client.GetProduct(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if p.Title != "Gold Ring" {
		t.Errorf("Expected title 'Gold Ring', got %q", p.Title)
	}
	if rec.path != "/products" {
		t.Errorf("Expected path /products, got %s", rec.path)
	}
	if rec.query["id"] != "eq.p1" {
		t.Errorf("Expected id filter 'eq.p1', got %q", rec.query["id"])
	}
	if rec.apiKey != "test-key" {
		t.Errorf("Expected apikey header 'test-key', got %q", rec.apiKey)
	}
}

func TestGetProductEmptyResultIsNotFound(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, []store.Product{})

	client := New(srv.URL, "k")
	_, err := client.GetProduct(context.Background(), "ghost")
	if !pkgerrors.IsNotFound(err) {
		t.Errorf("Expected not-found error for empty result, got %v", err)
	}
}

func TestSearchProductsQuery(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, []store.Product{})

	client := New(srv.URL, "k")
	if _, err := client.SearchProducts(context.Background(), "ring", 6); err != nil {
		t.Fatalf("SearchProducts failed: %v", err)
	}
	if rec.query["title"] != "ilike.*ring*" {
		t.Errorf("Expected title filter 'ilike.*ring*', got %q", rec.query["title"])
	}
	if rec.query["limit"] != "6" {
		t.Errorf("Expected limit 6, got %q", rec.query["limit"])
	}
	if rec.query["order"] != "created_at.desc" {
		t.Errorf("Expected newest-first order, got %q", rec.query["order"])
	}
}

func TestListProductsDefaultsToNewest(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, []store.Product{})

	client := New(srv.URL, "k")
	if _, err := client.ListProducts(context.Background(), ""); err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if rec.query["order"] != "created_at.desc" {
		t.Errorf("Expected zero OrderBy to resolve to newest-first, got %q", rec.query["order"])
	}
}

func TestCreateOrderOmitsServerFields(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusCreated, []store.Order{
		{ID: "o1", ProductName: "Gold Ring", Status: store.StatusPending},
	})

	client := New(srv.URL, "k")
	created, err := client.CreateOrder(context.Background(), store.Order{
		ProductName:    "Gold Ring",
		ProductPrice:   2500,
		ShippingPrice:  500,
		TotalPrice:     3000,
		CustomerName:   "Amina B",
		Phone:          "0550123456",
		Wilaya:         "Alger",
		Commune:        "Bab El Oued",
		DeliveryMethod: "home",
		Status:         store.StatusPending,
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if created.ID != "o1" {
		t.Errorf("Expected stored id o1, got %q", created.ID)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(rec.body, &rows); err != nil {
		t.Fatalf("Failed to decode request body: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected a single-row insert, got %d rows", len(rows))
	}
	if _, ok := rows[0]["id"]; ok {
		t.Error("Insert payload must not carry an id, the store assigns it")
	}
	if _, ok := rows[0]["created_at"]; ok {
		t.Error("Insert payload must not carry created_at, the store assigns it")
	}
	if rows[0]["delivery_type"] != "home" {
		t.Errorf("Expected delivery_type 'home', got %v", rows[0]["delivery_type"])
	}
}

func TestGetOrderBuildsFilterQuery(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, []store.Order{
		{ID: "o1", ProductName: "Gold Ring", Status: store.StatusPending},
	})

	client := New(srv.URL, "k")
	o, err := client.GetOrder(context.Background(), "o1")
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	if o.ProductName != "Gold Ring" {
		t.Errorf("Expected product name 'Gold Ring', got %q", o.ProductName)
	}
	if rec.path != "/orders" {
		t.Errorf("Expected path /orders, got %s", rec.path)
	}
	if rec.query["id"] != "eq.o1" {
		t.Errorf("Expected id filter 'eq.o1', got %q", rec.query["id"])
	}

	empty, _ := newTestServer(t, http.StatusOK, []store.Order{})
	client = New(empty.URL, "k")
	if _, err := client.GetOrder(context.Background(), "ghost"); !pkgerrors.IsNotFound(err) {
		t.Errorf("Expected not-found error for an empty result, got %v", err)
	}
}

func TestUpdateOrderStatusPatch(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusNoContent, nil)

	client := New(srv.URL, "k")
	if err := client.UpdateOrderStatus(context.Background(), "o1", store.StatusConfirmed); err != nil {
		t.Fatalf("UpdateOrderStatus failed: %v", err)
	}
	if rec.method != http.MethodPatch {
		t.Errorf("Expected PATCH, got %s", rec.method)
	}
	if rec.path != "/orders" {
		t.Errorf("Expected path /orders, got %s", rec.path)
	}
	if rec.query["id"] != "eq.o1" {
		t.Errorf("Expected id filter 'eq.o1', got %q", rec.query["id"])
	}

	var patch map[string]string
	if err := json.Unmarshal(rec.body, &patch); err != nil {
		t.Fatalf("Failed to decode patch body: %v", err)
	}
	if patch["status"] != "confirmed" {
		t.Errorf("Expected status patch 'confirmed', got %q", patch["status"])
	}
}

func TestServerErrorMapsToUnavailable(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusInternalServerError, map[string]string{"message": "boom"})

	client := New(srv.URL, "k")
	_, err := client.ListProducts(context.Background(), store.OrderByNewest)
	if !pkgerrors.IsUnavailable(err) {
		t.Errorf("Expected unavailable error for a 5xx response, got %v", err)
	}
}

func TestTransportErrorMapsToUnavailable(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, nil)
	base := srv.URL
	srv.Close()

	client := New(base, "k")
	_, err := client.ListProducts(context.Background(), store.OrderByNewest)
	if !pkgerrors.IsUnavailable(err) {
		t.Errorf("Expected unavailable error when the store is unreachable, got %v", err)
	}
}

func TestNotFoundStatusMapsToNotFound(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusNotFound, nil)

	client := New(srv.URL, "k")
	err := client.DeleteProduct(context.Background(), "ghost")
	if !pkgerrors.IsNotFound(err) {
		t.Errorf("Expected not-found error for a 404 response, got %v", err)
	}
}
