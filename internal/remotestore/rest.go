// Package remotestore implements the RemoteStore gateway over a hosted
// PostgREST-style collection API: products and orders live in two collections
// addressed by query filters (`id=eq.`, `title=ilike.*q*`, `order=`), with an
// API key sent on every request. The storefront core never sees the wire
// format; it only sees the store.RemoteStore interface.
//
// Package remotestore 在托管的PostgREST风格集合API上实现RemoteStore网关：
// 产品和订单存放于两个通过查询过滤器（`id=eq.`、`title=ilike.*q*`、`order=`）寻址的集合中，
// 每个请求都携带API密钥。店面核心永远看不到线上格式；它只看到store.RemoteStore接口。
package remotestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/achrafamalou77/ephedia-store/pkg/errors"
	"github.com/achrafamalou77/ephedia-store/pkg/store"
)

const (
	productsCollection = "products"
	ordersCollection   = "orders"

	// defaultTimeout bounds every request to the hosted store.
	// defaultTimeout 限定对托管存储的每个请求时长。
	defaultTimeout = 10 * time.Second
)

// Client is the REST implementation of store.RemoteStore.
// Safe for concurrent use.
//
// Client 是store.RemoteStore的REST实现。可安全并发使用。
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

var _ store.RemoteStore = (*Client)(nil)

// New creates a REST gateway client.
//
// New 创建REST网关客户端。
//
// Parameters:
//   - baseURL: The collection API root, e.g. "https://xyz.supabase.co/rest/v1"
//   - apiKey: The anon/service key sent with every request
//
// Returns:
//   - *Client: A new gateway client
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// do performs one request against a collection and decodes the response into
// out when out is non-nil. Transport failures map to ErrStoreUnavailable and an
// HTTP 404 to ErrNotFound; other non-2xx statuses surface as unavailable with
// the body attached for the log.
//
// do 对集合执行一次请求，并在out非nil时将响应解码到out。
// 传输失败映射为ErrStoreUnavailable，HTTP 404映射为ErrNotFound；
// 其他非2xx状态以不可用形式返回，并附带响应体用于日志。
func (c *Client) do(ctx context.Context, method, collection string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + "/" + collection
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		// Ask the store to echo the stored record back.
		// 要求存储回传已存储的记录。
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", pkgerrors.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return pkgerrors.NewOpError(method+" "+collection, pkgerrors.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", pkgerrors.ErrStoreUnavailable, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: bad response: %v", pkgerrors.ErrStoreUnavailable, err)
	}
	return nil
}

// orderQuery translates an OrderBy into the collection API's order parameter.
// orderQuery 将OrderBy翻译为集合API的order参数。
func orderQuery(orderBy store.OrderBy) string {
	if orderBy == "" {
		orderBy = store.OrderByNewest
	}
	return string(orderBy)
}

// ListProducts returns all products in the requested order.
func (c *Client) ListProducts(ctx context.Context, orderBy store.OrderBy) ([]store.Product, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", orderQuery(orderBy))

	var products []store.Product
	if err := c.do(ctx, http.MethodGet, productsCollection, q, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns a single product by id, or an ErrNotFound-wrapping error.
func (c *Client) GetProduct(ctx context.Context, id string) (store.Product, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("id", "eq."+id)
	q.Set("limit", "1")

	var products []store.Product
	if err := c.do(ctx, http.MethodGet, productsCollection, q, nil, &products); err != nil {
		return store.Product{}, err
	}
	if len(products) == 0 {
		return store.Product{}, pkgerrors.NewOpError("GetProduct", pkgerrors.ErrNotFound)
	}
	return products[0], nil
}

// SearchProducts returns products whose title contains the fragment.
func (c *Client) SearchProducts(ctx context.Context, titleContains string, limit int) ([]store.Product, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("title", "ilike.*"+titleContains+"*")
	q.Set("order", orderQuery(store.OrderByNewest))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var products []store.Product
	if err := c.do(ctx, http.MethodGet, productsCollection, q, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct inserts a new product and returns the stored record.
func (c *Client) CreateProduct(ctx context.Context, fields store.ProductFields) (store.Product, error) {
	var created []store.Product
	if err := c.do(ctx, http.MethodPost, productsCollection, nil, []store.ProductFields{fields}, &created); err != nil {
		return store.Product{}, err
	}
	if len(created) == 0 {
		return store.Product{}, fmt.Errorf("%w: create returned no record", pkgerrors.ErrStoreUnavailable)
	}
	return created[0], nil
}

// DeleteProduct removes a product by id.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("id", "eq."+id)
	return c.do(ctx, http.MethodDelete, productsCollection, q, nil, nil)
}

// ListOrders returns all orders in the requested order.
func (c *Client) ListOrders(ctx context.Context, orderBy store.OrderBy) ([]store.Order, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", orderQuery(orderBy))

	var orders []store.Order
	if err := c.do(ctx, http.MethodGet, ordersCollection, q, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder returns a single order by id, or an ErrNotFound-wrapping error.
func (c *Client) GetOrder(ctx context.Context, id string) (store.Order, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("id", "eq."+id)
	q.Set("limit", "1")

	var orders []store.Order
	if err := c.do(ctx, http.MethodGet, ordersCollection, q, nil, &orders); err != nil {
		return store.Order{}, err
	}
	if len(orders) == 0 {
		return store.Order{}, pkgerrors.NewOpError("GetOrder", pkgerrors.ErrNotFound)
	}
	return orders[0], nil
}

// orderPayload is the writable subset of an order insert.
// The store assigns id and creation time.
//
// orderPayload 是订单插入的可写字段子集。存储负责分配id和创建时间。
type orderPayload struct {
	ProductName    string       `json:"product_name"`
	ProductPrice   float64      `json:"product_price"`
	ShippingPrice  float64      `json:"shipping_price"`
	TotalPrice     float64      `json:"total_price"`
	CustomerName   string       `json:"customer_name"`
	Phone          string       `json:"phone"`
	Instagram      string       `json:"instagram,omitempty"`
	Wilaya         string       `json:"wilaya"`
	Commune        string       `json:"commune"`
	DeliveryMethod string       `json:"delivery_type"`
	Status         store.Status `json:"status"`
}

// CreateOrder inserts a new order snapshot and returns the stored record.
func (c *Client) CreateOrder(ctx context.Context, order store.Order) (store.Order, error) {
	payload := orderPayload{
		ProductName:    order.ProductName,
		ProductPrice:   order.ProductPrice,
		ShippingPrice:  order.ShippingPrice,
		TotalPrice:     order.TotalPrice,
		CustomerName:   order.CustomerName,
		Phone:          order.Phone,
		Instagram:      order.Instagram,
		Wilaya:         order.Wilaya,
		Commune:        order.Commune,
		DeliveryMethod: order.DeliveryMethod,
		Status:         order.Status,
	}

	var created []store.Order
	if err := c.do(ctx, http.MethodPost, ordersCollection, nil, []orderPayload{payload}, &created); err != nil {
		return store.Order{}, err
	}
	if len(created) == 0 {
		return store.Order{}, fmt.Errorf("%w: create returned no record", pkgerrors.ErrStoreUnavailable)
	}
	return created[0], nil
}

// UpdateOrderStatus sets the status label of an existing order.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status store.Status) error {
	q := url.Values{}
	q.Set("id", "eq."+id)
	patch := map[string]store.Status{"status": status}
	return c.do(ctx, http.MethodPatch, ordersCollection, q, patch, nil)
}

// DeleteOrder removes an order by id.
func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("id", "eq."+id)
	return c.do(ctx, http.MethodDelete, ordersCollection, q, nil, nil)
}
