package wishlist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/storely/wishsync/pkg/errors"
	"github.com/storely/wishsync/pkg/logger"
	"github.com/storely/wishsync/pkg/metrics"
)

const errorBodyReadLimit int64 = 1024

// TokenSource supplies the caller's access token. An empty token simply omits
// the Authorization header; authorization is enforced by the Store, not here.
type TokenSource interface {
	AccessToken() string
}

// Client is the only component that knows the wire shape of the wishlist
// resource. It normalizes transport and payload failures into the shared
// error type, carrying the upstream status and the shop/product the failure
// occurred for.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	tokens         TokenSource
	logg           *logger.Logger
	metrics        *metrics.WishlistMetrics
	checkChunkSize int
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithCheckChunkSize overrides the membership-check concurrency ceiling.
func WithCheckChunkSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.checkChunkSize = size
		}
	}
}

// WithMetrics wires membership-check counters.
func WithMetrics(m *metrics.WishlistMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds a wishlist client for the given API base URL.
func NewClient(baseURL string, tokens TokenSource, logg *logger.Logger, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base url is required")
	}
	if tokens == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "token source is required")
	}

	client := &Client{
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		baseURL:        trimmed,
		tokens:         tokens,
		logg:           logg,
		checkChunkSize: DefaultCheckChunkSize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// Add creates a wishlist entry for the product and returns the stored item.
func (c *Client) Add(ctx context.Context, shopID, productID int64) (*WishlistItem, error) {
	payload, err := json.Marshal(addItemRequest{ProductID: productID})
	if err != nil {
		return nil, c.requestError(pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal add request"), shopID, productID)
	}

	resp, err := c.do(ctx, http.MethodPost, c.wishlistPath(shopID), bytes.NewReader(payload))
	if err != nil {
		return nil, c.requestError(err, shopID, productID)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, c.requestError(c.statusError(resp, "failed to add item to wishlist"), shopID, productID)
	}

	var envelope struct {
		Message string        `json:"message"`
		Data    *WishlistItem `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, c.requestError(pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode add response"), shopID, productID)
	}
	if envelope.Data == nil {
		return nil, c.requestError(pkgerrors.New(pkgerrors.CodeDependency, "add response missing item"), shopID, productID)
	}
	return envelope.Data, nil
}

// Remove deletes the identified wishlist entry.
func (c *Client) Remove(ctx context.Context, shopID, itemID int64) error {
	resp, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", c.wishlistPath(shopID), itemID), nil)
	if err != nil {
		return c.requestError(err, shopID, 0)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return c.requestError(c.statusError(resp, "failed to remove item from wishlist"), shopID, 0)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// List fetches the full ordered item sequence for the shop. A response
// missing the wishlist_items container is a failure, not an empty list.
func (c *Client) List(ctx context.Context, shopID int64) ([]WishlistItem, error) {
	resp, err := c.do(ctx, http.MethodGet, c.wishlistPath(shopID), nil)
	if err != nil {
		return nil, c.requestError(err, shopID, 0)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.requestError(c.statusError(resp, "failed to fetch wishlist"), shopID, 0)
	}

	var envelope struct {
		Message string    `json:"message"`
		Data    *ListData `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, c.requestError(pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode wishlist response"), shopID, 0)
	}
	if envelope.Data == nil || envelope.Data.WishlistItems == nil {
		return nil, c.requestError(pkgerrors.New(pkgerrors.CodeDependency, "wishlist response missing items"), shopID, 0)
	}
	return envelope.Data.WishlistItems, nil
}

// CheckStatus asks the backend whether the product is wishlisted. Membership
// checks are best-effort by contract: any failure logs a warning and reads as
// not wishlisted.
func (c *Client) CheckStatus(ctx context.Context, shopID, productID int64) bool {
	inWishlist, err := c.checkStatus(ctx, shopID, productID)
	if err != nil {
		c.warn(ctx, "wishlist status check failed", err, shopID)
		c.metrics.IncCheckFailure()
		return false
	}
	return inWishlist
}

// Count returns the number of items in the shop's wishlist, or zero when the
// list cannot be fetched.
func (c *Client) Count(ctx context.Context, shopID int64) int {
	items, err := c.List(ctx, shopID)
	if err != nil {
		c.warn(ctx, "wishlist count failed", err, shopID)
		return 0
	}
	return len(items)
}

func (c *Client) checkStatus(ctx context.Context, shopID, productID int64) (bool, error) {
	c.metrics.IncCheck()

	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/check/%d", c.wishlistPath(shopID), productID), nil)
	if err != nil {
		return false, c.requestError(err, shopID, productID)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return false, c.requestError(c.statusError(resp, "failed to check wishlist status"), shopID, productID)
	}

	var envelope struct {
		Message string     `json:"message"`
		Data    *CheckData `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return false, c.requestError(pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode status response"), shopID, productID)
	}
	if envelope.Data == nil {
		return false, c.requestError(pkgerrors.New(pkgerrors.CodeDependency, "status response missing data"), shopID, productID)
	}
	return envelope.Data.IsInWishlist, nil
}

func (c *Client) do(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}

	req.Header.Set("Content-Type", "application/json")
	if token := strings.TrimSpace(c.tokens.AccessToken()); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute request")
	}
	return resp, nil
}

// statusError extracts the server-provided message from a non-success
// response, falling back to the supplied generic one.
func (c *Client) statusError(resp *http.Response, fallback string) *pkgerrors.Error {
	message := fallback

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
	var failure struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &failure); err == nil && strings.TrimSpace(failure.Message) != "" {
		message = failure.Message
	}

	code := pkgerrors.CodeDependency
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		code = pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		code = pkgerrors.CodeForbidden
	case http.StatusNotFound:
		code = pkgerrors.CodeNotFound
	case http.StatusConflict:
		code = pkgerrors.CodeConflict
	case http.StatusBadRequest:
		code = pkgerrors.CodeValidation
	}

	return pkgerrors.New(code, message).WithHTTPStatus(resp.StatusCode)
}

func (c *Client) requestError(err error, shopID, productID int64) *pkgerrors.Error {
	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "wishlist request failed")
	}
	typed = typed.WithDetail("shop_id", shopID)
	if productID != 0 {
		typed = typed.WithDetail("product_id", productID)
	}
	return typed
}

func (c *Client) warn(ctx context.Context, msg string, err error, shopID int64) {
	if c.logg == nil {
		return
	}
	c.logg.WarnErr(c.logg.WithShopID(ctx, shopID), msg, err)
}

func (c *Client) wishlistPath(shopID int64) string {
	return fmt.Sprintf("%s/api/public/shops/%d/wishlist", c.baseURL, shopID)
}
