package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/harvest/internal/constants"
	harvesthttp "github.com/fivetwenty-io/harvest/internal/http"
	"github.com/fivetwenty-io/harvest/pkg/harvest"
)

// Client implements the harvest.Client interface.
type Client struct {
	httpClient *harvesthttp.Client
	baseURL    string
	logger     harvest.Logger
	metrics    *harvest.MetricsCollector
	registry   *harvest.Registry
	store      harvest.Store
	cache      *harvest.Cache
	strict     bool
}

var _ harvest.Client = (*Client)(nil)

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *harvest.Config) []harvesthttp.Option {
	var httpOpts []harvesthttp.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, harvesthttp.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, harvesthttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, harvesthttp.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, harvesthttp.WithTimeout(config.HTTPTimeout))
	}

	if config.Metrics != nil {
		httpOpts = append(httpOpts, harvesthttp.WithMetrics(config.Metrics))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, harvesthttp.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a new harvest API client. The base URL is used as given; see
// harvestclient.New for normalization.
func New(ctx context.Context, config *harvest.Config) (*Client, error) {
	if config == nil {
		return nil, harvest.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, harvest.ErrBaseURLRequired
	}

	store := config.Store
	if store == nil {
		var err error

		store, err = harvest.NewStoreFromConfig(ctx, config.Cache)
		if err != nil {
			return nil, fmt.Errorf("creating cache store: %w", err)
		}
	}

	registry := config.Registry
	if registry == nil {
		registry = harvest.DefaultRegistry()
	}

	credentials := harvesthttp.Credentials{Email: config.Email, Password: config.Password}
	httpClient := harvesthttp.NewClient(config.BaseURL, credentials, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient: httpClient,
		baseURL:    httpClient.BaseURL(),
		logger:     config.Logger,
		metrics:    config.Metrics,
		registry:   registry,
		store:      store,
		strict:     config.StrictCoercion,
	}

	cacheOpts := []harvest.CacheOption{
		harvest.WithOwner(client),
		harvest.WithCacheMetrics(config.Metrics),
	}
	if config.Logger != nil {
		cacheOpts = append(cacheOpts, harvest.WithCacheLogger(config.Logger))
	}

	client.cache = harvest.NewCache(store, cacheOpts...)

	return client, nil
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Cache implements harvest.Client.Cache.
func (c *Client) Cache() *harvest.Cache {
	return c.cache
}

// Registry implements harvest.Client.Registry.
func (c *Client) Registry() *harvest.Registry {
	return c.registry
}

// Close implements harvest.Client.Close.
func (c *Client) Close() error {
	if closer, ok := c.store.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}

// Request implements harvest.Client.Request. An empty body is a malformed
// document for GET and an empty document for every other method.
func (c *Client) Request(ctx context.Context, method, path string, body []byte) (*harvest.Document, error) {
	resp, err := c.httpClient.Do(ctx, &harvesthttp.Request{
		Method: method,
		Path:   path,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}

	if len(strings.TrimSpace(string(resp.Body))) == 0 && method != http.MethodGet {
		return harvest.EmptyDocument(), nil
	}

	doc, err := harvest.ParseDocument(resp.Body)
	if err != nil {
		return nil, &harvest.MalformedDocumentError{URL: harvest.BuildPath(c.baseURL, path), Err: err}
	}

	return doc, nil
}

// Get implements harvest.Fetcher.Get.
func (c *Client) Get(ctx context.Context, kind string, id any, opts ...harvest.FetchOption) (*harvest.Entity, error) {
	desc, err := c.registry.ResolvePrimary(kind)
	if err != nil {
		return nil, err
	}

	return c.fetchOne(ctx, desc, desc.ItemPath(id), id, opts)
}

// List implements harvest.Fetcher.List.
func (c *Client) List(ctx context.Context, kind string, params harvest.Params, opts ...harvest.FetchOption) iter.Seq2[*harvest.Entity, error] {
	desc, err := c.registry.ResolvePrimary(kind)
	if err != nil {
		return harvest.ErrorSeq(err)
	}

	params = harvest.NormalizeParams(params)

	var key *harvest.CacheKey
	if params == nil {
		collectionKey := harvest.CollectionKey(desc.Name(), constants.ScopeAll)
		key = &collectionKey
	}

	return c.fetchMany(ctx, desc, desc.CollectionPath(params), key, opts)
}

// GetChild implements harvest.Fetcher.GetChild.
func (c *Client) GetChild(ctx context.Context, parent *harvest.Entity, kind string, id any, opts ...harvest.FetchOption) (*harvest.Entity, error) {
	parentDesc, desc, parentID, err := c.resolveChild(parent, kind)
	if err != nil {
		return nil, err
	}

	return c.fetchOne(ctx, desc, desc.NestedItemPath(parentDesc, parentID, id), id, opts)
}

// ListChildren implements harvest.Fetcher.ListChildren.
func (c *Client) ListChildren(ctx context.Context, parent *harvest.Entity, kind string, params harvest.Params, opts ...harvest.FetchOption) iter.Seq2[*harvest.Entity, error] {
	parentDesc, desc, parentID, err := c.resolveChild(parent, kind)
	if err != nil {
		return harvest.ErrorSeq(err)
	}

	params = harvest.NormalizeParams(params)

	var key *harvest.CacheKey
	if params == nil {
		collectionKey := harvest.CollectionKey(desc.Name(), harvest.ParentScope(parentDesc.Name(), parentID))
		key = &collectionKey
	}

	return c.fetchMany(ctx, desc, desc.NestedCollectionPath(parentDesc, parentID, params), key, opts)
}

// Ref implements harvest.Client.Ref.
func (c *Client) Ref(kind string, id any) (*harvest.Entity, error) {
	desc, err := c.registry.Resolve(kind)
	if err != nil {
		return nil, err
	}

	raw := harvest.QueryValue(id)
	if raw == "" {
		return nil, fmt.Errorf("referencing %s: %w", desc.Name(), harvest.ErrNoID)
	}

	typ := harvest.TypeString
	if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
		typ = harvest.TypeInteger
	}

	attr, _ := harvest.AttributeOf(harvest.Node{Tag: "id", Type: typ, Text: raw})

	return harvest.NewEntity(desc.Name(), attr).Bind(c), nil
}

func (c *Client) resolveChild(parent *harvest.Entity, kind string) (*harvest.Descriptor, *harvest.Descriptor, string, error) {
	if parent == nil {
		return nil, nil, "", fmt.Errorf("%w: nil parent for %s", harvest.ErrNotNested, kind)
	}

	parentDesc, desc, err := c.registry.ResolveNested(parent.Kind(), kind)
	if err != nil {
		return nil, nil, "", err
	}

	parentID, ok := parent.ID()
	if !ok {
		return nil, nil, "", fmt.Errorf("fetching %s under %s: %w", desc.Name(), parentDesc.Name(), harvest.ErrNoID)
	}

	return parentDesc, desc, parentID, nil
}

func (c *Client) fetchOne(ctx context.Context, desc *harvest.Descriptor, path string, id any, opts []harvest.FetchOption) (*harvest.Entity, error) {
	options := harvest.ApplyFetchOptions(opts)
	key := harvest.ItemKey(desc.Name(), id)

	entity, err := c.cache.Item(ctx, key, options.Bypass, func(ctx context.Context) (*harvest.Entity, error) {
		doc, err := c.Request(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}

		elements := doc.Elements(desc.ElementName())
		if len(elements) == 0 {
			return nil, harvest.ErrNotFound
		}

		return c.entityFrom(desc, elements[0])
	})
	if err != nil {
		return nil, fmt.Errorf("fetching %s %v: %w", desc.Name(), id, err)
	}

	return entity, nil
}

func (c *Client) fetchMany(ctx context.Context, desc *harvest.Descriptor, path string, key *harvest.CacheKey, opts []harvest.FetchOption) iter.Seq2[*harvest.Entity, error] {
	options := harvest.ApplyFetchOptions(opts)

	produce := func(yield func(*harvest.Entity, error) bool) {
		doc, err := c.Request(ctx, http.MethodGet, path, nil)
		if err != nil {
			yield(nil, fmt.Errorf("listing %s: %w", desc.PluralName(), err))

			return
		}

		for _, element := range doc.Elements(desc.ElementName()) {
			entity, err := c.entityFrom(desc, element)
			if err != nil {
				yield(nil, fmt.Errorf("listing %s: %w", desc.PluralName(), err))

				return
			}

			if !yield(entity, nil) {
				return
			}
		}
	}

	return c.cache.Collection(ctx, key, options.Bypass, produce)
}

func (c *Client) entityFrom(desc *harvest.Descriptor, element *harvest.Element) (*harvest.Entity, error) {
	nodes := element.Nodes()
	attrs := make([]harvest.Attribute, 0, len(nodes))

	for _, node := range nodes {
		attr, err := harvest.AttributeOf(node)
		if err != nil {
			if c.strict {
				return nil, fmt.Errorf("building %s: %w", desc.Name(), err)
			}

			c.recordFallback(desc, err)
		}

		attrs = append(attrs, attr)
	}

	return harvest.NewEntity(desc.Name(), attrs...).Bind(c), nil
}

func (c *Client) recordFallback(desc *harvest.Descriptor, err error) {
	coercionErr := &harvest.CoercionError{}
	if !errors.As(err, &coercionErr) {
		return
	}

	c.metrics.RecordCoercionFallback(coercionErr.Type)

	if c.logger != nil {
		c.logger.Debug("Coercion fallback", map[string]interface{}{
			"kind":  desc.Name(),
			"type":  string(coercionErr.Type),
			"raw":   coercionErr.Raw,
			"error": coercionErr.Err.Error(),
		})
	}
}
