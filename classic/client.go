package classic

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/s0up4200/bubblehearth/blizzard"
)

// Client is a WoW Classic connector sharing the credentials and token of a
// blizzard.Client.
type Client struct {
	client *blizzard.Client
}

// New creates a WoW Classic connector on top of client.
func New(client *blizzard.Client) *Client {
	return &Client{client: client}
}

// GetRealms retrieves the index of all realms in the client's region.
func (c *Client) GetRealms(ctx context.Context) (*RealmsIndex, error) {
	var index RealmsIndex
	if err := c.client.Get(ctx, "/data/wow/realm/index", c.request(nil), &index); err != nil {
		return nil, fmt.Errorf("failed to get realms: %w", err)
	}
	return &index, nil
}

// GetRealm retrieves a realm by slug. A realm that does not exist yields (nil, nil).
func (c *Client) GetRealm(ctx context.Context, slug string) (*Realm, error) {
	var realm Realm
	err := c.client.Get(ctx, "/data/wow/realm/"+url.PathEscape(slug), c.request(nil), &realm)
	if blizzard.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get realm %s: %w", slug, err)
	}
	return &realm, nil
}

// SearchRealms searches realms. The page defaults to the first one.
func (c *Client) SearchRealms(ctx context.Context, search RealmSearch) (*RealmSearchResult, error) {
	page := search.Page
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("_page", strconv.Itoa(page))
	if search.Timezone != "" {
		params.Set("timezone", search.Timezone.String())
	}
	if search.OrderBy != "" {
		params.Set("orderby", search.OrderBy)
	}

	var result RealmSearchResult
	if err := c.client.Get(ctx, "/data/wow/search/realm", c.request(params), &result); err != nil {
		return nil, fmt.Errorf("failed to search realms: %w", err)
	}
	return &result, nil
}

// GetRegions retrieves the index of all regions.
func (c *Client) GetRegions(ctx context.Context) (*RegionsIndex, error) {
	var index RegionsIndex
	if err := c.client.Get(ctx, "/data/wow/region/index", c.request(nil), &index); err != nil {
		return nil, fmt.Errorf("failed to get regions: %w", err)
	}
	return &index, nil
}

// GetRegion retrieves a region by ID. A region that does not exist yields (nil, nil).
func (c *Client) GetRegion(ctx context.Context, id int64) (*Region, error) {
	var region Region
	err := c.client.Get(ctx, "/data/wow/region/"+strconv.FormatInt(id, 10), c.request(nil), &region)
	if blizzard.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get region %d: %w", id, err)
	}
	return &region, nil
}

func (c *Client) request(params url.Values) blizzard.Request {
	return blizzard.Request{
		Namespace: c.client.Namespace(blizzard.NamespaceDynamicClassic),
		Params:    params,
	}
}
