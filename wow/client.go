package wow

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/s0up4200/bubblehearth/blizzard"
)

// Client is a retail WoW connector built on a blizzard.Client.
type Client struct {
	client *blizzard.Client
}

// New creates a retail WoW connector on top of client.
func New(client *blizzard.Client) *Client {
	return &Client{client: client}
}

// GetRealms retrieves the index of all realms.
func (c *Client) GetRealms(ctx context.Context) (*RealmsIndex, error) {
	var index RealmsIndex
	if err := c.client.Get(ctx, "/data/wow/realm/index", c.request(blizzard.NamespaceDynamic), &index); err != nil {
		return nil, fmt.Errorf("failed to get realms: %w", err)
	}
	return &index, nil
}

// GetRealm retrieves a realm by slug, returning nil when it does not exist.
func (c *Client) GetRealm(ctx context.Context, slug string) (*Realm, error) {
	var realm Realm
	found, err := c.get(ctx, "/data/wow/realm/"+url.PathEscape(slug), blizzard.NamespaceDynamic, &realm)
	if err != nil {
		return nil, fmt.Errorf("failed to get realm %s: %w", slug, err)
	}
	if !found {
		return nil, nil
	}
	return &realm, nil
}

// GetItem retrieves an item by ID, returning nil when it does not exist.
func (c *Client) GetItem(ctx context.Context, id int64) (*Item, error) {
	var item Item
	found, err := c.get(ctx, "/data/wow/item/"+strconv.FormatInt(id, 10), blizzard.NamespaceStatic, &item)
	if err != nil {
		return nil, fmt.Errorf("failed to get item %d: %w", id, err)
	}
	if !found {
		return nil, nil
	}
	return &item, nil
}

// GetCharacter retrieves the profile summary of a character. Character names
// are matched case-insensitively. Characters that do not exist, or that have
// not logged in recently enough to have a profile, yield (nil, nil).
func (c *Client) GetCharacter(ctx context.Context, realmSlug, name string) (*Character, error) {
	path := fmt.Sprintf("/profile/wow/character/%s/%s",
		url.PathEscape(strings.ToLower(realmSlug)),
		url.PathEscape(strings.ToLower(name)))

	var character Character
	found, err := c.get(ctx, path, blizzard.NamespaceProfile, &character)
	if err != nil {
		return nil, fmt.Errorf("failed to get character %s-%s: %w", name, realmSlug, err)
	}
	if !found {
		return nil, nil
	}
	return &character, nil
}

func (c *Client) get(ctx context.Context, path string, kind blizzard.NamespaceKind, out any) (bool, error) {
	err := c.client.Get(ctx, path, c.request(kind), out)
	if blizzard.IsNotFound(err) {
		return false, nil
	}
	return err == nil, err
}

func (c *Client) request(kind blizzard.NamespaceKind) blizzard.Request {
	return blizzard.Request{Namespace: c.client.Namespace(kind)}
}
