package diablo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/s0up4200/bubblehearth/blizzard"
)

// Client is a Diablo III connector built on a blizzard.Client.
type Client struct {
	client *blizzard.Client
}

// New creates a Diablo III connector on top of client.
func New(client *blizzard.Client) *Client {
	return &Client{client: client}
}

// GetActs retrieves all acts.
func (c *Client) GetActs(ctx context.Context) (*ActsIndex, error) {
	var index ActsIndex
	if err := c.client.Get(ctx, "/d3/data/act", blizzard.Request{}, &index); err != nil {
		return nil, fmt.Errorf("failed to get acts: %w", err)
	}
	return &index, nil
}

// GetAct retrieves an act by number. An act that does not exist yields (nil, nil).
func (c *Client) GetAct(ctx context.Context, id int) (*Act, error) {
	var act Act
	err := c.client.Get(ctx, "/d3/data/act/"+strconv.Itoa(id), blizzard.Request{}, &act)
	if blizzard.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get act %d: %w", id, err)
	}
	return &act, nil
}
