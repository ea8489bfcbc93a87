package scripted

import (
	"sync"

	"github.com/bnema/salvage-tracker/internal/domain"
	"github.com/bnema/salvage-tracker/internal/ports"
)

type widgetKey struct {
	group int
	child int
}

// Client is an in-memory game client whose world view and widget tree are
// set by a script instead of a live game.
type Client struct {
	mu      sync.RWMutex
	view    domain.WorldViewID
	inWorld bool
	widgets map[widgetKey]domain.Widget
}

var _ ports.GameClient = (*Client)(nil)

func NewClient() *Client {
	return &Client{widgets: map[widgetKey]domain.Widget{}}
}

func (c *Client) LocalWorldView() (domain.WorldViewID, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.view, c.inWorld
}

func (c *Client) Widget(group, child int) (domain.Widget, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	w, ok := c.widgets[widgetKey{group: group, child: child}]
	return w, ok
}

func (c *Client) EnterWorld(view domain.WorldViewID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.view = view
	c.inWorld = true
}

func (c *Client) LeaveWorld() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.view = 0
	c.inWorld = false
}

func (c *Client) SetWidget(group, child int, w domain.Widget) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.widgets[widgetKey{group: group, child: child}] = w
}

func (c *Client) RemoveWidget(group, child int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.widgets, widgetKey{group: group, child: child})
}

// CloseGroup drops every widget of an interface group.
func (c *Client) CloseGroup(group int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.widgets {
		if key.group == group {
			delete(c.widgets, key)
		}
	}
}
