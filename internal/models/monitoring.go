package models

import (
	"encoding/json"
	"fmt"
)

// Client is a monitored host as reported by the monitoring API.
// Attributes holds the full decoded object, custom attributes included.
type Client struct {
	Name          string         `json:"name"`
	Address       string         `json:"address"`
	Subscriptions []string       `json:"subscriptions,omitempty"`
	Timestamp     int64          `json:"timestamp,omitempty"`
	Attributes    map[string]any `json:"-"`
}

// Datacenter returns the optional custom datacenter attribute.
func (c Client) Datacenter() string {
	if v, ok := c.Attributes["datacenter"].(string); ok {
		return v
	}
	return ""
}

func (c *Client) UnmarshalJSON(data []byte) error {
	type plain Client
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to decode client: %w", err)
	}
	attrs, err := decodeAttributes(data)
	if err != nil {
		return err
	}
	*c = Client(p)
	c.Attributes = attrs
	return nil
}

// Check is a check definition or the last result of a check.
type Check struct {
	Name        string         `json:"name"`
	Command     string         `json:"command,omitempty"`
	Output      string         `json:"output,omitempty"`
	Status      int            `json:"status"`
	Interval    int            `json:"interval,omitempty"`
	Subscribers []string       `json:"subscribers,omitempty"`
	Attributes  map[string]any `json:"-"`
}

func (c *Check) UnmarshalJSON(data []byte) error {
	type plain Check
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to decode check: %w", err)
	}
	attrs, err := decodeAttributes(data)
	if err != nil {
		return err
	}
	*c = Check(p)
	c.Attributes = attrs
	return nil
}

// Event is an open event for a client/check pair.
type Event struct {
	ID          string `json:"id,omitempty"`
	Client      Client `json:"client"`
	Check       Check  `json:"check"`
	Occurrences int    `json:"occurrences"`
	Action      string `json:"action,omitempty"`
	Timestamp   int64  `json:"timestamp,omitempty"`
}

// HistoryEntry is one check row of GET /clients/{name}/history.
type HistoryEntry struct {
	Check         string `json:"check"`
	History       []int  `json:"history"`
	LastExecution int64  `json:"last_execution"`
	LastStatus    int    `json:"last_status"`
}

// Stash groups an arbitrary JSON payload under a path.
type Stash struct {
	Path    string         `json:"path"`
	Content map[string]any `json:"content"`
	Expire  int64          `json:"expire,omitempty"`
}

func decodeAttributes(data []byte) (map[string]any, error) {
	attrs := make(map[string]any)
	if err := json.Unmarshal(data, &attrs); err != nil {
		return nil, fmt.Errorf("failed to decode attributes: %w", err)
	}
	return attrs, nil
}
