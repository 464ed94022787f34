// Package telegram implements the transport and membership collaborators
// against the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"codehunt/giveaway/internal/config"
	"codehunt/giveaway/internal/service"
)

const defaultAPIBase = "https://api.telegram.org"

type Client struct {
	apiBase         string
	token           string
	requiredChannel string
	httpClient      *http.Client
}

func NewClient(cfg config.TelegramConfig, requiredChannel string) *Client {
	apiBase := cfg.APIBase
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiBase:         apiBase,
		token:           cfg.Token,
		requiredChannel: requiredChannel,
		httpClient:      &http.Client{Timeout: timeout},
	}
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}

func (c *Client) call(ctx context.Context, method string, payload interface{}, result interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.apiBase, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	var api apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&api); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if !api.OK {
		return fmt.Errorf("%s: %s", method, api.Description)
	}
	if result != nil {
		if err := json.Unmarshal(api.Result, result); err != nil {
			return fmt.Errorf("decode %s result: %w", method, err)
		}
	}
	return nil
}

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

// Deliver sends one message to one recipient.
func (c *Client) Deliver(ctx context.Context, recipientID int64, message string) error {
	return c.call(ctx, "sendMessage", sendMessageRequest{ChatID: recipientID, Text: message}, nil)
}

type getChatMemberRequest struct {
	ChatID string `json:"chat_id"`
	UserID int64  `json:"user_id"`
}

type chatMember struct {
	Status string `json:"status"`
}

// CheckMembership asks whether the identity is currently a member of the
// required channel.
func (c *Client) CheckMembership(ctx context.Context, externalID int64) (service.MembershipStatus, error) {
	var member chatMember
	err := c.call(ctx, "getChatMember", getChatMemberRequest{
		ChatID: c.requiredChannel,
		UserID: externalID,
	}, &member)
	if err != nil {
		return service.MembershipUnknown, err
	}

	switch member.Status {
	case "creator", "administrator", "member", "restricted":
		return service.MembershipMember, nil
	case "left", "kicked":
		return service.MembershipNotMember, nil
	default:
		return service.MembershipUnknown, nil
	}
}

var (
	_ service.Transport        = (*Client)(nil)
	_ service.MembershipClient = (*Client)(nil)
)
