// Package outlook provides the Microsoft Graph mail adapter.
package outlook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"digest_worker/core/domain"
	"digest_worker/core/port/out"

	"golang.org/x/oauth2"
)

const defaultBaseURL = "https://graph.microsoft.com/v1.0"

// Provider implements out.MailProvider against the Graph API.
type Provider struct {
	client   *http.Client
	baseURL  string
	folder   string
	pageSize int
}

// NewProvider creates a Graph mail provider reading from the given folder.
func NewProvider(folder string, pageSize int) *Provider {
	if folder == "" {
		folder = "inbox"
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Provider{
		client:   &http.Client{Timeout: 30 * time.Second},
		baseURL:  defaultBaseURL,
		folder:   folder,
		pageSize: pageSize,
	}
}

// ListUnread lists unread messages in the mailbox's folder. The unread
// filter is applied server-side; an empty mailbox is an empty slice.
func (p *Provider) ListUnread(ctx context.Context, token *oauth2.Token, mailbox string) ([]domain.Email, error) {
	params := url.Values{}
	params.Set("$filter", "isRead eq false")
	params.Set("$select", "id,subject,body,from,isRead")
	params.Set("$top", fmt.Sprintf("%d", p.pageSize))

	var resp struct {
		Value []graphMessage `json:"value"`
	}

	path := fmt.Sprintf("/users/%s/mailFolders/%s/messages?%s",
		url.PathEscape(mailbox), url.PathEscape(p.folder), params.Encode())
	if err := p.get(ctx, token, path, &resp); err != nil {
		return nil, err
	}

	emails := make([]domain.Email, len(resp.Value))
	for i, m := range resp.Value {
		emails[i] = convertMessage(&m)
	}

	return emails, nil
}

// Send delivers a plain-text message to a single recipient.
func (p *Provider) Send(ctx context.Context, token *oauth2.Token, from, to, subject, body string) error {
	payload := struct {
		Message         graphMessage `json:"message"`
		SaveToSentItems bool         `json:"saveToSentItems"`
	}{
		Message:         buildGraphMessage(to, subject, body),
		SaveToSentItems: true,
	}

	return p.post(ctx, token, fmt.Sprintf("/users/%s/sendMail", url.PathEscape(from)), payload)
}

// MarkRead marks a message as read.
func (p *Provider) MarkRead(ctx context.Context, token *oauth2.Token, mailbox, messageID string) error {
	path := fmt.Sprintf("/users/%s/messages/%s", url.PathEscape(mailbox), url.PathEscape(messageID))
	return p.patch(ctx, token, path, map[string]bool{
		"isRead": true,
	})
}

// HTTP helpers

func (p *Provider) get(ctx context.Context, token *oauth2.Token, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", p.baseURL+path, nil)
	if err != nil {
		return err
	}

	return p.doRequest(req, token, result)
}

func (p *Provider) post(ctx context.Context, token *oauth2.Token, path string, body interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return p.doRequest(req, token, nil)
}

func (p *Provider) patch(ctx context.Context, token *oauth2.Token, path string, body interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "PATCH", p.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return p.doRequest(req, token, nil)
}

func (p *Provider) doRequest(req *http.Request, token *oauth2.Token, result interface{}) error {
	token.SetAuthHeader(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("graph API error: %d - %s", resp.StatusCode, string(body))
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Graph API types

type graphMessage struct {
	ID           string           `json:"id,omitempty"`
	Subject      string           `json:"subject"`
	Body         graphBody        `json:"body"`
	From         *graphRecipient  `json:"from,omitempty"`
	ToRecipients []graphRecipient `json:"toRecipients,omitempty"`
	IsRead       bool             `json:"isRead,omitempty"`
}

type graphBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type graphRecipient struct {
	EmailAddress graphEmailAddress `json:"emailAddress"`
}

type graphEmailAddress struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address"`
}

func convertMessage(msg *graphMessage) domain.Email {
	email := domain.Email{
		ID:       msg.ID,
		Subject:  msg.Subject,
		BodyText: msg.Body.Content,
		IsRead:   msg.IsRead,
	}
	if msg.From != nil {
		email.From = msg.From.EmailAddress.Address
	}
	return email
}

func buildGraphMessage(to, subject, body string) graphMessage {
	return graphMessage{
		Subject: subject,
		Body: graphBody{
			ContentType: "Text",
			Content:     body,
		},
		ToRecipients: []graphRecipient{
			{EmailAddress: graphEmailAddress{Address: to}},
		},
	}
}

// Ensure Provider implements out.MailProvider
var _ out.MailProvider = (*Provider)(nil)
