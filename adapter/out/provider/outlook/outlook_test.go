package outlook

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"golang.org/x/oauth2"
)

func testToken() *oauth2.Token {
	return &oauth2.Token{AccessToken: "test-token", TokenType: "Bearer"}
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := NewProvider("inbox", 25)
	p.baseURL = srv.URL
	return p
}

func TestListUnread(t *testing.T) {
	var gotPath, gotAuth, gotFilter string
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotFilter = r.URL.Query().Get("$filter")
		io.WriteString(w, `{
			"value": [
				{
					"id": "msg-1",
					"subject": "Q3 review",
					"body": {"contentType": "text", "content": "numbers inside"},
					"from": {"emailAddress": {"name": "CFO", "address": "cfo@corp.com"}},
					"isRead": false
				},
				{
					"id": "msg-2",
					"subject": "",
					"body": {"contentType": "html", "content": "<p>hi</p>"},
					"isRead": false
				}
			]
		}`)
	})

	emails, err := p.ListUnread(context.Background(), testToken(), "inbox@corp.com")
	if err != nil {
		t.Fatalf("ListUnread() error = %v", err)
	}

	if gotPath != "/users/inbox@corp.com/mailFolders/inbox/messages" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotFilter != "isRead eq false" {
		t.Errorf("$filter = %q", gotFilter)
	}

	if len(emails) != 2 {
		t.Fatalf("got %d emails, want 2", len(emails))
	}
	first := emails[0]
	if first.ID != "msg-1" || first.Subject != "Q3 review" || first.From != "cfo@corp.com" {
		t.Errorf("first email = %+v", first)
	}
	if first.BodyText != "numbers inside" {
		t.Errorf("body = %q", first.BodyText)
	}
	if emails[1].From != "" {
		t.Errorf("missing sender should map to empty address, got %q", emails[1].From)
	}
}

func TestListUnreadEmptyMailbox(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"value": []}`)
	})

	emails, err := p.ListUnread(context.Background(), testToken(), "inbox@corp.com")
	if err != nil {
		t.Fatalf("ListUnread() error = %v", err)
	}
	if len(emails) != 0 {
		t.Errorf("got %d emails, want empty slice", len(emails))
	}
}

func TestListUnreadGraphError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"error": {"code": "ErrorAccessDenied"}}`)
	})

	_, err := p.ListUnread(context.Background(), testToken(), "inbox@corp.com")
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error should carry status: %v", err)
	}
}

func TestSend(t *testing.T) {
	var gotPath string
	var gotBody struct {
		Message struct {
			Subject string `json:"subject"`
			Body    struct {
				ContentType string `json:"contentType"`
				Content     string `json:"content"`
			} `json:"body"`
			ToRecipients []struct {
				EmailAddress struct {
					Address string `json:"address"`
				} `json:"emailAddress"`
			} `json:"toRecipients"`
		} `json:"message"`
		SaveToSentItems bool `json:"saveToSentItems"`
	}

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode send payload: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	})

	err := p.Send(context.Background(), testToken(), "digest@corp.com", "boss@corp.com", "Email Summary", "the report")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if gotPath != "/users/digest@corp.com/sendMail" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody.Message.Subject != "Email Summary" {
		t.Errorf("subject = %q", gotBody.Message.Subject)
	}
	if gotBody.Message.Body.ContentType != "Text" || gotBody.Message.Body.Content != "the report" {
		t.Errorf("body = %+v", gotBody.Message.Body)
	}
	if len(gotBody.Message.ToRecipients) != 1 || gotBody.Message.ToRecipients[0].EmailAddress.Address != "boss@corp.com" {
		t.Errorf("recipients = %+v", gotBody.Message.ToRecipients)
	}
	if !gotBody.SaveToSentItems {
		t.Error("saveToSentItems = false")
	}
}

func TestMarkRead(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]bool
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode patch payload: %v", err)
		}
	})

	err := p.MarkRead(context.Background(), testToken(), "inbox@corp.com", "msg-1")
	if err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	if gotMethod != "PATCH" {
		t.Errorf("method = %q, want PATCH", gotMethod)
	}
	if gotPath != "/users/inbox@corp.com/messages/msg-1" {
		t.Errorf("path = %q", gotPath)
	}
	if !gotBody["isRead"] {
		t.Errorf("patch body = %v, want isRead true", gotBody)
	}
}
