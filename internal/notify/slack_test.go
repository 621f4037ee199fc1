package notify

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cympfh/shellbot-slack/internal/command"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildPayload_Colors(t *testing.T) {
	n := NewNotifier(Options{Channel: "#ops", Username: "bot"}, testLogger())

	if got := n.buildPayload(command.Success("ok")).Color; got != "#202020" {
		t.Fatalf("success color = %q, want #202020", got)
	}
	if got := n.buildPayload(command.Failure("bad")).Color; got != "#f02020" {
		t.Fatalf("failure color = %q, want #f02020", got)
	}
}

func TestBuildPayload_ChannelPrefix(t *testing.T) {
	bare := NewNotifier(Options{Channel: "ops", Username: "bot"}, testLogger())
	if got := bare.buildPayload(command.Success("")).Channel; got != "#ops" {
		t.Fatalf("channel = %q, want #ops", got)
	}

	prefixed := NewNotifier(Options{Channel: "#ops", Username: "bot"}, testLogger())
	if got := prefixed.buildPayload(command.Success("")).Channel; got != "#ops" {
		t.Fatalf("channel = %q, want #ops", got)
	}
}

func TestBuildPayload_IconSelection(t *testing.T) {
	tests := []struct {
		name      string
		icon      string
		wantEmoji string
		wantURL   string
	}{
		{"emoji", ":rocket:", ":rocket:", ""},
		{"url", "https://x/y.png", "", "https://x/y.png"},
		{"neither prefix", "plain", "", ""},
		{"absent", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNotifier(Options{Channel: "#ops", Username: "bot", Icon: tt.icon}, testLogger())
			p := n.buildPayload(command.Success("out"))
			if p.IconEmoji != tt.wantEmoji {
				t.Fatalf("icon_emoji = %q, want %q", p.IconEmoji, tt.wantEmoji)
			}
			if p.IconURL != tt.wantURL {
				t.Fatalf("icon_url = %q, want %q", p.IconURL, tt.wantURL)
			}
		})
	}
}

func TestBuildPayload_FieldCarriesResultText(t *testing.T) {
	n := NewNotifier(Options{Channel: "#ops", Username: "bot"}, testLogger())

	p := n.buildPayload(command.Success("hello\n"))
	if len(p.Fields) != 1 {
		t.Fatalf("expected one field, got %d", len(p.Fields))
	}
	f := p.Fields[0]
	if f.Title != "" || f.Value != "hello\n" || f.Short {
		t.Fatalf("unexpected field: %+v", f)
	}
}

func TestNotify_PostsJSONPayload(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Errorf("invalid JSON body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewNotifier(Options{
		WebhookURL: srv.URL,
		Channel:    "ops",
		Username:   "shellbot",
		Icon:       ":robot_face:",
	}, testLogger())

	n.Notify(context.Background(), command.Failure("Error: rm is not allowed"))

	if received["channel"] != "#ops" {
		t.Fatalf("channel = %v, want #ops", received["channel"])
	}
	if received["color"] != "#f02020" {
		t.Fatalf("color = %v, want #f02020", received["color"])
	}
	if received["icon_emoji"] != ":robot_face:" {
		t.Fatalf("icon_emoji = %v", received["icon_emoji"])
	}
}

// A rejected or unreachable webhook must not panic or propagate.
func TestNotify_DeliveryFailuresAreSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	n := NewNotifier(Options{WebhookURL: srv.URL, Channel: "#ops", Username: "bot"}, testLogger())
	n.Notify(context.Background(), command.Success("out"))
	srv.Close()

	// Server is closed now: transport error path.
	n.Notify(context.Background(), command.Success("out"))
}
