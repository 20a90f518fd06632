package telegram

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pycarrot2/rebrickable-bot/core"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestBot builds a Bot against a fake API server. getMe is answered
// here so the constructor succeeds; everything else goes to handler.
func newTestBot(t *testing.T, handler http.HandlerFunc) *Bot {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/getMe") {
			w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Rebrickable","username":"rebrickable_bot"}}`))
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	bot, err := NewWithEndpoint("test-token", server.URL+"/bot%s/%s", testLogger())
	if err != nil {
		t.Fatalf("NewWithEndpoint: %v", err)
	}
	return bot
}

func TestSender_SendTextHTML(t *testing.T) {
	var path, chatID, text, parseMode string

	bot := newTestBot(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		r.ParseForm()
		chatID = r.FormValue("chat_id")
		text = r.FormValue("text")
		parseMode = r.FormValue("parse_mode")
		w.Write([]byte(`{"ok":true,"result":{}}`))
	})

	err := bot.Sender().Send(context.Background(), core.Reply{ChatID: 12345, Text: "<b>привет</b>", HTML: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasSuffix(path, "/sendMessage") {
		t.Errorf("unexpected path: %s", path)
	}
	if chatID != "12345" || text != "<b>привет</b>" || parseMode != "HTML" {
		t.Errorf("got chat_id=%q text=%q parse_mode=%q", chatID, text, parseMode)
	}
}

func TestSender_SendPlainText(t *testing.T) {
	var parseMode string
	seen := false

	bot := newTestBot(t, func(w http.ResponseWriter, r *http.Request) {
		seen = true
		r.ParseForm()
		parseMode = r.FormValue("parse_mode")
		w.Write([]byte(`{"ok":true,"result":{}}`))
	})

	err := bot.Sender().Send(context.Background(), core.Reply{ChatID: 1, Text: "Набор не найден!"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !seen {
		t.Fatal("no request sent")
	}
	if parseMode != "" {
		t.Errorf("parse_mode = %q, want empty for plain text", parseMode)
	}
}

func TestSender_SendPreviewAboveText(t *testing.T) {
	var path, previewOpts, parseMode string

	bot := newTestBot(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		r.ParseForm()
		previewOpts = r.FormValue("link_preview_options")
		parseMode = r.FormValue("parse_mode")
		w.Write([]byte(`{"ok":true,"result":{}}`))
	})

	r := core.Reply{ChatID: 1, Text: "MOC", HTML: true, PreviewAboveText: true}
	if err := bot.Sender().Send(context.Background(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasSuffix(path, "/sendMessage") {
		t.Errorf("unexpected path: %s", path)
	}
	if previewOpts != `{"show_above_text":true}` {
		t.Errorf("link_preview_options = %q", previewOpts)
	}
	if parseMode != "HTML" {
		t.Errorf("parse_mode = %q, want HTML", parseMode)
	}
}

func TestSender_SendPhotoByURL(t *testing.T) {
	var path, photo, caption, parseMode string

	bot := newTestBot(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		r.ParseForm()
		photo = r.FormValue("photo")
		caption = r.FormValue("caption")
		parseMode = r.FormValue("parse_mode")
		w.Write([]byte(`{"ok":true,"result":{}}`))
	})

	r := core.Reply{
		ChatID: 100,
		Text:   "ID: <b>42177</b>",
		HTML:   true,
		Photo:  &core.PhotoSource{URL: "https://cdn.rebrickable.com/media/sets/42177-1.jpg"},
	}
	if err := bot.Sender().Send(context.Background(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasSuffix(path, "/sendPhoto") {
		t.Errorf("unexpected path: %s", path)
	}
	if photo != "https://cdn.rebrickable.com/media/sets/42177-1.jpg" {
		t.Errorf("photo = %q", photo)
	}
	if caption != "ID: <b>42177</b>" || parseMode != "HTML" {
		t.Errorf("got caption=%q parse_mode=%q", caption, parseMode)
	}
}

func TestSender_SendPhotoBytes(t *testing.T) {
	var path, caption, filename string
	var uploaded []byte

	bot := newTestBot(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("expected multipart upload: %v", err)
			w.Write([]byte(`{"ok":true,"result":{}}`))
			return
		}
		caption = r.FormValue("caption")
		file, header, err := r.FormFile("photo")
		if err != nil {
			t.Errorf("no photo file part: %v", err)
		} else {
			defer file.Close()
			filename = header.Filename
			uploaded, _ = io.ReadAll(file)
		}
		w.Write([]byte(`{"ok":true,"result":{}}`))
	})

	r := core.Reply{
		ChatID: 100,
		Text:   "ID: <b>42177</b>",
		HTML:   true,
		Photo:  &core.PhotoSource{Data: []byte("jpeg bytes"), Filename: "set.jpg"},
	}
	if err := bot.Sender().Send(context.Background(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasSuffix(path, "/sendPhoto") {
		t.Errorf("unexpected path: %s", path)
	}
	if filename != "set.jpg" {
		t.Errorf("filename = %q, want set.jpg", filename)
	}
	if string(uploaded) != "jpeg bytes" {
		t.Errorf("uploaded = %q", uploaded)
	}
	if caption != "ID: <b>42177</b>" {
		t.Errorf("caption = %q", caption)
	}
}

func TestSender_SendPlatformError(t *testing.T) {
	bot := newTestBot(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: wrong type of the web page content"}`))
	})

	r := core.Reply{ChatID: 100, Text: "x", Photo: &core.PhotoSource{URL: "https://example.com/a.jpg"}}
	err := bot.Sender().Send(context.Background(), r)
	if err == nil {
		t.Fatal("expected error from platform rejection")
	}
	if !strings.Contains(err.Error(), "wrong type of the web page content") {
		t.Errorf("error should surface the platform description: %v", err)
	}
}

func TestSender_Name(t *testing.T) {
	s := NewSender(nil)
	if s.Name() != "telegram" {
		t.Errorf("expected name 'telegram', got %s", s.Name())
	}
}
