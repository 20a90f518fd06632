package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pycarrot2/rebrickable-bot/core"
)

// Sender delivers replies through the Telegram Bot API.
type Sender struct {
	api *tgbotapi.BotAPI
}

// NewSender wraps an API client for outbound sends.
func NewSender(api *tgbotapi.BotAPI) *Sender { return &Sender{api: api} }

func (s *Sender) Name() string { return "telegram" }

// Send delivers one reply. Photo replies go out as sendPhoto with the
// caption attached; downloaded bytes win over a URL as the photo source.
func (s *Sender) Send(ctx context.Context, r core.Reply) error {
	if r.Photo != nil {
		return s.sendPhoto(r)
	}
	if r.PreviewAboveText {
		return s.sendMessagePreviewAbove(r)
	}

	msg := tgbotapi.NewMessage(r.ChatID, r.Text)
	if r.HTML {
		msg.ParseMode = tgbotapi.ModeHTML
	}
	_, err := s.api.Send(msg)
	return err
}

func (s *Sender) sendPhoto(r core.Reply) error {
	var file tgbotapi.RequestFileData
	if len(r.Photo.Data) > 0 {
		file = tgbotapi.FileBytes{Name: r.Photo.Filename, Bytes: r.Photo.Data}
	} else {
		file = tgbotapi.FileURL(r.Photo.URL)
	}

	photo := tgbotapi.NewPhoto(r.ChatID, file)
	photo.Caption = r.Text
	if r.HTML {
		photo.ParseMode = tgbotapi.ModeHTML
	}
	_, err := s.api.Send(photo)
	return err
}

// sendMessagePreviewAbove posts sendMessage directly: the SDK's message
// config predates link_preview_options.
func (s *Sender) sendMessagePreviewAbove(r core.Reply) error {
	params := tgbotapi.Params{}
	params.AddNonZero64("chat_id", r.ChatID)
	params["text"] = r.Text
	if r.HTML {
		params["parse_mode"] = tgbotapi.ModeHTML
	}
	params["link_preview_options"] = `{"show_above_text":true}`

	_, err := s.api.MakeRequest("sendMessage", params)
	return err
}
