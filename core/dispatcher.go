package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Platform error fragment marking a photo URL rejected for its content
// type; only this failure triggers the download-and-reupload fallback.
const wrongContentTypeFragment = "wrong type of the web page content"

const (
	startHintText = "Пришли номер набора, например <b>42177</b>\nВ группах: @rebrickable_bot 42177\nВопросы: @pycarrot2"
	promptText    = "Пришли номер набора, например <b>42177</b>\nВопросы: @pycarrot2"
)

var digitRunRe = regexp.MustCompile(`\d+`)

// ImageFetcher downloads image bytes for the attachment fallback.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Dispatcher turns incoming messages into catalog lookups and replies.
type Dispatcher struct {
	catalog     Catalog
	sender      Sender
	images      ImageFetcher
	botUsername string
	logger      *slog.Logger

	errOut io.Writer
	now    func() time.Time
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(catalog Catalog, sender Sender, images ImageFetcher, botUsername string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		catalog:     catalog,
		sender:      sender,
		images:      images,
		botUsername: botUsername,
		logger:      logger,
		errOut:      os.Stdout,
		now:         time.Now,
	}
}

// Handle processes one incoming message: extract, look up, format,
// deliver. Errors never escape: every failure is written to the error
// line, and not-found lookups additionally get the fallback reply.
func (d *Dispatcher) Handle(ctx context.Context, msg IncomingMessage) {
	logger := d.logger.With("request", uuid.NewString(), "chat_id", msg.ChatID, "kind", msg.Kind.String())

	err := d.handle(ctx, msg, logger)
	if err == nil {
		return
	}

	fmt.Fprint(d.errOut, formatChatError(d.now(), msg.ChatName, msg.ChatID, err))
	logger.Error("update failed", "error", err)

	if !IsNotFound(err) {
		return
	}
	if serr := d.sender.Send(ctx, notFoundReply(msg)); serr != nil {
		logger.Error("failed to send not-found reply", "error", serr)
	}
}

func (d *Dispatcher) handle(ctx context.Context, msg IncomingMessage, logger *slog.Logger) error {
	if msg.Command == "start" {
		if msg.Kind != ChatPrivate {
			return nil
		}
		return d.sender.Send(ctx, Reply{ChatID: msg.ChatID, Text: startHintText, HTML: true})
	}

	id, ok := ExtractSetID(msg.Text, msg.Kind, d.botUsername)
	if !ok {
		// Groups stay silent on unrelated chatter; private chats get a
		// short usage prompt.
		if msg.Kind != ChatPrivate {
			return nil
		}
		return d.sender.Send(ctx, Reply{ChatID: msg.ChatID, Text: promptText, HTML: true})
	}

	logger.Debug("set lookup", "set", id)
	rec, err := d.catalog.GetSet(ctx, id)
	if err != nil {
		return err
	}

	caption, imageURL := FormatSetCaption(rec)
	return d.deliverPhoto(ctx, msg.ChatID, caption, imageURL)
}

// deliverPhoto sends the photo by URL first. When the platform rejects
// the URL for its content type, the bytes are downloaded and re-sent as
// an upload. Any other platform error propagates.
func (d *Dispatcher) deliverPhoto(ctx context.Context, chatID int64, caption, imageURL string) error {
	err := d.sender.Send(ctx, Reply{
		ChatID: chatID,
		Text:   caption,
		HTML:   true,
		Photo:  &PhotoSource{URL: imageURL},
	})
	if err == nil {
		return nil
	}
	if !strings.Contains(err.Error(), wrongContentTypeFragment) {
		return err
	}

	data, ferr := d.images.Fetch(ctx, imageURL)
	if ferr != nil {
		return ferr
	}
	return d.sender.Send(ctx, Reply{
		ChatID: chatID,
		Text:   caption,
		HTML:   true,
		Photo:  &PhotoSource{Data: data, Filename: "set.jpg"},
	})
}

// notFoundReply builds the reply for a set the catalog does not know.
// A 6-digit run in the original text is taken for a MOC id and answered
// with a constructed link; anything else gets a plain not-found text.
func notFoundReply(msg IncomingMessage) Reply {
	digits := digitRunRe.FindString(msg.Text)
	switch {
	case digits == "":
		return Reply{ChatID: msg.ChatID, Text: "Набор не найден!"}
	case len(digits) == 6:
		text := fmt.Sprintf("Набор не найден, но есть MOC:\n🔗 <a href=\"https://rebrickable.com/mocs/MOC-%s/\"><b>MOC-%s</b></a>", digits, digits)
		return Reply{ChatID: msg.ChatID, Text: text, HTML: true, PreviewAboveText: true}
	default:
		return Reply{ChatID: msg.ChatID, Text: fmt.Sprintf("Набор %s не найден!", digits)}
	}
}
