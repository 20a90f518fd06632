package core

import "context"

// PhotoSource is the image attached to a reply. Data wins over URL when
// both are set; Filename names the upload.
type PhotoSource struct {
	URL      string
	Data     []byte
	Filename string
}

// Reply represents an outbound message to a single chat. Text is the
// caption when Photo is set. HTML selects HTML parse mode.
// PreviewAboveText asks the platform to place the link preview above the
// message text.
type Reply struct {
	ChatID           int64
	Text             string
	HTML             bool
	PreviewAboveText bool
	Photo            *PhotoSource
}

// Sender delivers replies to the messaging platform.
type Sender interface {
	Name() string
	Send(ctx context.Context, r Reply) error
}
