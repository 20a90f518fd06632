package core

import (
	"fmt"
	"time"
)

var errLineZone = time.FixedZone("UTC+1", 3600)

// formatChatError renders the one-line record written for every failed
// update: "DD.MM.YYYY HH:MM:SS|chat name|chat id - error". The timestamp
// is fixed to UTC+1 regardless of host timezone.
func formatChatError(now time.Time, chatName string, chatID int64, err error) string {
	ts := now.In(errLineZone).Format("02.01.2006 15:04:05")
	return fmt.Sprintf("%s|%s|%d - %s\n", ts, chatName, chatID, err)
}
