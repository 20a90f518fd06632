package core

import (
	"regexp"
	"strconv"
	"strings"
)

var privateSetIDRe = regexp.MustCompile(`^\s*(\d+)(?:-\d+)?\s*$`)

// ExtractSetID derives the set id a message asks about, if any.
// Private chats accept a bare number ("42177", "42177-1"); groups and
// supergroups require an explicit "@botUsername 42177" mention anywhere
// in the text. Other chat kinds never trigger.
func ExtractSetID(text string, kind ChatKind, botUsername string) (int, bool) {
	switch kind {
	case ChatPrivate:
		return extractPrivateSetID(text)
	case ChatGroup, ChatSupergroup:
		return extractGroupSetID(text, botUsername)
	default:
		return 0, false
	}
}

func extractPrivateSetID(text string) (int, bool) {
	m := privateSetIDRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return id, true
}

func extractGroupSetID(text, botUsername string) (int, bool) {
	u := normalizeBotUsername(botUsername)
	if u == "" || text == "" {
		return 0, false
	}
	re := regexp.MustCompile(`(?i)@` + regexp.QuoteMeta(u) + `\s+(\d+)(?:-\d+)?`)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return id, true
}

// normalizeBotUsername strips surrounding space and a single leading "@".
func normalizeBotUsername(u string) string {
	u = strings.TrimSpace(u)
	u = strings.TrimPrefix(u, "@")
	return u
}
