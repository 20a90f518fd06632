package core

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

var leadingDigitsRe = regexp.MustCompile(`^\d+`)

// FormatSetCaption renders the HTML caption for a catalog record and
// returns it together with the record's image URL. The identifier shown
// is the leading digit run of SetNum; a SetNum without leading digits is
// shown verbatim. Missing year or part count render as "—", and a record
// without a catalog URL simply drops the Rebrickable line.
func FormatSetCaption(rec CatalogRecord) (caption, imageURL string) {
	name := strings.TrimSpace(rec.Name)
	setURL := strings.TrimSpace(rec.SetURL)
	imageURL = strings.TrimSpace(rec.ImageURL)

	setNum := strings.TrimSpace(rec.SetNum)
	if m := leadingDigitsRe.FindString(setNum); m != "" {
		setNum = m
	}

	year := "—"
	if rec.Year != nil {
		year = strconv.Itoa(*rec.Year)
	}
	parts := "—"
	if rec.NumParts != nil {
		parts = strconv.Itoa(*rec.NumParts)
	}

	legoURL := "https://www.lego.com/en-us/search?q=" + setNum

	rebrickLine := ""
	if setURL != "" {
		rebrickLine = fmt.Sprintf(`🔗 <a href="%s"><b>Rebrickable</b></a>`, html.EscapeString(setURL))
	}

	// The parts line keeps its own trailing newline so a blank line
	// separates the details from the links.
	lines := []string{
		fmt.Sprintf("ID: <b>%s</b>", html.EscapeString(setNum)),
		fmt.Sprintf("Название: <b>%s</b> (%s)", html.EscapeString(name), year),
		fmt.Sprintf("Деталей: <b>%s</b>\n", parts),
		rebrickLine,
		fmt.Sprintf(`🧱 <a href="%s">Lego</a> <i></i>`, html.EscapeString(legoURL)),
	}

	kept := lines[:0]
	for _, ln := range lines {
		if ln != "" {
			kept = append(kept, ln)
		}
	}
	return strings.Join(kept, "\n"), imageURL
}
