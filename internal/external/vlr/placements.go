package vlr

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/vctrank/internal/contracts"
)

const (
	placementsHeading = "Event Placements"
	placementSep      = "–" // en dash
)

// FetchEventPlacements fetches the tournament placement history of a player
// ⭐ SSOT: 대회 입상 기록 수집은 이 함수에서만
func (c *Client) FetchEventPlacements(ctx context.Context, playerLink string) ([]contracts.EventPlacement, error) {
	url := c.PageURL(playerLink)

	doc, err := c.fetchDocument(ctx, url)
	if err != nil {
		return nil, err
	}

	events, err := ParseEventPlacements(doc.Selection)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"player": playerLink,
		"events": len(events),
	}).Debug("Fetched event placements")

	return events, nil
}

// ParseEventPlacements reads every event item following the placements heading.
// Items without a year or a placement span are ignored.
func ParseEventPlacements(page *goquery.Selection) ([]contracts.EventPlacement, error) {
	heading := page.Find("h2").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(s.Text(), placementsHeading)
	}).First()
	if heading.Length() == 0 {
		return nil, fmt.Errorf("%q heading: %w", placementsHeading, contracts.ErrNotFound)
	}

	section := heading.NextAllFiltered("div").First()
	if section.Length() == 0 {
		return nil, fmt.Errorf("%q section: %w", placementsHeading, contracts.ErrNotFound)
	}

	events := make([]contracts.EventPlacement, 0)
	section.Find("a.player-event-item").Each(func(_ int, item *goquery.Selection) {
		year, ok := eventYear(item)
		if !ok {
			return
		}

		span := item.Find("span.ge-text-light").First()
		if span.Length() == 0 {
			return
		}

		parts := strings.Split(strings.TrimSpace(span.Text()), placementSep)
		name := strings.TrimSpace(item.Find(".text-of").First().Text())

		events = append(events, contracts.EventPlacement{
			Year:       year,
			Tournament: name + strings.TrimSpace(parts[0]),
			Placement:  strings.TrimSpace(parts[len(parts)-1]),
		})
	})

	return events, nil
}

// eventYear finds the div whose whole text is the event year
func eventYear(item *goquery.Selection) (int, bool) {
	year := 0
	found := false
	item.Find("div").EachWithBreak(func(_ int, div *goquery.Selection) bool {
		text := strings.TrimSpace(div.Text())
		if text == "" || strings.TrimLeft(text, "0123456789") != "" {
			return true
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			return true
		}
		year, found = n, true
		return false
	})
	return year, found
}
