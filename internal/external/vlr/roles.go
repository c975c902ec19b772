package vlr

import (
	"context"
	"fmt"
	"strings"

	"github.com/wonny/vctrank/internal/contracts"
)

// FetchTeamLink returns the href of the player's current team ("/team/2/sentinels")
func (c *Client) FetchTeamLink(ctx context.Context, playerLink string) (string, error) {
	url := c.PageURL(playerLink)

	doc, err := c.fetchDocument(ctx, url)
	if err != nil {
		return "", err
	}

	for _, selector := range []string{c.teamLinkSelector, fallbackTeamLinkSelector} {
		if href, ok := doc.Find(selector).First().Attr("href"); ok && strings.TrimSpace(href) != "" {
			return strings.TrimSpace(href), nil
		}
	}
	return "", fmt.Errorf("team link of %s: %w", playerLink, contracts.ErrNotFound)
}

// FetchCaptainLink returns the href of the link enclosing the element
// titled "Team Captain" on a team page
func (c *Client) FetchCaptainLink(ctx context.Context, teamHref string) (string, error) {
	url := c.PageURL(teamHref)

	marker, err := c.Fetch(ctx, url, fmt.Sprintf("[title=%q]", captainTitle))
	if err != nil {
		return "", err
	}

	href, ok := marker.First().ParentsFiltered("a").First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", fmt.Errorf("captain link on %s: %w", url, contracts.ErrNotFound)
	}
	return strings.TrimSpace(href), nil
}
