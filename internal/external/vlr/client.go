package vlr

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/vctrank/internal/contracts"
	"github.com/wonny/vctrank/pkg/httputil"
	"github.com/wonny/vctrank/pkg/logger"
	"github.com/wonny/vctrank/pkg/redis"
)

// SiteHost is the host part every stored player_link starts with
const SiteHost = "www.vlr.gg"

const (
	DefaultBaseURL  = "https://" + SiteHost
	DefaultTimespan = "all"

	// DefaultAgentTableSelector addresses the per-agent stats table of a profile
	DefaultAgentTableSelector = "div.wf-card table.wf-table"
	// DefaultTeamLinkSelector addresses the current team entry of a profile
	DefaultTeamLinkSelector = "div.player-summary-container-1 a.wf-module-item[href^='/team/']"
	fallbackTeamLinkSelector = "a.wf-module-item[href^='/team/']"

	captainTitle = "Team Captain"
)

// Client handles communication with the stats site
// ⭐ SSOT: vlr.gg 페이지 요청은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	timespan   string

	agentTableSelector string
	teamLinkSelector   string

	cache    *redis.Cache
	cacheTTL time.Duration
}

// NewClient creates a new stats site client
func NewClient(httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient:         httpClient,
		logger:             log,
		baseURL:            DefaultBaseURL,
		timespan:           DefaultTimespan,
		agentTableSelector: DefaultAgentTableSelector,
		teamLinkSelector:   DefaultTeamLinkSelector,
	}
}

// WithBaseURL points the client at another origin (mirror or test server)
func (c *Client) WithBaseURL(baseURL string) *Client {
	if baseURL != "" {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
	return c
}

// WithTimespan sets the stats timespan query value
func (c *Client) WithTimespan(timespan string) *Client {
	if timespan != "" {
		c.timespan = timespan
	}
	return c
}

// WithSelectors overrides the structural selectors; empty values keep the defaults
func (c *Client) WithSelectors(agentTable, teamLink string) *Client {
	if agentTable != "" {
		c.agentTableSelector = agentTable
	}
	if teamLink != "" {
		c.teamLinkSelector = teamLink
	}
	return c
}

// WithPageCache caches page bodies in Redis for ttl
func (c *Client) WithPageCache(cache *redis.Cache, ttl time.Duration) *Client {
	c.cache = cache
	c.cacheTTL = ttl
	return c
}

// PageURL maps a stored link ("www.vlr.gg/player/9/tenz") or a site path
// ("/team/2/sentinels") onto the configured origin
func (c *Client) PageURL(link string) string {
	path := strings.TrimPrefix(strings.TrimPrefix(link, "https://"), "http://")
	if !strings.HasPrefix(path, "/") {
		if i := strings.Index(path, "/"); i >= 0 {
			path = path[i:]
		} else {
			path = "/"
		}
	}
	return c.baseURL + path
}

// LinkFromHref converts a site href into the stored player_link form
func LinkFromHref(href string) string {
	href = strings.TrimPrefix(strings.TrimPrefix(href, "https://"), "http://")
	if strings.HasPrefix(href, "/") {
		return SiteHost + href
	}
	return href
}

// Fetch loads url and returns the elements matching selector.
// An empty match is contracts.ErrNotFound; transport failures are *contracts.FetchError.
func (c *Client) Fetch(ctx context.Context, url, selector string) (*goquery.Selection, error) {
	doc, err := c.fetchDocument(ctx, url)
	if err != nil {
		return nil, err
	}

	sel := doc.Find(selector)
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%s on %s: %w", selector, url, contracts.ErrNotFound)
	}
	return sel, nil
}

// fetchDocument fetches and parses a page, going through the page cache if set
func (c *Client) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	body, cached := c.cachedPage(ctx, url)

	if !cached {
		raw, err := c.httpClient.GetBody(ctx, url)
		if err != nil {
			return nil, &contracts.FetchError{URL: url, Err: err}
		}
		body = raw

		if c.cache != nil {
			if err := c.cache.Set(ctx, url, body, c.cacheTTL); err != nil {
				c.logger.WithError(err).WithField("url", url).Debug("Page cache write failed")
			}
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &contracts.FetchError{URL: url, Err: fmt.Errorf("parse html: %w", err)}
	}
	return doc, nil
}

// cachedPage reads the page cache; read failures fall back to the network
func (c *Client) cachedPage(ctx context.Context, url string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	body, found, err := c.cache.Get(ctx, url)
	if err != nil {
		c.logger.WithError(err).WithField("url", url).Debug("Page cache read failed")
		return nil, false
	}
	return body, found
}
