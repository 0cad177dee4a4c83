package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"trendwatch/internal/cache"
	"trendwatch/internal/logger"
	"trendwatch/internal/ratelimit"
	"trendwatch/internal/retry"
	"trendwatch/internal/trend"
)

// HTMLCollector scrapes headlines off a listing page with per-source CSS
// selectors. Scraped items carry no timestamp, so the freshness gate counts
// them as stale.
type HTMLCollector struct {
	source  HTMLSource
	client  *http.Client
	pages   *cache.Cache
	limiter *ratelimit.Limiter
	retry   retry.Config
}

func NewHTMLCollector(src HTMLSource, limiter *ratelimit.Limiter, pages *cache.Cache, retryCfg retry.Config, timeout time.Duration) *HTMLCollector {
	return &HTMLCollector{
		source:  src,
		client:  &http.Client{Timeout: timeout},
		pages:   pages,
		limiter: limiter,
		retry:   retryCfg,
	}
}

func (c *HTMLCollector) Name() string {
	return c.source.Name
}

func (c *HTMLCollector) Collect(ctx context.Context) ([]trend.RawItem, error) {
	body, err := c.fetch(ctx, c.source.URL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", c.source.URL, err)
	}

	base, err := url.Parse(c.source.URL)
	if err != nil {
		return nil, fmt.Errorf("parse source url %s: %w", c.source.URL, err)
	}

	var items []trend.RawItem
	doc.Find(c.source.ItemSelector).Each(func(_ int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Find(c.source.TitleSelector).First().Text())
		if title == "" {
			return
		}

		link := ""
		if href, ok := sel.Find(c.source.LinkSelector).First().Attr("href"); ok {
			link = resolveLink(base, href)
		}

		items = append(items, trend.RawItem{
			Title:     title,
			Source:    c.source.Name,
			URL:       link,
			BaseScore: c.source.Weight,
		})
	})

	logger.Debug("page scraped", "source", c.source.Name, "items", len(items))
	return items, nil
}

// fetch downloads a page once per run; later collectors pointed at the same
// URL hit the shared cache.
func (c *HTMLCollector) fetch(ctx context.Context, pageURL string) (string, error) {
	if body, ok := c.pages.Get(pageURL); ok {
		return body, nil
	}

	if err := c.limiter.Wait(pageURL); err != nil {
		return "", err
	}

	var body string
	err := retry.WithRetry(ctx, c.retry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return err
		}
		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("HTTP %d", resp.StatusCode)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		body = string(data)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}

	c.pages.Set(pageURL, body, pageCacheTTL)
	return body, nil
}

func resolveLink(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
