package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"trendwatch/internal/logger"
	"trendwatch/internal/ratelimit"
	"trendwatch/internal/retry"
	"trendwatch/internal/trend"
)

// RSSCollector pulls one feed via gofeed. Every item starts with the
// source's configured weight as its base score.
type RSSCollector struct {
	source  RSSSource
	parser  *gofeed.Parser
	limiter *ratelimit.Limiter
	retry   retry.Config
	timeout time.Duration
}

func NewRSSCollector(src RSSSource, limiter *ratelimit.Limiter, retryCfg retry.Config, timeout time.Duration) *RSSCollector {
	return &RSSCollector{
		source:  src,
		parser:  gofeed.NewParser(),
		limiter: limiter,
		retry:   retryCfg,
		timeout: timeout,
	}
}

func (c *RSSCollector) Name() string {
	return c.source.Name
}

func (c *RSSCollector) Collect(ctx context.Context) ([]trend.RawItem, error) {
	if err := c.limiter.Wait(c.source.URL); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var feed *gofeed.Feed
	err := retry.WithRetry(ctx, c.retry, func() error {
		f, err := c.parser.ParseURLWithContext(c.source.URL, ctx)
		if err != nil {
			return err
		}
		feed = f
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", c.source.URL, err)
	}

	items := make([]trend.RawItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		title := strings.TrimSpace(it.Title)
		if title == "" {
			continue
		}
		items = append(items, trend.RawItem{
			Title:       title,
			Source:      c.source.Name,
			URL:         it.Link,
			Description: strings.TrimSpace(it.Description),
			BaseScore:   c.source.Weight,
			Timestamp:   it.PublishedParsed,
		})
	}
	logger.Debug("feed parsed", "source", c.source.Name, "items", len(items))
	return items, nil
}
