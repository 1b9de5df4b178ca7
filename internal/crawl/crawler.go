// Package crawl fetches the official program pages and writes their visible
// text to the corpus directory as plain-text files, one file per page. The
// indexer picks the files up from there; crawling and indexing stay separate
// so either can be rerun alone.
package crawl

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

// Config controls a crawl run.
type Config struct {
	// StartURL is the page the crawl begins from.
	StartURL string

	// AllowedDomain restricts the crawl to one host. Empty means no
	// restriction, which is only sensible in tests.
	AllowedDomain string

	// MaxDepth limits link-following depth from the start page.
	MaxDepth int

	// Delay is the pause between requests to the same host.
	Delay time.Duration

	// OutDir is the corpus directory the page files are written to.
	OutDir string
}

// Result summarizes a crawl run.
type Result struct {
	PagesSaved  int
	PagesFailed int
	Duration    time.Duration
}

// Crawler walks program pages and persists their text.
type Crawler struct {
	cfg    Config
	logger *slog.Logger
}

// NewCrawler creates a Crawler.
func NewCrawler(cfg Config, logger *slog.Logger) *Crawler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Crawler{cfg: cfg, logger: logger}
}

// Run crawls from StartURL and writes one .txt file per visited page. Pages
// that fail to fetch or save are counted, not fatal; Run only errors when
// the output directory cannot be created or the start URL is rejected.
func (c *Crawler) Run() (Result, error) {
	start := time.Now()

	if err := os.MkdirAll(c.cfg.OutDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create corpus dir: %w", err)
	}

	opts := []colly.CollectorOption{}
	if c.cfg.AllowedDomain != "" {
		opts = append(opts, colly.AllowedDomains(c.cfg.AllowedDomain))
	}
	if c.cfg.MaxDepth > 0 {
		opts = append(opts, colly.MaxDepth(c.cfg.MaxDepth))
	}
	collector := colly.NewCollector(opts...)

	if c.cfg.Delay > 0 {
		if err := collector.Limit(&colly.LimitRule{DomainGlob: "*", Delay: c.cfg.Delay}); err != nil {
			return Result{}, fmt.Errorf("set rate limit: %w", err)
		}
	}

	var (
		mu     sync.Mutex
		result Result
	)

	collector.OnHTML("a[href]", func(e *colly.HTMLElement) {
		link := e.Request.AbsoluteURL(e.Attr("href"))
		if link == "" {
			return
		}
		// Errors here are routine: off-domain, already visited, too deep.
		_ = e.Request.Visit(link)
	})

	collector.OnHTML("html", func(e *colly.HTMLElement) {
		text := ExtractText(e.DOM)
		if text == "" {
			return
		}

		name := PageFileName(e.Request.URL)
		path := filepath.Join(c.cfg.OutDir, name)
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			c.logger.Warn("failed to save page", "url", e.Request.URL.String(), "error", err)
			mu.Lock()
			result.PagesFailed++
			mu.Unlock()
			return
		}

		c.logger.Debug("saved page", "url", e.Request.URL.String(), "file", name)
		mu.Lock()
		result.PagesSaved++
		mu.Unlock()
	})

	collector.OnError(func(r *colly.Response, err error) {
		c.logger.Warn("fetch failed", "url", r.Request.URL.String(), "error", err)
		mu.Lock()
		result.PagesFailed++
		mu.Unlock()
	})

	if err := collector.Visit(c.cfg.StartURL); err != nil {
		return Result{}, fmt.Errorf("visit start url: %w", err)
	}
	collector.Wait()

	result.Duration = time.Since(start)
	c.logger.Info("crawl finished",
		"saved", result.PagesSaved,
		"failed", result.PagesFailed,
		"duration", result.Duration)
	return result, nil
}

var (
	spaceRE   = regexp.MustCompile(`[ \t]+`)
	newlineRE = regexp.MustCompile(`\n{3,}`)
	slugRE    = regexp.MustCompile(`[^a-z0-9]+`)
)

// ExtractText returns the visible text of a page with chrome elements
// (scripts, navigation, header, footer) removed and whitespace collapsed.
func ExtractText(sel *goquery.Selection) string {
	doc := sel.Clone()
	doc.Find("script, style, noscript, nav, header, footer, iframe").Remove()

	var b strings.Builder
	doc.Find("h1, h2, h3, h4, p, li, td, th").Each(func(_ int, s *goquery.Selection) {
		line := strings.TrimSpace(spaceRE.ReplaceAllString(s.Text(), " "))
		if line == "" {
			return
		}
		b.WriteString(line)
		b.WriteString("\n")
	})

	text := newlineRE.ReplaceAllString(b.String(), "\n\n")
	return strings.TrimSpace(text)
}

// PageFileName derives a stable .txt file name from a page URL, so
// re-crawling overwrites each page's file in place.
func PageFileName(u *url.URL) string {
	slug := strings.ToLower(strings.Trim(u.Path, "/"))
	slug = slugRE.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "index"
	}
	return slug + ".txt"
}
