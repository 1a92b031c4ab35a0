package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"market-trend-analyzer/internal/logger"
	"market-trend-analyzer/internal/types"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Scraper collects financial headlines from multiple sources
type Scraper struct {
	sources []Source
	timeout time.Duration
}

// Source defines one news source
type Source struct {
	Name       string
	BaseURL    string
	SearchPath string // "{symbol}" is replaced with the ticker
	Selectors  ArticleSelectors
	RateLimit  time.Duration
}

// ArticleSelectors defines CSS selectors for extracting article data
type ArticleSelectors struct {
	ArticleContainer string
	Title            string
	URL              string
	Content          string
	PublishedAt      string
}

// NewScraper creates a scraper with the default sources
func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{
		sources: defaultSources(),
		timeout: timeout,
	}
}

func defaultSources() []Source {
	return []Source{
		{
			Name:       "YahooFinance",
			BaseURL:    "https://finance.yahoo.com",
			SearchPath: "/quote/{symbol}/news",
			Selectors: ArticleSelectors{
				ArticleContainer: "li.stream-item",
				Title:            "h3",
				URL:              "a",
				Content:          "p",
				PublishedAt:      "div.publishing",
			},
			RateLimit: 2 * time.Second,
		},
		{
			Name:       "MarketWatch",
			BaseURL:    "https://www.marketwatch.com",
			SearchPath: "/investing/stock/{symbol}",
			Selectors: ArticleSelectors{
				ArticleContainer: "div.article__content",
				Title:            "a.link",
				URL:              "a.link",
				Content:          "p.article__summary",
				PublishedAt:      "span.article__timestamp",
			},
			RateLimit: 2 * time.Second,
		},
	}
}

// Scrape fetches up to maxArticles headlines for a ticker across all
// sources. Per-source failures are logged and skipped.
func (s *Scraper) Scrape(ctx context.Context, symbol string, maxArticles int) ([]types.NewsArticle, error) {
	logger.Debug(ctx, "Starting headline scrape", "symbol", symbol, "sources", len(s.sources))

	perSource := maxArticles / len(s.sources)
	if perSource < 1 {
		perSource = 1
	}

	var all []types.NewsArticle
	for _, source := range s.sources {
		articles, err := s.scrapeSource(ctx, source, symbol, perSource)
		if err != nil {
			logger.Warn(ctx, "Failed to scrape source", "source", source.Name, "symbol", symbol, "error", err)
			continue
		}
		all = append(all, articles...)
		time.Sleep(source.RateLimit)
	}

	logger.Debug(ctx, "Headline scrape completed", "symbol", symbol, "articles", len(all))
	return all, nil
}

func (s *Scraper) scrapeSource(ctx context.Context, source Source, symbol string, maxArticles int) ([]types.NewsArticle, error) {
	var articles []types.NewsArticle

	c := colly.NewCollector(
		colly.AllowedDomains(hostOf(source.BaseURL)),
		colly.MaxDepth(1),
		colly.Async(false),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", userAgent)
	})

	c.OnHTML(source.Selectors.ArticleContainer, func(e *colly.HTMLElement) {
		if len(articles) >= maxArticles {
			return
		}

		title := strings.TrimSpace(e.ChildText(source.Selectors.Title))
		if title == "" {
			return
		}

		articleURL := e.ChildAttr(source.Selectors.URL, "href")
		if articleURL != "" && !strings.HasPrefix(articleURL, "http") {
			articleURL = source.BaseURL + articleURL
		}

		articles = append(articles, types.NewsArticle{
			Title:       title,
			URL:         articleURL,
			Content:     strings.TrimSpace(e.ChildText(source.Selectors.Content)),
			Source:      source.Name,
			PublishedAt: strings.TrimSpace(e.ChildText(source.Selectors.PublishedAt)),
			Symbol:      symbol,
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.Debug(ctx, "Scraping error", "source", source.Name, "url", r.Request.URL.String(), "error", err)
	})

	if err := c.Visit(searchURL(source, symbol)); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", source.Name, err)
	}
	c.Wait()

	return s.enrich(ctx, articles), nil
}

// searchURL builds the per-ticker listing URL for a source.
func searchURL(source Source, symbol string) string {
	return source.BaseURL + strings.ReplaceAll(source.SearchPath, "{symbol}", strings.ToUpper(symbol))
}

// enrich fetches the article page for entries whose summary came back
// empty, extracting the first paragraphs with goquery.
func (s *Scraper) enrich(ctx context.Context, articles []types.NewsArticle) []types.NewsArticle {
	for i := range articles {
		if len(articles[i].Content) >= 100 || articles[i].URL == "" {
			continue
		}
		if body := s.fetchArticleBody(ctx, articles[i].URL); body != "" {
			articles[i].Content = body
		}
	}
	return articles
}

func (s *Scraper) fetchArticleBody(ctx context.Context, articleURL string) string {
	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, articleURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return ""
	}

	var b strings.Builder
	doc.Find("article p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		b.WriteString(strings.TrimSpace(sel.Text()))
		b.WriteString(" ")
		return b.Len() < 500
	})
	return strings.TrimSpace(b.String())
}

func hostOf(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	return u.Host
}
