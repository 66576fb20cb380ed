// Package scraper pulls product attributes off retailer pages so anglers
// can add gear by pasting a link. It reads structured data only, JSON-LD
// first and OpenGraph tags as a fallback; there is no DOM walking.
package scraper

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/tackle"
	"github.com/astorrey/TackleHogs/internal/platform/logging"
	sonic "github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"
)

const (
	defaultTimeout  = 10 * time.Second
	maxResponseBody = 4 << 20
	userAgent       = "TackleHogs/1.0 (+https://tacklehogs.app)"
)

var (
	jsonLDRegex = regexp.MustCompile(`(?is)<script[^>]+type\s*=\s*["']application/ld\+json["'][^>]*>(.*?)</script>`)
	metaRegex   = regexp.MustCompile(`(?is)<meta[^>]+>`)
	attrRegex   = regexp.MustCompile(`(?is)(property|name|content)\s*=\s*["']([^"']*)["']`)
)

type Config struct {
	Timeout time.Duration
	Logger  *logging.Logger
}

type Scraper struct {
	httpClient *fasthttp.Client
	logger     *logging.Logger
}

func New(cfg Config) *Scraper {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Scraper{
		httpClient: &fasthttp.Client{
			ReadTimeout:              timeout,
			WriteTimeout:             timeout,
			MaxResponseBodySize:      maxResponseBody,
			NoDefaultUserAgentHeader: true,
		},
		logger: logger,
	}
}

func (s *Scraper) Scrape(ctx context.Context, pageURL string) (tackle.ScrapedItem, error) {
	if err := ctx.Err(); err != nil {
		return tackle.ScrapedItem{}, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(pageURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(userAgent)
	req.Header.Set("accept", "text/html")

	if err := s.httpClient.Do(req, resp); err != nil {
		return tackle.ScrapedItem{}, fmt.Errorf("fetch product page: %w", err)
	}
	if status := resp.StatusCode(); status < 200 || status >= 300 {
		return tackle.ScrapedItem{}, fmt.Errorf("fetch product page: status=%d", status)
	}

	page := string(resp.Body())

	item, found := parseJSONLD(page)
	if !found {
		item = parseOpenGraph(page)
	}

	if item.Name == "" && item.Description == "" && item.ImageURL == "" {
		return tackle.ScrapedItem{}, fmt.Errorf("no product metadata found on page")
	}
	return item, nil
}

type jsonLDProduct struct {
	Type        any    `json:"@type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       any    `json:"image"`
	Brand       any    `json:"brand"`
	Model       string `json:"model"`
	Offers      any    `json:"offers"`

	AdditionalProperty []struct {
		Name  string `json:"name"`
		Value any    `json:"value"`
	} `json:"additionalProperty"`
}

func parseJSONLD(page string) (tackle.ScrapedItem, bool) {
	for _, match := range jsonLDRegex.FindAllStringSubmatch(page, -1) {
		raw := strings.TrimSpace(match[1])
		if raw == "" {
			continue
		}

		for _, candidate := range expandJSONLDNodes(raw) {
			var product jsonLDProduct
			if err := sonic.Unmarshal(candidate, &product); err != nil {
				continue
			}
			if !isProductType(product.Type) {
				continue
			}

			item := tackle.ScrapedItem{
				Name:        html.UnescapeString(strings.TrimSpace(product.Name)),
				Description: html.UnescapeString(strings.TrimSpace(product.Description)),
				Brand:       extractBrand(product.Brand),
				Model:       strings.TrimSpace(product.Model),
				ImageURL:    extractImage(product.Image),
				Price:       extractPrice(product.Offers),
			}
			if len(product.AdditionalProperty) > 0 {
				specs := make(map[string]string, len(product.AdditionalProperty))
				for _, prop := range product.AdditionalProperty {
					key := strings.TrimSpace(prop.Name)
					value := strings.TrimSpace(anyToString(prop.Value))
					if key == "" || value == "" {
						continue
					}
					specs[key] = value
				}
				if len(specs) > 0 {
					item.Specifications = specs
				}
			}
			if item.Name != "" {
				return item, true
			}
		}
	}
	return tackle.ScrapedItem{}, false
}

// expandJSONLDNodes flattens top-level arrays and @graph containers into
// individual candidate nodes.
func expandJSONLDNodes(raw string) [][]byte {
	var nodes []any
	if strings.HasPrefix(raw, "[") {
		if err := sonic.UnmarshalString(raw, &nodes); err != nil {
			return nil
		}
	} else {
		var node map[string]any
		if err := sonic.UnmarshalString(raw, &node); err != nil {
			return nil
		}
		if graph, ok := node["@graph"].([]any); ok {
			nodes = graph
		} else {
			nodes = []any{node}
		}
	}

	out := make([][]byte, 0, len(nodes))
	for _, node := range nodes {
		encoded, err := sonic.Marshal(node)
		if err != nil {
			continue
		}
		out = append(out, encoded)
	}
	return out
}

func isProductType(value any) bool {
	switch typed := value.(type) {
	case string:
		return strings.EqualFold(strings.TrimSpace(typed), "Product")
	case []any:
		for _, item := range typed {
			if text, ok := item.(string); ok && strings.EqualFold(strings.TrimSpace(text), "Product") {
				return true
			}
		}
	}
	return false
}

func extractBrand(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case map[string]any:
		if name, ok := typed["name"].(string); ok {
			return strings.TrimSpace(name)
		}
	}
	return ""
}

func extractImage(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case []any:
		for _, item := range typed {
			if text, ok := item.(string); ok && strings.TrimSpace(text) != "" {
				return strings.TrimSpace(text)
			}
		}
	case map[string]any:
		if url, ok := typed["url"].(string); ok {
			return strings.TrimSpace(url)
		}
	}
	return ""
}

func extractPrice(value any) *float64 {
	switch typed := value.(type) {
	case map[string]any:
		if price := parsePriceValue(typed["price"]); price != nil {
			return price
		}
		if spec, ok := typed["priceSpecification"].(map[string]any); ok {
			return parsePriceValue(spec["price"])
		}
		if low := parsePriceValue(typed["lowPrice"]); low != nil {
			return low
		}
	case []any:
		for _, item := range typed {
			if price := extractPrice(item); price != nil {
				return price
			}
		}
	}
	return nil
}

func parsePriceValue(value any) *float64 {
	switch typed := value.(type) {
	case float64:
		if typed >= 0 {
			return &typed
		}
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(typed, "$", ""))
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err == nil && parsed >= 0 {
			return &parsed
		}
	}
	return nil
}

func anyToString(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return ""
	}
}

func parseOpenGraph(page string) tackle.ScrapedItem {
	var item tackle.ScrapedItem
	for _, tag := range metaRegex.FindAllString(page, -1) {
		var key, content string
		for _, attr := range attrRegex.FindAllStringSubmatch(tag, -1) {
			switch strings.ToLower(attr[1]) {
			case "property", "name":
				if key == "" {
					key = strings.ToLower(strings.TrimSpace(attr[2]))
				}
			case "content":
				content = html.UnescapeString(strings.TrimSpace(attr[2]))
			}
		}
		if key == "" || content == "" {
			continue
		}

		switch key {
		case "og:title":
			if item.Name == "" {
				item.Name = content
			}
		case "og:description", "description":
			if item.Description == "" {
				item.Description = content
			}
		case "og:image":
			if item.ImageURL == "" {
				item.ImageURL = content
			}
		case "og:brand", "product:brand":
			if item.Brand == "" {
				item.Brand = content
			}
		case "product:price:amount", "og:price:amount":
			if item.Price == nil {
				item.Price = parsePriceValue(content)
			}
		}
	}
	return item
}
