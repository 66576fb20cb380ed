// Package weatherapi fetches point-in-time conditions from OpenWeatherMap.
// Snapshots are decorative metadata on a catch, so every failure mode here
// must stay cheap: the circuit breaker and client-side rate limit shed load
// long before the provider does.
package weatherapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/weather"
	"github.com/astorrey/TackleHogs/internal/platform/logging"
	"github.com/astorrey/TackleHogs/internal/platform/resilience"
	"github.com/astorrey/TackleHogs/internal/usecase"
	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL     = "https://api.openweathermap.org/data/2.5"
	defaultTimeout     = 5 * time.Second
	defaultRateLimit   = 50
	maxResponseBody    = 1 << 20
	retryableAttempts  = 2
	retryBackoffPeriod = 300 * time.Millisecond
)

var errWeatherTransient = crerr.New("weather provider transient failure")

type ClientConfig struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	RatePerSecond  int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	apiKey         string
	logger         *logging.Logger
	limiter        *rate.Limiter
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	ratePerSecond := cfg.RatePerSecond
	if ratePerSecond <= 0 {
		ratePerSecond = defaultRateLimit
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		logger:         logger,
		limiter:        rate.NewLimiter(rate.Limit(ratePerSecond), ratePerSecond),
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// Current returns conditions at the given coordinates. Units are imperial
// to match the rest of the catch record.
func (c *Client) Current(ctx context.Context, latitude, longitude float64) (weather.Data, error) {
	if c.apiKey == "" {
		return weather.Data{}, fmt.Errorf("%w: weather provider api key is not configured", usecase.ErrDependencyUnavailable)
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "weather circuit breaker rejected request", "state", c.breaker.State())
			return weather.Data{}, fmt.Errorf("%w: weather provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return weather.Data{}, fmt.Errorf("weather rate limit wait: %w", err)
	}

	fullURL := c.baseURL + "/weather" +
		"?lat=" + strconv.FormatFloat(latitude, 'f', 4, 64) +
		"&lon=" + strconv.FormatFloat(longitude, 'f', 4, 64) +
		"&units=imperial&appid=" + c.apiKey

	raw, err := c.executeRequest(ctx, fullURL)
	if c.circuitEnabled {
		if err != nil && stderrors.Is(err, errWeatherTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return weather.Data{}, err
	}

	var envelope currentEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return weather.Data{}, fmt.Errorf("decode weather payload: %w", err)
	}

	return mapCurrent(envelope), nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= retryableAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, retryable, err := c.doOnce(fullURL)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !retryable {
			return nil, lastErr
		}

		if attempt == retryableAttempts {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * retryBackoffPeriod)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "weather request failed", "url", redactAPIKey(fullURL), "error", lastErr)
	return nil, lastErr
}

func (c *Client) doOnce(fullURL string) ([]byte, bool, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("accept", "application/json")

	if err := c.httpClient.Do(req, resp); err != nil {
		return nil, true, fmt.Errorf("%w: send request: %v", errWeatherTransient, err)
	}

	status := resp.StatusCode()
	body := resp.Body()
	if len(body) > maxResponseBody {
		body = body[:maxResponseBody]
	}

	if status >= 200 && status < 300 {
		return append([]byte(nil), body...), false, nil
	}
	if isRetryableStatus(status) {
		return nil, true, fmt.Errorf("%w: provider status=%d body=%s", errWeatherTransient, status, abbreviateBody(body))
	}
	return nil, false, fmt.Errorf("provider status=%d body=%s", status, abbreviateBody(body))
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusRequestTimeout ||
		status == fasthttp.StatusTooManyRequests ||
		status >= fasthttp.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(raw))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "...(truncated)"
}

func redactAPIKey(fullURL string) string {
	idx := strings.Index(fullURL, "appid=")
	if idx < 0 {
		return fullURL
	}
	return fullURL[:idx] + "appid=REDACTED"
}

type currentEnvelope struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Pressure float64 `json:"pressure"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
}

func mapCurrent(envelope currentEnvelope) weather.Data {
	out := weather.Data{
		Temperature:   envelope.Main.Temp,
		Pressure:      envelope.Main.Pressure,
		Humidity:      envelope.Main.Humidity,
		WindSpeed:     envelope.Wind.Speed,
		WindDirection: envelope.Wind.Deg,
	}
	if len(envelope.Weather) > 0 {
		out.Conditions = envelope.Weather[0].Main
		out.Description = envelope.Weather[0].Description
		out.Icon = envelope.Weather[0].Icon
	}
	return out
}
