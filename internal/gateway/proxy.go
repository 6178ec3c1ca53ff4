package gateway

import (
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/ordersuite/order-system/internal/api/metrics"
	"github.com/ordersuite/order-system/internal/core/domain"
)

// upstreamBudget bounds the whole proxy exchange. Exceeding it is an
// upstream failure reported to the caller; the request is never retried.
const upstreamBudget = 10 * time.Second

func newProxy(target string, targetURL *url.URL, rewrite map[string]string, log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.ProxyWithConfig(echomiddleware.ProxyConfig{
		Balancer: echomiddleware.NewRoundRobinBalancer([]*echomiddleware.ProxyTarget{
			{URL: targetURL},
		}),
		Rewrite:   rewrite,
		Transport: newProxyTransport(),
		ErrorHandler: func(c echo.Context, err error) error {
			metrics.GatewayProxyTotal.WithLabelValues(target, "upstream_error").Inc()
			log.Error().Err(err).
				Str("target", target).
				Str("path", c.Request().URL.Path).
				Msg("proxy upstream failure")
			return domain.ErrUnavailable
		},
		ModifyResponse: func(*http.Response) error {
			metrics.GatewayProxyTotal.WithLabelValues(target, "forwarded").Inc()
			return nil
		},
	})
}

func newProxyTransport() *http.Transport {
	return &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: upstreamBudget,
		}).DialContext,
		ResponseHeaderTimeout: upstreamBudget,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConnsPerHost:   32,
	}
}
