package middleware

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "findora_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "findora_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "findora_http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	httpResponseSize = promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "findora_http_response_size_bytes",
			Help:       "HTTP response size in bytes",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"method", "path"},
	)

	placesCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "findora_places_cache_hits_total",
			Help: "Total number of place searches served from the cache",
		},
	)

	placesUpstreamCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "findora_places_upstream_calls_total",
			Help: "Total number of upstream provider calls",
		},
		[]string{"provider"},
	)
)

// RecordCacheHit counts a place search served without an upstream call.
func RecordCacheHit() {
	placesCacheHits.Inc()
}

// RecordUpstreamCall counts a fetch against the named places provider.
func RecordUpstreamCall(provider string) {
	placesUpstreamCalls.WithLabelValues(provider).Inc()
}

// PrometheusMiddleware records request count, latency and response size
// per route.
func PrometheusMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if strings.Contains(path, "/metrics") || strings.Contains(path, "/healthz") {
			return c.Next()
		}

		start := time.Now()

		httpActiveConnections.Inc()
		defer httpActiveConnections.Dec()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		method := c.Method()
		routePath := c.Route().Path
		if routePath == "" {
			routePath = path
		}

		respSize := float64(len(c.Response().Body()))

		httpRequestsTotal.WithLabelValues(method, routePath, status).Inc()
		httpRequestDuration.WithLabelValues(method, routePath).Observe(duration)
		httpResponseSize.WithLabelValues(method, routePath).Observe(respSize)

		return err
	}
}

// PrometheusHandler serves the metrics scrape endpoint.
func PrometheusHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// InternalOnly restricts a route to private-network clients.
func InternalOnly() fiber.Handler {
	allowedCIDRs := []string{
		"127.0.0.0/8",
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"::1/128",
		"fc00::/7",
	}

	var allowedNets []*net.IPNet
	for _, cidr := range allowedCIDRs {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err == nil {
			allowedNets = append(allowedNets, ipNet)
		}
	}

	return func(c *fiber.Ctx) error {
		clientIP := c.IP()
		if realIP := c.Get("X-Real-IP"); realIP != "" {
			clientIP = realIP
		}

		ip := net.ParseIP(clientIP)
		if ip == nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Invalid IP address",
			})
		}

		for _, ipNet := range allowedNets {
			if ipNet.Contains(ip) {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Access denied. Internal network only.",
		})
	}
}
