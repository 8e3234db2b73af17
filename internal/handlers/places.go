package handlers

import (
	"strconv"
	"strings"

	"github.com/MOSHEDORA/FinDora/internal/config"
	"github.com/MOSHEDORA/FinDora/internal/middleware"
	"github.com/MOSHEDORA/FinDora/internal/ranker"
	"github.com/MOSHEDORA/FinDora/internal/services"
	"github.com/gofiber/fiber/v2"
)

const defaultSearchRadius = 2000

type PlacesHandler struct {
	service *services.PlacesService
}

func NewPlacesHandler(service *services.PlacesService) *PlacesHandler {
	return &PlacesHandler{service: service}
}

func SetupPlacesRoutes(router fiber.Router, service *services.PlacesService, cfg *config.Config) {
	h := NewPlacesHandler(service)

	router.Get("/nearby", middleware.AuthRequired(cfg), h.Nearby)
	router.Get("/search", middleware.AuthRequired(cfg), h.Search)
}

// Nearby serves GET /places/nearby. Ranking params are applied after the
// cache so every caller shares one cached entry per upstream query.
func (h *PlacesHandler) Nearby(c *fiber.Ctx) error {
	latStr := c.Query("lat")
	lngStr := c.Query("lng")
	if latStr == "" || lngStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Latitude and longitude are required",
		})
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid latitude"})
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid longitude"})
	}

	radius := c.QueryInt("radius", defaultSearchRadius)
	placeType := c.Query("type")

	found, err := h.service.Nearby(c.UserContext(), lat, lng, radius, placeType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "Failed to fetch places",
			Details: err.Error(),
		})
	}

	ranked := ranker.Rank(found, filtersFromQuery(c), c.Query("sort"), &ranker.Location{Lat: lat, Lng: lng})

	return c.JSON(fiber.Map{"places": ranked})
}

// Search serves GET /places/search. lat/lng are an optional bias point.
func (h *PlacesHandler) Search(c *fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Search query is required",
		})
	}

	var lat, lng *float64
	if latStr := c.Query("lat"); latStr != "" {
		v, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid latitude"})
		}
		lat = &v
	}
	if lngStr := c.Query("lng"); lngStr != "" {
		v, err := strconv.ParseFloat(lngStr, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid longitude"})
		}
		lng = &v
	}

	found, err := h.service.TextSearch(c.UserContext(), query, lat, lng)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "Failed to search places",
			Details: err.Error(),
		})
	}

	var ref *ranker.Location
	if lat != nil && lng != nil {
		ref = &ranker.Location{Lat: *lat, Lng: *lng}
	}
	ranked := ranker.Rank(found, filtersFromQuery(c), c.Query("sort"), ref)

	return c.JSON(fiber.Map{"places": ranked})
}

// filtersFromQuery reads the optional ranking filters. price_levels is a
// comma-separated list of integers; malformed entries are skipped.
func filtersFromQuery(c *fiber.Ctx) ranker.Filters {
	filters := ranker.Filters{
		Category: c.Query("category"),
	}

	if raw := c.Query("min_rating"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MinRating = v
		}
	}

	if raw := c.Query("price_levels"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if v, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				filters.PriceLevels = append(filters.PriceLevels, v)
			}
		}
	}

	return filters
}
