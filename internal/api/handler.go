package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"benetrip/internal/places"
	"benetrip/internal/redirect"
	"benetrip/internal/search"
	"benetrip/pkg/logger"
)

type Handler struct {
	searchSvc *search.Service
	resolver  *redirect.Resolver
	placesSvc *places.Service
	logger    logger.Client
}

func NewHandler(searchSvc *search.Service, resolver *redirect.Resolver, placesSvc *places.Service, log logger.Client) *Handler {
	return &Handler{
		searchSvc: searchSvc,
		resolver:  resolver,
		placesSvc: placesSvc,
		logger:    log,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/v1/flights/search", h.StartSearchHandler)
	router.GET("/v1/flights/search/:search_id/results", h.ResultsHandler)
	router.POST("/v1/flights/redirect", h.RedirectHandler)
	router.GET("/v1/places", h.PlacesHandler)
	router.GET("/health", h.HealthHandler)
}

// StartSearchHandler godoc
// @Summary      Start a flight search
// @Description  Validate the request and open a search session with the flight partner
// @Tags         flights
// @Accept       json
// @Produce      json
// @Param        request body search.SearchRequest true "Search Criteria"
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Failure      422 {object} map[string]string
// @Failure      502 {object} map[string]string
// @Router       /v1/flights/search [post]
func (h *Handler) StartSearchHandler(c *gin.Context) {
	var req search.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	searchID, err := h.searchSvc.StartSearch(c.Request.Context(), req)
	if err != nil {
		var validationErr *search.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validationErr.Error()})
			return
		}
		h.logger.Error("search initiation failed", logger.Field{Key: "err", Value: err})
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not start flight search"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"search_id": searchID})
}

// ResultsHandler godoc
// @Summary      Fetch flight search results
// @Description  Poll the partner until proposals arrive or the attempt budget runs out
// @Tags         flights
// @Produce      json
// @Param        search_id path string true "Search Handle"
// @Success      200 {object} search.SearchResult
// @Failure      400 {object} map[string]string
// @Failure      502 {object} map[string]string
// @Router       /v1/flights/search/{search_id}/results [get]
func (h *Handler) ResultsHandler(c *gin.Context) {
	searchID := c.Param("search_id")
	if searchID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "search_id is required"})
		return
	}

	result, err := h.searchSvc.WaitForResults(c.Request.Context(), searchID, func(p search.Progress) {
		h.logger.Debug("search progress",
			logger.Field{Key: "search_id", Value: searchID},
			logger.Field{Key: "attempt", Value: p.Attempt},
			logger.Field{Key: "percent", Value: p.Percent},
			logger.Field{Key: "status", Value: p.Status},
		)
	})
	if err != nil {
		h.logger.Error("results fetch failed",
			logger.Field{Key: "err", Value: err},
			logger.Field{Key: "search_id", Value: searchID},
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not fetch search results"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// RedirectHandler godoc
// @Summary      Resolve a booking redirect link
// @Description  Resolve the partner booking link for an offer, serving a cached link while it is still fresh
// @Tags         flights
// @Accept       json
// @Produce      json
// @Param        request body redirect.LinkRequest true "Offer Link Data"
// @Success      200 {object} redirect.Descriptor
// @Failure      400 {object} map[string]string
// @Failure      422 {object} map[string]string
// @Failure      502 {object} map[string]string
// @Router       /v1/flights/redirect [post]
func (h *Handler) RedirectHandler(c *gin.Context) {
	var req redirect.LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	descriptor, err := h.resolver.Resolve(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, redirect.ErrMissingLinkData) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		var unavailable *redirect.UnavailableError
		if errors.As(err, &unavailable) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "booking redirect unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "redirect resolution failed"})
		return
	}

	c.JSON(http.StatusOK, descriptor)
}

// PlacesHandler godoc
// @Summary      Autocomplete places
// @Description  Suggest airports and cities matching a free-text term, with a static fallback when the partner is unavailable
// @Tags         places
// @Produce      json
// @Param        term query string true "Search Term"
// @Success      200 {array} flightapi.Place
// @Failure      400 {object} map[string]string
// @Router       /v1/places [get]
func (h *Handler) PlacesHandler(c *gin.Context) {
	term := c.Query("term")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "term is required"})
		return
	}

	c.JSON(http.StatusOK, h.placesSvc.Suggest(c.Request.Context(), term))
}

func (h *Handler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
