package flight

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Searcher interface {
	Search(ctx context.Context, q FlightQuery) SearchResult
}

type FlightHandler struct {
	service Searcher
}

func NewFlightHandler(s Searcher) *FlightHandler {
	return &FlightHandler{
		service: s,
	}
}

func (h *FlightHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/v1/flights/cheapest", h.CheapestFlightHandler)
}

// CheapestFlightHandler godoc
// @Summary      Cheapest round-trip flight
// @Description  Queries the flight-search provider once and returns its first best round-trip offer.
// @Tags         flights
// @Produce      json
// @Param        departure_id   query  string  true  "Departure airport code, e.g. FRA"
// @Param        arrival_id     query  string  true  "Arrival airport code, e.g. AUS"
// @Param        outbound_date  query  string  true  "Outbound date, YYYY-MM-DD"
// @Param        return_date    query  string  true  "Return date, YYYY-MM-DD, not before outbound_date"
// @Success      200 {object} SearchResult
// @Failure      400 {object} map[string]string
// @Failure      502 {object} SearchResult
// @Router       /v1/flights/cheapest [get]
func (h *FlightHandler) CheapestFlightHandler(c *gin.Context) {
	q, err := NewFlightQuery(
		c.Query("departure_id"),
		c.Query("arrival_id"),
		c.Query("outbound_date"),
		c.Query("return_date"),
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
			"code":  ErrorCodeValidation,
		})
		return
	}

	result := h.service.Search(c.Request.Context(), q)
	if !result.OK() {
		c.JSON(http.StatusBadGateway, result)
		return
	}

	c.JSON(http.StatusOK, result)
}
