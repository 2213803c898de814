package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/planepal/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/flight-by-id/:id", h.get)
	router.GET("/airlines", h.airlines)
	router.GET("/airports", h.airports)
}

func (h *FlightHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(list) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no scheduled flights found"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) airlines(c *gin.Context) {
	airlines, err := h.service.Airlines(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(airlines) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no airlines found"})
		return
	}
	c.JSON(http.StatusOK, airlines)
}

func (h *FlightHandler) airports(c *gin.Context) {
	airports, err := h.service.Airports(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(airports) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no airports found"})
		return
	}
	c.JSON(http.StatusOK, airports)
}
