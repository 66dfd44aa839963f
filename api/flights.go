package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mayszaher/airportbooking/internal/domain"
	"github.com/mayszaher/airportbooking/internal/repository"
	"github.com/mayszaher/airportbooking/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightRequest struct {
	Number             string `json:"number"`
	DepartureCountry   string `json:"departure_country"`
	DestinationCountry string `json:"destination_country"`
	DepartureAirport   string `json:"departure_airport"`
	ArrivalAirport     string `json:"arrival_airport"`
	DepartureTime      string `json:"departure_time"`
	PriceCents         int64  `json:"price_cents"`
	AvailableSeats     int    `json:"available_seats"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/search", h.search)
	router.GET("/:id", h.get)
	router.GET("/:id/availability", h.availability)
	router.POST("/", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
}

func (h *FlightHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *FlightHandler) search(c *gin.Context) {
	params := repository.FlightSearch{
		DepartureCountry:   c.Query("departure_country"),
		DestinationCountry: c.Query("destination_country"),
		DepartureAirport:   c.Query("departure_airport"),
		ArrivalAirport:     c.Query("arrival_airport"),
	}
	if v := c.Query("departs_after"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid departs_after"})
			return
		}
		params.DepartsAfter = &ts
	}
	if v := c.Query("departs_before"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid departs_before"})
			return
		}
		params.DepartsBefore = &ts
	}
	if v := c.Query("max_price_cents"); v != "" {
		max, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_price_cents"})
			return
		}
		params.MaxPriceCents = &max
	}

	list, err := h.service.Search(c.Request.Context(), params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) availability(c *gin.Context) {
	seats, err := strconv.Atoi(c.DefaultQuery("seats", "1"))
	if err != nil || seats <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid seats"})
		return
	}
	available := h.service.IsAvailable(c.Request.Context(), c.Param("id"), seats)
	c.JSON(http.StatusOK, gin.H{"available": available})
}

func (h *FlightHandler) create(c *gin.Context) {
	flight, ok := h.bindFlight(c)
	if !ok {
		return
	}
	if err := h.service.Add(c.Request.Context(), flight); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) update(c *gin.Context) {
	flight, ok := h.bindFlight(c)
	if !ok {
		return
	}
	flight.ID = c.Param("id")
	if err := h.service.Update(c.Request.Context(), flight); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) remove(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FlightHandler) bindFlight(c *gin.Context) (*domain.Flight, bool) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	var departure time.Time
	if req.DepartureTime != "" {
		var err error
		departure, err = time.Parse(time.RFC3339, req.DepartureTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid departure_time"})
			return nil, false
		}
	}

	return &domain.Flight{
		Number:             req.Number,
		DepartureCountry:   req.DepartureCountry,
		DestinationCountry: req.DestinationCountry,
		DepartureAirport:   req.DepartureAirport,
		ArrivalAirport:     req.ArrivalAirport,
		DepartureTime:      departure,
		PriceCents:         req.PriceCents,
		AvailableSeats:     req.AvailableSeats,
	}, true
}
