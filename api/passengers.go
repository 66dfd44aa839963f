package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mayszaher/airportbooking/internal/domain"
	"github.com/mayszaher/airportbooking/internal/service/passengers"
)

type PassengerHandler struct {
	service passengers.PassengerUseCase
}

type passengerRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	Phone     string `json:"phone"`
}

func NewPassengerHandler(service passengers.PassengerUseCase) *PassengerHandler {
	return &PassengerHandler{service: service}
}

func (h *PassengerHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.getByEmail)
	router.POST("/", h.register)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
}

func (h *PassengerHandler) getByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}

	passenger, err := h.service.GetByEmail(c.Request.Context(), email)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, passenger)
}

func (h *PassengerHandler) register(c *gin.Context) {
	var req passengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	passenger, err := h.service.Register(c.Request.Context(), req.Email, req.FirstName, req.Phone)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, passenger)
}

func (h *PassengerHandler) update(c *gin.Context) {
	var req passengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	passenger := &domain.Passenger{
		ID:        c.Param("id"),
		Email:     req.Email,
		FirstName: req.FirstName,
		Phone:     req.Phone,
	}
	if err := h.service.Update(c.Request.Context(), passenger); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, passenger)
}

func (h *PassengerHandler) remove(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
