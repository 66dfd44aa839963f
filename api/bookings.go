package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mayszaher/airportbooking/internal/domain"
	"github.com/mayszaher/airportbooking/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	Phone     string `json:"phone"`
	FlightID  string `json:"flight_id"`
	Class     string `json:"class"`
	Seats     int    `json:"seats"`
}

type modifyBookingRequest struct {
	Class string `json:"class"`
	Seats int    `json:"seats"`
}

type bookingResponse struct {
	ID          string `json:"id"`
	FlightID    string `json:"flight_id"`
	PassengerID string `json:"passenger_id"`
	Seats       int    `json:"seats"`
	Class       string `json:"class"`
	TotalCents  int64  `json:"total_cents"`
	Cancelled   bool   `json:"cancelled"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.modify)
	router.DELETE("/:id", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	class, err := domain.ParseCabinClass(req.Class)
	if err != nil {
		writeError(c, err)
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		Phone:     req.Phone,
		FlightID:  req.FlightID,
		Class:     class,
		Seats:     req.Seats,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(created))
}

// list returns every booking, or only a passenger's when ?email= is given.
func (h *BookingHandler) list(c *gin.Context) {
	var (
		bookings []domain.Booking
		err      error
	)
	if email := c.Query("email"); email != "" {
		bookings, err = h.service.ListForPassenger(c.Request.Context(), email)
	} else {
		bookings, err = h.service.ListBookings(c.Request.Context())
	}
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		resp = append(resp, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) get(c *gin.Context) {
	found, err := h.service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(found))
}

func (h *BookingHandler) modify(c *gin.Context) {
	var req modifyBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	class, err := domain.ParseCabinClass(req.Class)
	if err != nil {
		writeError(c, err)
		return
	}

	modified, err := h.service.ModifyBooking(c.Request.Context(), c.Param("id"), class, req.Seats)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(modified))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	cancelled, err := h.service.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": cancelled})
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:          b.ID,
		FlightID:    b.FlightID,
		PassengerID: b.PassengerID,
		Seats:       b.Seats,
		Class:       string(b.Class),
		TotalCents:  b.TotalCents,
		Cancelled:   b.Cancelled,
	}
}
