package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neupane-rajan/airline-reservation/internal/domain"
	"github.com/neupane-rajan/airline-reservation/internal/service/booking"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service booking.BookingUseCase
	logger  *zap.Logger
}

type bookingResponse struct {
	ID            int64  `json:"id"`
	Reference     string `json:"reference"`
	PassengerID   int64  `json:"passenger_id"`
	FlightID      int64  `json:"flight_id"`
	SeatNumber    string `json:"seat_number"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	PaymentID     string `json:"payment_id,omitempty"`
	AmountCents   int64  `json:"amount_cents"`
	BookingDate   string `json:"booking_date"`
}

type eTicketResponse struct {
	BookingReference string `json:"booking_reference"`
	PassengerName    string `json:"passenger_name"`
	FlightNumber     string `json:"flight_number"`
	Airline          string `json:"airline"`
	DepartureCity    string `json:"departure_city"`
	ArrivalCity      string `json:"arrival_city"`
	DepartureTime    string `json:"departure_time"`
	ArrivalTime      string `json:"arrival_time"`
	SeatNumber       string `json:"seat_number"`
	BookingDate      string `json:"booking_date"`
	AmountCents      int64  `json:"amount_cents"`
}

func NewBookingHandler(service booking.BookingUseCase, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{service: service, logger: logger}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("/:id/payment", h.pay)
	router.POST("/:id/cancel", h.cancel)
	router.GET("/:id/e-ticket", h.eTicket)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req booking.CreateBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) get(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	found, err := h.service.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(found))
}

func (h *BookingHandler) pay(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req booking.PaymentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Pay(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(updated))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	updated, err := h.service.Cancel(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(updated))
}

func (h *BookingHandler) eTicket(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	ticket, err := h.service.ETicket(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, eTicketResponse{
		BookingReference: ticket.BookingReference,
		PassengerName:    ticket.PassengerName,
		FlightNumber:     ticket.FlightNumber,
		Airline:          ticket.Airline,
		DepartureCity:    ticket.DepartureCity,
		ArrivalCity:      ticket.ArrivalCity,
		DepartureTime:    ticket.DepartureTime.Format(time.RFC3339),
		ArrivalTime:      ticket.ArrivalTime.Format(time.RFC3339),
		SeatNumber:       ticket.SeatNumber,
		BookingDate:      ticket.BookingDate.Format(time.RFC3339),
		AmountCents:      ticket.AmountCents,
	})
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:            b.ID,
		Reference:     b.Reference,
		PassengerID:   b.PassengerID,
		FlightID:      b.FlightID,
		SeatNumber:    b.SeatNumber,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		PaymentID:     b.PaymentID,
		AmountCents:   b.AmountCents,
		BookingDate:   b.CreatedAt.Format(time.RFC3339),
	}
}
