package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/neupane-rajan/airline-reservation/internal/service/users"
	"go.uber.org/zap"
)

type PassengerHandler struct {
	service users.UserUseCase
	logger  *zap.Logger
}

func NewPassengerHandler(service users.UserUseCase, logger *zap.Logger) *PassengerHandler {
	return &PassengerHandler{service: service, logger: logger}
}

func (h *PassengerHandler) Register(router, staff *gin.RouterGroup) {
	staff.GET("", h.list)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
}

func (h *PassengerHandler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	passengers, err := h.service.ListPassengers(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	out := make([]userResponse, 0, len(passengers))
	for i := range passengers {
		out = append(out, toUserResponse(&passengers[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *PassengerHandler) get(c *gin.Context) {
	id, ok := passengerID(c)
	if !ok {
		return
	}

	passenger, err := h.service.GetPassenger(c.Request.Context(), userIDFrom(c), roleFrom(c), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(passenger))
}

func (h *PassengerHandler) update(c *gin.Context) {
	id, ok := passengerID(c)
	if !ok {
		return
	}

	var req users.UpdateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	passenger, err := h.service.UpdatePassenger(c.Request.Context(), userIDFrom(c), roleFrom(c), id, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(passenger))
}

func passengerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
