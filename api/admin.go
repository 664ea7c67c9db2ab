package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/neupane-rajan/airline-reservation/internal/service/stats"
	"go.uber.org/zap"
)

type AdminHandler struct {
	service stats.StatsUseCase
	logger  *zap.Logger
}

func NewAdminHandler(service stats.StatsUseCase, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{service: service, logger: logger}
}

func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.GET("/dashboard/stats", h.dashboard)
	router.GET("/revenue/monthly", h.monthlyRevenue)
	router.GET("/popular-routes", h.popularRoutes)
}

func (h *AdminHandler) dashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_stats": gin.H{
			"total_users":      dashboard.Users.TotalUsers,
			"passengers_count": dashboard.Users.Passengers,
			"staff_count":      dashboard.Users.Staff,
		},
		"flight_stats": gin.H{
			"total_flights":  dashboard.Flights.TotalFlights,
			"active_flights": dashboard.Flights.ActiveFlights,
		},
		"booking_stats": gin.H{
			"total_bookings":     dashboard.Bookings.TotalBookings,
			"confirmed_bookings": dashboard.Bookings.ConfirmedBookings,
			"pending_bookings":   dashboard.Bookings.PendingBookings,
			"cancelled_bookings": dashboard.Bookings.CancelledBookings,
			"recent_bookings":    dashboard.Bookings.RecentBookings,
		},
		"financial_stats": gin.H{
			"total_revenue_cents": dashboard.TotalRevenueCents,
		},
	})
}

func (h *AdminHandler) monthlyRevenue(c *gin.Context) {
	year, _ := strconv.Atoi(c.DefaultQuery("year", "0"))

	revenue, err := h.service.MonthlyRevenue(c.Request.Context(), year)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	out := make([]gin.H, 0, len(revenue))
	for _, m := range revenue {
		out = append(out, gin.H{
			"month":         m.Month,
			"month_name":    m.MonthName,
			"revenue_cents": m.RevenueCents,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) popularRoutes(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	routes, err := h.service.PopularRoutes(c.Request.Context(), limit)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	out := make([]gin.H, 0, len(routes))
	for _, r := range routes {
		out = append(out, gin.H{
			"departure_city": r.DepartureCity,
			"arrival_city":   r.ArrivalCity,
			"booking_count":  r.BookingCount,
		})
	}
	c.JSON(http.StatusOK, out)
}
