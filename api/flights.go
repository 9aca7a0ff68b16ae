package api

import (
	"net/http"
	"time"

	"github.com/emirhankarahan/flyticket/internal/auth"
	"github.com/emirhankarahan/flyticket/internal/domain"
	"github.com/emirhankarahan/flyticket/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
	admins  auth.AdminUseCase
}

type flightRequest struct {
	FromCity       string    `json:"from_city" binding:"required"`
	ToCity         string    `json:"to_city" binding:"required"`
	DepartureTime  time.Time `json:"departure_time" binding:"required"`
	ArrivalTime    time.Time `json:"arrival_time" binding:"required"`
	Price          float64   `json:"price" binding:"min=0"`
	SeatsTotal     int       `json:"seats_total" binding:"min=0"`
	SeatsAvailable int       `json:"seats_available" binding:"min=0"`
}

type listFlightsRequest struct {
	FromCity string `form:"from_city"`
	ToCity   string `form:"to_city"`
	Date     string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

func NewFlightHandler(service flights.FlightUseCase, admins auth.AdminUseCase) *FlightHandler {
	return &FlightHandler{service: service, admins: admins}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)

	protected := router.Group("/", RequireAdmin(h.admins))
	protected.POST("/", h.create)
	protected.PUT("/:id", h.update)
	protected.DELETE("/:id", h.delete)
}

func (h *FlightHandler) list(c *gin.Context) {
	var req listFlightsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flights, err := h.service.List(c.Request.Context(), domain.FlightFilter{
		FromCity: req.FromCity,
		ToCity:   req.ToCity,
		Date:     req.Date,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.service.Create(c.Request.Context(), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "flight created successfully", "flight_id": id})
}

func (h *FlightHandler) update(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Update(c.Request.Context(), c.Param("id"), req.toInput()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "flight updated successfully"})
}

func (h *FlightHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "flight deleted successfully"})
}

func (r flightRequest) toInput() flights.FlightInput {
	return flights.FlightInput{
		FromCity:       r.FromCity,
		ToCity:         r.ToCity,
		DepartureTime:  r.DepartureTime,
		ArrivalTime:    r.ArrivalTime,
		Price:          r.Price,
		SeatsTotal:     r.SeatsTotal,
		SeatsAvailable: r.SeatsAvailable,
	}
}
