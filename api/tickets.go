package api

import (
	"net/http"

	"github.com/emirhankarahan/flyticket/internal/auth"
	"github.com/emirhankarahan/flyticket/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	service booking.BookingUseCase
	admins  auth.AdminUseCase
}

type bookTicketRequest struct {
	FlightID         string `json:"flight_id" binding:"required"`
	PassengerName    string `json:"passenger_name" binding:"required"`
	PassengerSurname string `json:"passenger_surname" binding:"required"`
	PassengerEmail   string `json:"passenger_email" binding:"required,email"`
	SeatNumber       string `json:"seat_number"`
}

func NewTicketHandler(service booking.BookingUseCase, admins auth.AdminUseCase) *TicketHandler {
	return &TicketHandler{service: service, admins: admins}
}

func (h *TicketHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.book)
	router.GET("/:query", h.find)
	router.DELETE("/:id", h.cancel)
	router.GET("/", RequireAdmin(h.admins), h.listAll)
}

func (h *TicketHandler) book(c *gin.Context) {
	var req bookTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.service.BookTicket(c.Request.Context(), booking.BookTicketInput{
		FlightID:         req.FlightID,
		PassengerName:    req.PassengerName,
		PassengerSurname: req.PassengerSurname,
		PassengerEmail:   req.PassengerEmail,
		SeatNumber:       req.SeatNumber,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "ticket booked successfully", "ticket_id": ticket.ID})
}

// find resolves the path token as an email when it contains "@" and as a
// ticket id otherwise. Email matches come back as a list, an id match as a
// single object, mirroring what callers of the original API expect.
func (h *TicketHandler) find(c *gin.Context) {
	query := c.Param("query")
	tickets, err := h.service.FindTicket(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}

	if len(tickets) == 1 && tickets[0].ID == query {
		c.JSON(http.StatusOK, tickets[0])
		return
	}
	c.JSON(http.StatusOK, tickets)
}

func (h *TicketHandler) cancel(c *gin.Context) {
	if err := h.service.CancelTicket(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ticket deleted successfully"})
}

func (h *TicketHandler) listAll(c *gin.Context) {
	tickets, err := h.service.ListTickets(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}
