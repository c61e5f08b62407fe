package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/courtly-dev/courtly/internal/auth"
	"github.com/courtly-dev/courtly/internal/models"
)

// ReservaRequest creates or updates a booking. The total is taken as
// sent; pricing happens in the back office.
type ReservaRequest struct {
	ClienteID         uint      `json:"clienteId" binding:"required"`
	CanchaID          uint      `json:"canchaId" binding:"required"`
	TarifaID          *uint     `json:"tarifaId"`
	Inicio            time.Time `json:"inicio" binding:"required"`
	Fin               time.Time `json:"fin" binding:"required"`
	IncluirEntrenador bool      `json:"incluirEntrenador"`
	Estado            string    `json:"estado"`
	TotalPagar        float64   `json:"totalPagar"`
}

func (s *Server) listReservas(c *gin.Context) {
	var reservas []models.Reserva
	query := s.db.Order("inicio desc")

	// Clients only ever see their own bookings.
	claims, _ := GetSessionClaims(c)
	if claims != nil && auth.RolesEqual(claims.Rol, string(auth.RoleCliente)) && claims.ClienteID != nil {
		query = query.Where("cliente_id = ?", *claims.ClienteID)
	}

	if err := query.Find(&reservas).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list reservas")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, reservas)
}

func (s *Server) getReserva(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var reserva models.Reserva
	if err := models.FindByID(s.db, id, &reserva); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reserva not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find reserva")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !requireOwnCliente(c, s.logger, reserva.ClienteID) {
		return
	}
	c.JSON(http.StatusOK, reserva)
}

func (s *Server) listReservasByCliente(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireOwnCliente(c, s.logger, id) {
		return
	}

	var reservas []models.Reserva
	if err := s.db.Where("cliente_id = ?", id).Order("inicio desc").Find(&reservas).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list reservas by cliente")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, reservas)
}

func (s *Server) createReserva(c *gin.Context) {
	var req ReservaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Fin.After(req.Inicio) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fin must be after inicio"})
		return
	}
	if !requireOwnCliente(c, s.logger, req.ClienteID) {
		return
	}

	estado := req.Estado
	if estado == "" {
		estado = models.EstadoReservaPendiente
	}

	reserva := models.Reserva{
		ClienteID:         req.ClienteID,
		CanchaID:          req.CanchaID,
		TarifaID:          req.TarifaID,
		Inicio:            req.Inicio,
		Fin:               req.Fin,
		IncluirEntrenador: req.IncluirEntrenador,
		Estado:            estado,
		TotalPagar:        req.TotalPagar,
	}

	// Record which admin booked on the client's behalf.
	if claims, _ := GetSessionClaims(c); claims != nil && auth.RolesEqual(claims.Rol, string(auth.RoleAdmin)) {
		adminID := claims.UserID
		reserva.CreadoPorAdminID = &adminID
	}

	if err := s.db.Create(&reserva).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create reserva")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reserva"})
		return
	}

	s.logger.Info().
		Str("codigo", reserva.Codigo).
		Uint("cliente_id", reserva.ClienteID).
		Uint("cancha_id", reserva.CanchaID).
		Msg("Reserva created")

	c.JSON(http.StatusCreated, reserva)
}

func (s *Server) updateReserva(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ReservaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Fin.After(req.Inicio) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fin must be after inicio"})
		return
	}

	var reserva models.Reserva
	if err := models.FindByID(s.db, id, &reserva); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reserva not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find reserva")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if !requireOwnCliente(c, s.logger, reserva.ClienteID) {
		return
	}

	reserva.CanchaID = req.CanchaID
	reserva.TarifaID = req.TarifaID
	reserva.Inicio = req.Inicio
	reserva.Fin = req.Fin
	reserva.IncluirEntrenador = req.IncluirEntrenador
	if req.Estado != "" {
		reserva.Estado = req.Estado
	}
	reserva.TotalPagar = req.TotalPagar
	if err := s.db.Save(&reserva).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update reserva")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reserva"})
		return
	}

	c.JSON(http.StatusOK, reserva)
}

func (s *Server) deleteReserva(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var reserva models.Reserva
	if err := models.FindByID(s.db, id, &reserva); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reserva not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find reserva")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if !requireOwnCliente(c, s.logger, reserva.ClienteID) {
		return
	}

	if err := s.db.Delete(&reserva).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete reserva")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reserva"})
		return
	}
	c.Status(http.StatusNoContent)
}
