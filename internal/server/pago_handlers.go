package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/courtly-dev/courtly/internal/auth"
	"github.com/courtly-dev/courtly/internal/models"
)

// PagoRequest records a payment against a reservation
type PagoRequest struct {
	ReservaID  uint    `json:"idReserva" binding:"required"`
	ClienteID  uint    `json:"idCliente" binding:"required"`
	Monto      float64 `json:"monto" binding:"required,gt=0"`
	Metodo     string  `json:"metodo" binding:"required"`
	EstadoPago string  `json:"estadoPago" binding:"required"`
}

func (s *Server) listPagos(c *gin.Context) {
	var pagos []models.Pago
	query := s.db.Order("fecha_pago desc")

	claims, _ := GetSessionClaims(c)
	if claims != nil && auth.RolesEqual(claims.Rol, string(auth.RoleCliente)) && claims.ClienteID != nil {
		query = query.Where("cliente_id = ?", *claims.ClienteID)
	}

	if err := query.Find(&pagos).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list pagos")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, pagos)
}

func (s *Server) getPago(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var pago models.Pago
	if err := models.FindByID(s.db, id, &pago); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pago not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find pago")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !requireOwnCliente(c, s.logger, pago.ClienteID) {
		return
	}
	c.JSON(http.StatusOK, pago)
}

func (s *Server) listPagosByCliente(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireOwnCliente(c, s.logger, id) {
		return
	}

	var pagos []models.Pago
	if err := s.db.Where("cliente_id = ?", id).Order("fecha_pago desc").Find(&pagos).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list pagos by cliente")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, pagos)
}

func (s *Server) createPago(c *gin.Context) {
	var req PagoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !requireOwnCliente(c, s.logger, req.ClienteID) {
		return
	}

	// The payment must reference an existing booking.
	var reserva models.Reserva
	if err := models.FindByID(s.db, req.ReservaID, &reserva); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Reserva not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find reserva for pago")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	pago := models.Pago{
		ReservaID:  req.ReservaID,
		ClienteID:  req.ClienteID,
		Monto:      req.Monto,
		Metodo:     req.Metodo,
		EstadoPago: req.EstadoPago,
	}

	if claims, _ := GetSessionClaims(c); claims != nil && auth.RolesEqual(claims.Rol, string(auth.RoleAdmin)) {
		adminID := claims.UserID
		pago.ProcesadoPorAdminID = &adminID
	}

	if err := s.db.Create(&pago).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create pago")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pago"})
		return
	}

	s.logger.Info().
		Str("recibo", pago.Recibo).
		Uint("reserva_id", pago.ReservaID).
		Msg("Pago recorded")

	c.JSON(http.StatusCreated, pago)
}

func (s *Server) updatePago(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req PagoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var pago models.Pago
	if err := models.FindByID(s.db, id, &pago); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pago not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find pago")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if !requireOwnCliente(c, s.logger, pago.ClienteID) {
		return
	}

	pago.Monto = req.Monto
	pago.Metodo = req.Metodo
	pago.EstadoPago = req.EstadoPago
	if err := s.db.Save(&pago).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update pago")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pago"})
		return
	}

	c.JSON(http.StatusOK, pago)
}

func (s *Server) deletePago(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var pago models.Pago
	if err := models.FindByID(s.db, id, &pago); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pago not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find pago")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if !requireOwnCliente(c, s.logger, pago.ClienteID) {
		return
	}

	if err := s.db.Delete(&pago).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete pago")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pago"})
		return
	}
	c.Status(http.StatusNoContent)
}
