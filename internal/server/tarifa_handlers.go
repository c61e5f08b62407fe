package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/courtly-dev/courtly/internal/models"
)

// TarifaRequest creates or updates an hourly price
type TarifaRequest struct {
	TipoServicio string  `json:"tipoServicio" binding:"required"`
	PrecioHora   float64 `json:"precioHora" binding:"required,gt=0"`
	Vigente      *bool   `json:"vigente"`
	AdminID      *uint   `json:"idAdmin"`
}

func (s *Server) listTarifas(c *gin.Context) {
	var tarifas []models.Tarifa
	if err := s.db.Order("id").Find(&tarifas).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list tarifas")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, tarifas)
}

// listTarifasVigentes returns only the tarifas currently offered when
// creating a reservation.
func (s *Server) listTarifasVigentes(c *gin.Context) {
	var tarifas []models.Tarifa
	if err := s.db.Where("vigente = ?", true).Order("id").Find(&tarifas).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list vigente tarifas")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, tarifas)
}

func (s *Server) getTarifa(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var tarifa models.Tarifa
	if err := models.FindByID(s.db, id, &tarifa); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tarifa not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find tarifa")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, tarifa)
}

func (s *Server) createTarifa(c *gin.Context) {
	var req TarifaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vigente := true
	if req.Vigente != nil {
		vigente = *req.Vigente
	}

	tarifa := models.Tarifa{
		TipoServicio: req.TipoServicio,
		PrecioHora:   req.PrecioHora,
		Vigente:      vigente,
		AdminID:      req.AdminID,
	}
	if err := s.db.Create(&tarifa).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create tarifa")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tarifa"})
		return
	}

	c.JSON(http.StatusCreated, tarifa)
}

func (s *Server) updateTarifa(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req TarifaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var tarifa models.Tarifa
	if err := models.FindByID(s.db, id, &tarifa); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tarifa not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find tarifa")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	tarifa.TipoServicio = req.TipoServicio
	tarifa.PrecioHora = req.PrecioHora
	if req.Vigente != nil {
		tarifa.Vigente = *req.Vigente
	}
	if req.AdminID != nil {
		tarifa.AdminID = req.AdminID
	}
	if err := s.db.Save(&tarifa).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update tarifa")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tarifa"})
		return
	}

	c.JSON(http.StatusOK, tarifa)
}

func (s *Server) deleteTarifa(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := s.db.Delete(&models.Tarifa{}, id).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete tarifa")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tarifa"})
		return
	}
	c.Status(http.StatusNoContent)
}
