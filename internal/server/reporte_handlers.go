package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/courtly-dev/courtly/internal/models"
)

// ReporteRequest records a report request. Generation happens elsewhere.
type ReporteRequest struct {
	AdministradorID uint   `json:"administradorId" binding:"required"`
	ReservaID       *uint  `json:"reservaId"`
	TipoReporte     string `json:"tipoReporte" binding:"required"`
	Descripcion     string `json:"descripcion"`
}

func (s *Server) listReportes(c *gin.Context) {
	var reportes []models.Reporte
	if err := s.db.Order("fecha_generado desc").Find(&reportes).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list reportes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, reportes)
}

func (s *Server) getReporte(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var reporte models.Reporte
	if err := models.FindByID(s.db, id, &reporte); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reporte not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find reporte")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, reporte)
}

func (s *Server) createReporte(c *gin.Context) {
	var req ReporteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reporte := models.Reporte{
		AdministradorID: req.AdministradorID,
		ReservaID:       req.ReservaID,
		TipoReporte:     req.TipoReporte,
		Descripcion:     req.Descripcion,
	}
	if err := s.db.Create(&reporte).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create reporte")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reporte"})
		return
	}

	c.JSON(http.StatusCreated, reporte)
}

func (s *Server) deleteReporte(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := s.db.Delete(&models.Reporte{}, id).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete reporte")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reporte"})
		return
	}
	c.Status(http.StatusNoContent)
}

// filterReportesByFechas lists reports generated inside [inicio, fin].
// Both bounds accept RFC 3339 timestamps or plain dates.
func (s *Server) filterReportesByFechas(c *gin.Context) {
	inicio, err := parseTimeParam(c.Query("inicio"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inicio parameter"})
		return
	}
	fin, err := parseTimeParam(c.Query("fin"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fin parameter"})
		return
	}
	if fin.Before(inicio) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fin must not be before inicio"})
		return
	}

	var reportes []models.Reporte
	if err := s.db.
		Where("fecha_generado >= ? AND fecha_generado <= ?", inicio, fin).
		Order("fecha_generado desc").
		Find(&reportes).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to filter reportes by fechas")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, reportes)
}

// filterReportesByCliente lists reports tied to reservations of one client.
func (s *Server) filterReportesByCliente(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var reportes []models.Reporte
	if err := s.db.
		Joins("JOIN reservas ON reservas.id = reportes.reserva_id").
		Where("reservas.cliente_id = ?", id).
		Order("reportes.fecha_generado desc").
		Find(&reportes).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to filter reportes by cliente")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, reportes)
}
