package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/courtly-dev/courtly/internal/models"
)

// CanchaRequest creates or updates a court
type CanchaRequest struct {
	Nombre      string `json:"nombre" binding:"required"`
	Tipo        string `json:"tipo" binding:"required"`
	Estado      string `json:"estado"`
	Descripcion string `json:"descripcion"`
}

func (s *Server) listCanchas(c *gin.Context) {
	var canchas []models.Cancha
	if err := s.db.Order("id").Find(&canchas).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list canchas")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, canchas)
}

func (s *Server) getCancha(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var cancha models.Cancha
	if err := models.FindByID(s.db, id, &cancha); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cancha not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find cancha")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, cancha)
}

func (s *Server) createCancha(c *gin.Context) {
	var req CanchaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The center has a fixed number of physical courts.
	var count int64
	if err := s.db.Model(&models.Cancha{}).Count(&count).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to count canchas")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if count >= models.MaxCanchas {
		c.JSON(http.StatusConflict, gin.H{"error": "Maximum number of canchas reached"})
		return
	}

	estado := req.Estado
	if estado == "" {
		estado = models.EstadoCanchaDisponible
	}

	cancha := models.Cancha{
		Nombre:      req.Nombre,
		Tipo:        req.Tipo,
		Estado:      estado,
		Descripcion: req.Descripcion,
	}
	if err := s.db.Create(&cancha).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create cancha")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cancha"})
		return
	}

	c.JSON(http.StatusCreated, cancha)
}

func (s *Server) updateCancha(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CanchaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var cancha models.Cancha
	if err := models.FindByID(s.db, id, &cancha); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cancha not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find cancha")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	cancha.Nombre = req.Nombre
	cancha.Tipo = req.Tipo
	if req.Estado != "" {
		cancha.Estado = req.Estado
	}
	cancha.Descripcion = req.Descripcion
	if err := s.db.Save(&cancha).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update cancha")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cancha"})
		return
	}

	c.JSON(http.StatusOK, cancha)
}

func (s *Server) deleteCancha(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := s.db.Delete(&models.Cancha{}, id).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete cancha")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cancha"})
		return
	}
	c.Status(http.StatusNoContent)
}
