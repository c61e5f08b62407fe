package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/courtly-dev/courtly/internal/models"
)

// DisponibilidadRequest publishes or updates a weekly availability slot
type DisponibilidadRequest struct {
	EntrenadorID uint   `json:"idEntrenador" binding:"required"`
	DiaSemana    string `json:"diaDesSemana" binding:"required"`
	HoraInicio   string `json:"horaInicio" binding:"required"`
	HoraFin      string `json:"horaFin" binding:"required"`
}

// requireOwnEntrenador restricts a write to the trainer's own records.
func requireOwnEntrenador(c *gin.Context, s *Server, entrenadorID uint) bool {
	claims, exists := GetSessionClaims(c)
	if !exists {
		respondWithError(c, s.logger, http.StatusUnauthorized, errors.New("no session"), "Unauthorized")
		return false
	}
	if claims.EntrenadorID == nil || *claims.EntrenadorID != entrenadorID {
		respondWithError(c, s.logger, http.StatusForbidden, errors.New("not the record owner"), "Insufficient role")
		return false
	}
	return true
}

func (s *Server) listDisponibilidades(c *gin.Context) {
	var slots []models.Disponibilidad
	if err := s.db.Order("entrenador_id, dia_semana, hora_inicio").Find(&slots).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list disponibilidades")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (s *Server) listDisponibilidadesByEntrenador(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var slots []models.Disponibilidad
	if err := s.db.Where("entrenador_id = ?", id).
		Order("dia_semana, hora_inicio").
		Find(&slots).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list disponibilidades by entrenador")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (s *Server) createDisponibilidad(c *gin.Context) {
	var req DisponibilidadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !requireOwnEntrenador(c, s, req.EntrenadorID) {
		return
	}

	slot := models.Disponibilidad{
		EntrenadorID: req.EntrenadorID,
		DiaSemana:    req.DiaSemana,
		HoraInicio:   req.HoraInicio,
		HoraFin:      req.HoraFin,
	}
	if err := s.db.Create(&slot).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create disponibilidad")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create disponibilidad"})
		return
	}

	c.JSON(http.StatusCreated, slot)
}

func (s *Server) updateDisponibilidad(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req DisponibilidadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var slot models.Disponibilidad
	if err := models.FindByID(s.db, id, &slot); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Disponibilidad not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find disponibilidad")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if !requireOwnEntrenador(c, s, slot.EntrenadorID) {
		return
	}

	slot.DiaSemana = req.DiaSemana
	slot.HoraInicio = req.HoraInicio
	slot.HoraFin = req.HoraFin
	if err := s.db.Save(&slot).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update disponibilidad")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update disponibilidad"})
		return
	}

	c.JSON(http.StatusOK, slot)
}

func (s *Server) deleteDisponibilidad(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var slot models.Disponibilidad
	if err := models.FindByID(s.db, id, &slot); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Disponibilidad not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find disponibilidad")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if !requireOwnEntrenador(c, s, slot.EntrenadorID) {
		return
	}

	if err := s.db.Delete(&slot).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete disponibilidad")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete disponibilidad"})
		return
	}
	c.Status(http.StatusNoContent)
}
