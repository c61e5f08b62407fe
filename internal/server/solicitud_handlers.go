package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/courtly-dev/courtly/internal/models"
)

// SolicitudRequest files a training request. Leaving idEntrenador empty
// puts the request into the open pool trainers pick from.
type SolicitudRequest struct {
	ClienteID    uint      `json:"idCliente" binding:"required"`
	EntrenadorID *uint     `json:"idEntrenador"`
	Inicio       time.Time `json:"inicio" binding:"required"`
	Fin          time.Time `json:"fin" binding:"required"`
}

func (s *Server) listSolicitudes(c *gin.Context) {
	var solicitudes []models.Solicitud
	if err := s.db.Order("created_at desc").Find(&solicitudes).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list solicitudes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, solicitudes)
}

func (s *Server) listSolicitudesByCliente(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireOwnCliente(c, s.logger, id) {
		return
	}

	var solicitudes []models.Solicitud
	if err := s.db.Where("cliente_id = ?", id).Order("created_at desc").Find(&solicitudes).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list solicitudes by cliente")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, solicitudes)
}

// listSolicitudesDisponibles is the open pool: pending requests nobody
// has claimed yet.
func (s *Server) listSolicitudesDisponibles(c *gin.Context) {
	var solicitudes []models.Solicitud
	if err := s.db.
		Where("entrenador_id IS NULL AND estado = ?", models.EstadoSolicitudPendiente).
		Order("created_at").
		Find(&solicitudes).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list available solicitudes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, solicitudes)
}

func (s *Server) listSolicitudesByEntrenador(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireOwnEntrenador(c, s, id) {
		return
	}

	var solicitudes []models.Solicitud
	if err := s.db.Where("entrenador_id = ?", id).Order("created_at desc").Find(&solicitudes).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list solicitudes by entrenador")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, solicitudes)
}

func (s *Server) createSolicitud(c *gin.Context) {
	var req SolicitudRequest
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

	solicitud := models.Solicitud{
		ClienteID:    req.ClienteID,
		EntrenadorID: req.EntrenadorID,
		Inicio:       req.Inicio,
		Fin:          req.Fin,
		Estado:       models.EstadoSolicitudPendiente,
	}
	if err := s.db.Create(&solicitud).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create solicitud")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create solicitud"})
		return
	}

	c.JSON(http.StatusCreated, solicitud)
}

// aceptarSolicitud claims a pending request for the trainer. Claiming a
// request someone else already took yields 409.
func (s *Server) aceptarSolicitud(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	entrenadorID, ok := parseIDParam(c, "idEntrenador")
	if !ok {
		return
	}
	if !requireOwnEntrenador(c, s, entrenadorID) {
		return
	}

	var solicitud models.Solicitud
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&solicitud).Error; err != nil {
			return err
		}
		if solicitud.Estado != models.EstadoSolicitudPendiente {
			return errSolicitudNoPendiente
		}
		if solicitud.EntrenadorID != nil && *solicitud.EntrenadorID != entrenadorID {
			return errSolicitudAjena
		}

		solicitud.EntrenadorID = &entrenadorID
		solicitud.Estado = models.EstadoSolicitudAceptada
		return tx.Save(&solicitud).Error
	})
	if err != nil {
		switch {
		case err == gorm.ErrRecordNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Solicitud not found"})
		case errors.Is(err, errSolicitudNoPendiente):
			c.JSON(http.StatusConflict, gin.H{"error": "Solicitud is no longer pending"})
		case errors.Is(err, errSolicitudAjena):
			c.JSON(http.StatusConflict, gin.H{"error": "Solicitud is assigned to another entrenador"})
		default:
			s.logger.Error().Err(err).Msg("Failed to accept solicitud")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept solicitud"})
		}
		return
	}

	s.logger.Info().
		Uint("solicitud_id", solicitud.ID).
		Uint("entrenador_id", entrenadorID).
		Msg("Solicitud accepted")

	c.JSON(http.StatusOK, solicitud)
}

var (
	errSolicitudNoPendiente = errors.New("solicitud is not pending")
	errSolicitudAjena       = errors.New("solicitud belongs to another entrenador")
)

func (s *Server) rechazarSolicitud(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var solicitud models.Solicitud
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&solicitud).Error; err != nil {
			return err
		}
		if solicitud.Estado != models.EstadoSolicitudPendiente {
			return errSolicitudNoPendiente
		}

		solicitud.Estado = models.EstadoSolicitudRechazada
		return tx.Save(&solicitud).Error
	})
	if err != nil {
		switch {
		case err == gorm.ErrRecordNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Solicitud not found"})
		case errors.Is(err, errSolicitudNoPendiente):
			c.JSON(http.StatusConflict, gin.H{"error": "Solicitud is no longer pending"})
		default:
			s.logger.Error().Err(err).Msg("Failed to reject solicitud")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject solicitud"})
		}
		return
	}

	c.JSON(http.StatusOK, solicitud)
}

func (s *Server) deleteSolicitud(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var solicitud models.Solicitud
	if err := models.FindByID(s.db, id, &solicitud); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Solicitud not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find solicitud")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if !requireOwnCliente(c, s.logger, solicitud.ClienteID) {
		return
	}

	if err := s.db.Delete(&solicitud).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete solicitud")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete solicitud"})
		return
	}
	c.Status(http.StatusNoContent)
}
