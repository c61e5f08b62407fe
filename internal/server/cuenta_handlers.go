package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/courtly-dev/courtly/internal/auth"
	"github.com/courtly-dev/courtly/internal/models"
)

// AdministradorRequest creates or updates a staff directory entry.
// Credentials are not managed here; staff accounts come through registro.
type AdministradorRequest struct {
	Nombre   string `json:"nombre" binding:"required"`
	Apellido string `json:"apellido"`
	Usuario  string `json:"usuario" binding:"required"`
	Rol      string `json:"rol" binding:"required"`
}

func (s *Server) listAdministradores(c *gin.Context) {
	var administradores []models.Administrador
	if err := s.db.Order("id").Find(&administradores).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list administradores")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, administradores)
}

func (s *Server) getAdministrador(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var administrador models.Administrador
	if err := models.FindByID(s.db, id, &administrador); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Administrador not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find administrador")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, administrador)
}

func (s *Server) createAdministrador(c *gin.Context) {
	var req AdministradorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	administrador := models.Administrador{
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
		Usuario:  req.Usuario,
		Rol:      string(auth.NormalizeRole(req.Rol)),
	}
	if err := s.db.Create(&administrador).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create administrador")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create administrador"})
		return
	}

	c.JSON(http.StatusCreated, administrador)
}

func (s *Server) updateAdministrador(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AdministradorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var administrador models.Administrador
	if err := models.FindByID(s.db, id, &administrador); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Administrador not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find administrador")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	administrador.Nombre = req.Nombre
	administrador.Apellido = req.Apellido
	administrador.Usuario = req.Usuario
	administrador.Rol = string(auth.NormalizeRole(req.Rol))
	if err := s.db.Save(&administrador).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update administrador")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update administrador"})
		return
	}

	c.JSON(http.StatusOK, administrador)
}

func (s *Server) deleteAdministrador(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := s.db.Delete(&models.Administrador{}, id).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete administrador")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete administrador"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ClienteRequest creates or updates a customer record
type ClienteRequest struct {
	Nombre    string `json:"nombre" binding:"required"`
	Apellido  string `json:"apellido"`
	Email     string `json:"email" binding:"required,email"`
	Telefono  string `json:"telefono" validate:"telefono"`
	Documento string `json:"documento" validate:"documento"`
}

func (s *Server) listClientes(c *gin.Context) {
	var clientes []models.Cliente
	if err := s.db.Order("id").Find(&clientes).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list clientes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, clientes)
}

func (s *Server) getCliente(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireOwnCliente(c, s.logger, id) {
		return
	}

	var cliente models.Cliente
	if err := models.FindByID(s.db, id, &cliente); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cliente not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find cliente")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, cliente)
}

func (s *Server) createCliente(c *gin.Context) {
	var req ClienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cliente := models.Cliente{
		Nombre:    req.Nombre,
		Apellido:  req.Apellido,
		Email:     req.Email,
		Telefono:  req.Telefono,
		Documento: req.Documento,
	}
	if err := s.db.Create(&cliente).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create cliente")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cliente"})
		return
	}

	c.JSON(http.StatusCreated, cliente)
}

func (s *Server) updateCliente(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireOwnCliente(c, s.logger, id) {
		return
	}

	var req ClienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var cliente models.Cliente
	if err := models.FindByID(s.db, id, &cliente); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cliente not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find cliente")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	cliente.Nombre = req.Nombre
	cliente.Apellido = req.Apellido
	cliente.Email = req.Email
	cliente.Telefono = req.Telefono
	cliente.Documento = req.Documento
	if err := s.db.Save(&cliente).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update cliente")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cliente"})
		return
	}

	c.JSON(http.StatusOK, cliente)
}

func (s *Server) deleteCliente(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := s.db.Delete(&models.Cliente{}, id).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete cliente")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cliente"})
		return
	}
	c.Status(http.StatusNoContent)
}

// EntrenadorRequest creates or updates a trainer record
type EntrenadorRequest struct {
	Nombre       string `json:"nombre" binding:"required"`
	Apellido     string `json:"apellido"`
	Especialidad string `json:"especialidad"`
	Email        string `json:"email" binding:"required,email"`
	Telefono     string `json:"telefono" validate:"telefono"`
}

func (s *Server) listEntrenadores(c *gin.Context) {
	var entrenadores []models.Entrenador
	if err := s.db.Order("id").Find(&entrenadores).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list entrenadores")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, entrenadores)
}

func (s *Server) getEntrenador(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var entrenador models.Entrenador
	if err := models.FindByID(s.db, id, &entrenador); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entrenador not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find entrenador")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, entrenador)
}

func (s *Server) createEntrenador(c *gin.Context) {
	var req EntrenadorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entrenador := models.Entrenador{
		Nombre:       req.Nombre,
		Apellido:     req.Apellido,
		Especialidad: req.Especialidad,
		Email:        req.Email,
		Telefono:     req.Telefono,
	}
	if err := s.db.Create(&entrenador).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create entrenador")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entrenador"})
		return
	}

	c.JSON(http.StatusCreated, entrenador)
}

func (s *Server) updateEntrenador(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req EntrenadorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var entrenador models.Entrenador
	if err := models.FindByID(s.db, id, &entrenador); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entrenador not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find entrenador")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	entrenador.Nombre = req.Nombre
	entrenador.Apellido = req.Apellido
	entrenador.Especialidad = req.Especialidad
	entrenador.Email = req.Email
	entrenador.Telefono = req.Telefono
	if err := s.db.Save(&entrenador).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update entrenador")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update entrenador"})
		return
	}

	c.JSON(http.StatusOK, entrenador)
}

func (s *Server) deleteEntrenador(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := s.db.Delete(&models.Entrenador{}, id).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete entrenador")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entrenador"})
		return
	}
	c.Status(http.StatusNoContent)
}
