package server

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/courtly-dev/courtly/internal/auth"
	"github.com/courtly-dev/courtly/internal/models"
	"github.com/courtly-dev/courtly/internal/tasks"
)

// LoginRequest is the login body: identifier is the admin usuario handle
// or the account email.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// LoginResponse mirrors the wire contract the front-end stores as its
// session record.
type LoginResponse struct {
	Token        string `json:"token"`
	IDUsuario    uint   `json:"idUsuario"`
	Nombre       string `json:"nombre"`
	Rol          string `json:"rol"`
	IDCliente    *uint  `json:"idCliente,omitempty"`
	IDEntrenador *uint  `json:"idEntrenador,omitempty"`
}

// RegistroRequest is the self-registration body. Usuario is only set when
// registering an ADMIN account.
type RegistroRequest struct {
	Nombre    string `json:"nombre" binding:"required"`
	Apellido  string `json:"apellido"`
	Usuario   string `json:"usuario"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Rol       string `json:"rol" binding:"required"`
	Telefono  string `json:"telefono" validate:"telefono"`
	Documento string `json:"documento" validate:"documento"`
}

// RegistroResponse reports the outcome of a registration attempt
type RegistroResponse struct {
	Message string          `json:"message"`
	Success bool            `json:"success"`
	Usuario *models.Usuario `json:"usuario,omitempty"`
}

func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var usuario models.Usuario
	identifier := strings.TrimSpace(req.Identifier)
	err := s.db.Where("usuario = ? OR email = ?", identifier, strings.ToLower(identifier)).
		First(&usuario).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := auth.VerifyPassword(req.Password, usuario.PasswordHash); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(usuario.ID, usuario.Nombre, usuario.Rol, usuario.ClienteID, usuario.EntrenadorID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	s.logger.Info().Uint("user_id", usuario.ID).Str("rol", usuario.Rol).Msg("User logged in")

	c.JSON(http.StatusOK, LoginResponse{
		Token:        token,
		IDUsuario:    usuario.ID,
		Nombre:       usuario.Nombre,
		Rol:          string(auth.NormalizeRole(usuario.Rol)),
		IDCliente:    usuario.ClienteID,
		IDEntrenador: usuario.EntrenadorID,
	})
}

func (s *Server) registro(c *gin.Context) {
	var req RegistroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rol := auth.NormalizeRole(req.Rol)
	if !auth.KnownRole(string(rol)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}
	if rol == auth.RoleAdmin && req.Usuario == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Admin accounts require a usuario handle"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := s.db.Model(&models.Usuario{}).Where("email = ?", email).Count(&count).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to check email availability")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, RegistroResponse{Message: "Email already registered", Success: false})
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	usuario := models.Usuario{
		Email:        email,
		PasswordHash: passwordHash,
		Nombre:       req.Nombre,
		Rol:          string(rol),
	}
	if req.Usuario != "" {
		handle := req.Usuario
		usuario.Usuario = &handle
	}

	// Create the role row and the credential row together.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		switch rol {
		case auth.RoleCliente:
			cliente := models.Cliente{
				Nombre:    req.Nombre,
				Apellido:  req.Apellido,
				Email:     email,
				Telefono:  req.Telefono,
				Documento: req.Documento,
			}
			if err := tx.Create(&cliente).Error; err != nil {
				return err
			}
			usuario.ClienteID = &cliente.ID
		case auth.RoleEntrenador:
			entrenador := models.Entrenador{
				Nombre:   req.Nombre,
				Apellido: req.Apellido,
				Email:    email,
				Telefono: req.Telefono,
			}
			if err := tx.Create(&entrenador).Error; err != nil {
				return err
			}
			usuario.EntrenadorID = &entrenador.ID
		case auth.RoleAdmin:
			admin := models.Administrador{
				Nombre:   req.Nombre,
				Apellido: req.Apellido,
				Usuario:  req.Usuario,
				Rol:      string(auth.RoleAdmin),
			}
			if err := tx.Create(&admin).Error; err != nil {
				return err
			}
		}
		return tx.Create(&usuario).Error
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create account")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	s.logger.Info().Uint("user_id", usuario.ID).Str("rol", string(rol)).Msg("Account registered")

	c.JSON(http.StatusCreated, RegistroResponse{
		Message: "Account created",
		Success: true,
		Usuario: &usuario,
	})
}

func (s *Server) usuarioDisponible(c *gin.Context) {
	handle := c.Param("usuario")

	var count int64
	if err := s.db.Model(&models.Usuario{}).Where("usuario = ?", handle).Count(&count).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to check usuario availability")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, count == 0)
}

func (s *Server) emailDisponible(c *gin.Context) {
	email := strings.ToLower(c.Param("email"))

	var count int64
	if err := s.db.Model(&models.Usuario{}).Where("email = ?", email).Count(&count).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to check email availability")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, count == 0)
}

func (s *Server) getCurrentUser(c *gin.Context) {
	claims, exists := GetSessionClaims(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var usuario models.Usuario
	if err := s.db.Where("id = ?", claims.UserID).First(&usuario).Error; err != nil {
		s.logger.Error().Err(err).Uint("user_id", claims.UserID).Msg("Failed to find user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, usuario)
}

// PerfilRequest updates the display fields of the calling account
type PerfilRequest struct {
	Nombre   string `json:"nombre" binding:"required"`
	Apellido string `json:"apellido"`
	Telefono string `json:"telefono" validate:"telefono"`
}

func (s *Server) actualizarPerfil(c *gin.Context) {
	claims, _ := GetSessionClaims(c)

	var req PerfilRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var usuario models.Usuario
	if err := s.db.Where("id = ?", claims.UserID).First(&usuario).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&usuario).Update("nombre", req.Nombre).Error; err != nil {
			return err
		}
		// Propagate to the linked role row so directory listings stay
		// consistent with the credential record.
		if usuario.ClienteID != nil {
			return tx.Model(&models.Cliente{}).Where("id = ?", *usuario.ClienteID).
				Updates(map[string]interface{}{"nombre": req.Nombre, "apellido": req.Apellido, "telefono": req.Telefono}).Error
		}
		if usuario.EntrenadorID != nil {
			return tx.Model(&models.Entrenador{}).Where("id = ?", *usuario.EntrenadorID).
				Updates(map[string]interface{}{"nombre": req.Nombre, "apellido": req.Apellido, "telefono": req.Telefono}).Error
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to update profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	usuario.Nombre = req.Nombre
	c.JSON(http.StatusOK, usuario)
}

// CambiarPasswordRequest carries a password change
type CambiarPasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

func (s *Server) cambiarPassword(c *gin.Context) {
	claims, _ := GetSessionClaims(c)

	var req CambiarPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var usuario models.Usuario
	if err := s.db.Where("id = ?", claims.UserID).First(&usuario).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := auth.VerifyPassword(req.OldPassword, usuario.PasswordHash); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid current password"})
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
		return
	}

	if err := s.db.Model(&usuario).Update("password_hash", hash).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to change password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
		return
	}

	s.logger.Info().Uint("user_id", usuario.ID).Msg("Password changed")
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// RecuperarPasswordRequest starts a password recovery flow
type RecuperarPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

const resetTokenTTL = 30 * time.Minute

func (s *Server) recuperarPassword(c *gin.Context) {
	var req RecuperarPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The response is identical whether or not the account exists.
	respond := func() {
		c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a recovery message has been sent"})
	}

	var usuario models.Usuario
	err := s.db.Where("email = ?", strings.ToLower(req.Email)).First(&usuario).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			s.logger.Error().Err(err).Msg("Failed to look up account for recovery")
		}
		respond()
		return
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate reset token")
		respond()
		return
	}
	token := hex.EncodeToString(tokenBytes)

	reset := models.PasswordReset{
		UsuarioID: usuario.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.db.Create(&reset).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to persist reset token")
		respond()
		return
	}

	task, err := tasks.NewPasswordResetTask(usuario.ID, usuario.Email, token)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to build reset task")
		respond()
		return
	}
	if _, err := s.asynqClient.Enqueue(task); err != nil {
		s.logger.Error().Err(err).Uint("user_id", usuario.ID).Msg("Failed to enqueue reset task")
	}

	respond()
}
