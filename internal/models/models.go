package models

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// Account roles and entity state values used across the API. Stored
// uppercase; comparisons elsewhere go through auth.NormalizeRole.
const (
	EstadoCanchaDisponible    = "DISPONIBLE"
	EstadoCanchaMantenimiento = "MANTENIMIENTO"
	EstadoCanchaInactiva      = "INACTIVA"

	TipoCanchaFutbol6 = "FUTBOL_6"
	TipoCanchaPadel   = "PADEL"

	EstadoReservaPendiente  = "PENDIENTE"
	EstadoReservaConfirmada = "CONFIRMADA"
	EstadoReservaCancelada  = "CANCELADA"

	EstadoSolicitudPendiente = "PENDIENTE"
	EstadoSolicitudAceptada  = "ACEPTADA"
	EstadoSolicitudRechazada = "RECHAZADA"
)

// MaxCanchas is the fixed number of courts at the sports center.
const MaxCanchas = 4

// Usuario is the credential record behind every account. The identifier a
// user logs in with is either the usuario handle (admins) or the email.
type Usuario struct {
	ID           uint      `json:"idUsuario" gorm:"primaryKey"`
	Usuario      *string   `json:"usuario,omitempty" gorm:"uniqueIndex"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Nombre       string    `json:"nombre"`
	Rol          string    `json:"rol" gorm:"not null"`
	ClienteID    *uint     `json:"idCliente,omitempty"`
	EntrenadorID *uint     `json:"idEntrenador,omitempty"`
	CreatedAt    time.Time `json:"creadoEn" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"-" gorm:"autoUpdateTime"`
}

// Administrador is the staff directory entry managed from the admin area.
type Administrador struct {
	ID        uint      `json:"idAdministrador" gorm:"primaryKey"`
	Nombre    string    `json:"nombre" gorm:"not null"`
	Apellido  string    `json:"apellido"`
	Usuario   string    `json:"usuario" gorm:"uniqueIndex;not null"`
	Rol       string    `json:"rol" gorm:"not null"`
	CreatedAt time.Time `json:"-" gorm:"autoCreateTime"`
}

// Cliente is a customer who books courts and training sessions.
type Cliente struct {
	ID        uint      `json:"idCliente" gorm:"primaryKey"`
	Nombre    string    `json:"nombre" gorm:"not null"`
	Apellido  string    `json:"apellido"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Telefono  string    `json:"telefono,omitempty"`
	Documento string    `json:"documento,omitempty"`
	CreatedAt time.Time `json:"-" gorm:"autoCreateTime"`
}

// Entrenador is a trainer offering availability slots and accepting
// training requests.
type Entrenador struct {
	ID           uint      `json:"idEntrenador" gorm:"primaryKey"`
	Nombre       string    `json:"nombre" gorm:"not null"`
	Apellido     string    `json:"apellido"`
	Especialidad string    `json:"especialidad"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Telefono     string    `json:"telefono"`
	CreatedAt    time.Time `json:"creadoEn" gorm:"autoCreateTime"`
}

// Cancha is one of the center's courts.
type Cancha struct {
	ID          uint   `json:"idCancha" gorm:"primaryKey"`
	Nombre      string `json:"nombre" gorm:"uniqueIndex;not null"`
	Tipo        string `json:"tipo" gorm:"not null"`
	Estado      string `json:"estado" gorm:"not null;default:DISPONIBLE"`
	Descripcion string `json:"descripcion"`
}

// Tarifa is an hourly price for a service type. Only vigente tarifas are
// offered when creating reservations.
type Tarifa struct {
	ID           uint      `json:"idTarifa" gorm:"primaryKey"`
	TipoServicio string    `json:"tipoServicio" gorm:"not null"`
	PrecioHora   float64   `json:"precioHora" gorm:"not null"`
	Vigente      bool      `json:"vigente" gorm:"not null;default:true"`
	AdminID      *uint     `json:"idAdmin,omitempty"`
	CreatedAt    time.Time `json:"creadoEn" gorm:"autoCreateTime"`
}

// Reserva is a court booking. TotalPagar is taken as sent: pricing and
// conflict checking belong to back-office processes outside this service.
type Reserva struct {
	ID                uint      `json:"idReserva" gorm:"primaryKey"`
	Codigo            string    `json:"codigo" gorm:"uniqueIndex;type:varchar(26)"`
	ClienteID         uint      `json:"clienteId" gorm:"not null;index"`
	CanchaID          uint      `json:"canchaId" gorm:"not null;index"`
	TarifaID          *uint     `json:"tarifaId,omitempty"`
	Inicio            time.Time `json:"inicio" gorm:"not null"`
	Fin               time.Time `json:"fin" gorm:"not null"`
	IncluirEntrenador bool      `json:"incluirEntrenador"`
	Estado            string    `json:"estado" gorm:"not null;default:PENDIENTE"`
	TotalPagar        float64   `json:"totalPagar"`
	CreadoPorAdminID  *uint     `json:"creadoPorAdminId,omitempty"`
	CreatedAt         time.Time `json:"creadoEn" gorm:"autoCreateTime"`

	Cliente Cliente `json:"-" gorm:"foreignKey:ClienteID;constraint:OnDelete:CASCADE"`
	Cancha  Cancha  `json:"-" gorm:"foreignKey:CanchaID"`
}

// BeforeCreate assigns the booking code
func (r *Reserva) BeforeCreate(tx *gorm.DB) error {
	if r.Codigo == "" {
		r.Codigo = ulid.Make().String()
	}
	return nil
}

// Pago is a payment against a reservation.
type Pago struct {
	ID                  uint      `json:"idPago" gorm:"primaryKey"`
	Recibo              string    `json:"recibo" gorm:"uniqueIndex;type:varchar(26)"`
	ReservaID           uint      `json:"idReserva" gorm:"not null;index"`
	ClienteID           uint      `json:"idCliente" gorm:"not null;index"`
	Monto               float64   `json:"monto" gorm:"not null"`
	Metodo              string    `json:"metodo" gorm:"not null"`
	EstadoPago          string    `json:"estadoPago" gorm:"not null"`
	FechaPago           time.Time `json:"fechaPago" gorm:"autoCreateTime"`
	ProcesadoPorAdminID *uint     `json:"procesadoPorAdmin,omitempty"`

	Reserva Reserva `json:"-" gorm:"foreignKey:ReservaID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns the receipt code
func (p *Pago) BeforeCreate(tx *gorm.DB) error {
	if p.Recibo == "" {
		p.Recibo = ulid.Make().String()
	}
	return nil
}

// Reporte is a report request recorded by an administrator. Only the
// metadata lives here; generation happens elsewhere.
type Reporte struct {
	ID              uint      `json:"idReporte" gorm:"primaryKey"`
	AdministradorID uint      `json:"administradorId" gorm:"not null;index"`
	ReservaID       *uint     `json:"reservaId,omitempty"`
	TipoReporte     string    `json:"tipoReporte" gorm:"not null"`
	Descripcion     string    `json:"descripcion,omitempty"`
	FechaGenerado   time.Time `json:"fechaGenerado" gorm:"autoCreateTime"`
}

// Disponibilidad is a weekly availability slot published by a trainer.
type Disponibilidad struct {
	ID           uint   `json:"idDisponibilidad" gorm:"primaryKey"`
	EntrenadorID uint   `json:"idEntrenador" gorm:"not null;index"`
	DiaSemana    string `json:"diaDesSemana" gorm:"not null"`
	HoraInicio   string `json:"horaInicio" gorm:"not null"`
	HoraFin      string `json:"horaFin" gorm:"not null"`

	Entrenador Entrenador `json:"-" gorm:"foreignKey:EntrenadorID;constraint:OnDelete:CASCADE"`
}

// Solicitud is a training request from a client, optionally already
// assigned to a trainer. Unassigned PENDIENTE requests are the "pool"
// trainers pick from.
type Solicitud struct {
	ID           uint      `json:"idSolicitud" gorm:"primaryKey"`
	ClienteID    uint      `json:"idCliente" gorm:"not null;index"`
	EntrenadorID *uint     `json:"idEntrenador,omitempty" gorm:"index"`
	Inicio       time.Time `json:"inicio" gorm:"not null"`
	Fin          time.Time `json:"fin" gorm:"not null"`
	Estado       string    `json:"estado" gorm:"not null;default:PENDIENTE"`
	CreatedAt    time.Time `json:"creadoEn" gorm:"autoCreateTime"`
}

// PasswordReset is an outstanding password recovery token.
type PasswordReset struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UsuarioID uint       `json:"usuario_id" gorm:"not null;index"`
	Token     string     `json:"-" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"not null"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

// Config is the singleton server configuration row. The JWT secret is
// generated on first boot and persisted here.
type Config struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	JWTSecret string    `json:"-" gorm:"type:varchar(64);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	all := []interface{}{
		&Config{}, &Usuario{}, &Administrador{}, &Cliente{}, &Entrenador{},
		&Cancha{}, &Tarifa{}, &Reserva{}, &Pago{}, &Reporte{},
		&Disponibilidad{}, &Solicitud{}, &PasswordReset{},
	}

	return db.AutoMigrate(all...)
}

// FindByID finds a record by integer ID
func FindByID[T any](db *gorm.DB, id uint, model *T) error {
	return db.Where("id = ?", id).First(model).Error
}
