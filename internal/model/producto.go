package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto is a catalog item of the tienda virtual.
// Deletion is always logical: Activo=false keeps the row addressable by ID
// and preserves its audit history.
type Producto struct {
	ID          uint    `gorm:"primaryKey"`
	Nombre      string  `gorm:"size:200;index;not null"`
	Descripcion *string `gorm:"type:text"`
	// Precio en pesos colombianos, numeric(10,2).
	Precio    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock     int             `gorm:"not null;default:0"`
	Categoria *string         `gorm:"size:100;index"`
	ImagenURL *string         `gorm:"size:500;column:imagen_url"`

	Activo                  bool      `gorm:"not null;default:true"`
	FechaCreacion           time.Time `gorm:"not null;autoCreateTime;index"`
	FechaActualizacion      time.Time `gorm:"not null;autoUpdateTime"`
	GrupoCreador            string    `gorm:"size:50;not null;index"`
	GrupoUltimaModificacion *string   `gorm:"size:50"`
}

func (Producto) TableName() string { return "productos" }
