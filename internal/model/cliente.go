package model

import "time"

// Cliente is a registered customer. Email and Documento are unique across
// ALL rows, active or not: a soft-deleted cliente still occupies both.
type Cliente struct {
	ID        uint    `gorm:"primaryKey"`
	Nombre    string  `gorm:"size:100;not null;index"`
	Email     string  `gorm:"size:150;not null;uniqueIndex"`
	Telefono  *string `gorm:"size:20"`
	Direccion *string `gorm:"size:500"`
	Ciudad    *string `gorm:"size:100;index"`
	Documento *string `gorm:"size:20;uniqueIndex"`

	Activo                  bool      `gorm:"not null;default:true"`
	FechaCreacion           time.Time `gorm:"not null;autoCreateTime;index"`
	FechaActualizacion      time.Time `gorm:"not null;autoUpdateTime"`
	GrupoCreador            string    `gorm:"size:50;not null;index"`
	GrupoUltimaModificacion *string   `gorm:"size:50"`
}

func (Cliente) TableName() string { return "clientes" }
