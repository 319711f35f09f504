package audit

import (
	"encoding/json"
	"fmt"

	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/model"

	"gorm.io/gorm"
)

// Entrada carries everything needed to record one mutation.
// DatosAnteriores/DatosNuevos are serialized to JSON text; either may be
// nil (CREATE has no previous state).
type Entrada struct {
	Tabla           string
	IDRegistro      uint
	Operacion       Operacion
	Grupo           string
	DatosAnteriores map[string]any
	DatosNuevos     map[string]any
	Observaciones   string
}

// Recorder persists audit entries. Services call Registrar with the
// transaction that holds the entity mutation — never outside of it.
type Recorder interface {
	Registrar(tx *gorm.DB, e Entrada) error
}

type recorder struct{}

func NewRecorder() Recorder { return recorder{} }

func (recorder) Registrar(tx *gorm.DB, e Entrada) error {
	anteriores, err := serializar(e.DatosAnteriores)
	if err != nil {
		return fmt.Errorf("serializar datos_anteriores: %w", err)
	}
	nuevos, err := serializar(e.DatosNuevos)
	if err != nil {
		return fmt.Errorf("serializar datos_nuevos: %w", err)
	}

	registro := model.HistorialAuditoria{
		TablaAfectada:    e.Tabla,
		IDRegistro:       e.IDRegistro,
		Operacion:        string(e.Operacion),
		GrupoResponsable: e.Grupo,
		DatosAnteriores:  anteriores,
		DatosNuevos:      nuevos,
	}
	if e.Observaciones != "" {
		registro.Observaciones = &e.Observaciones
	}
	return tx.Create(&registro).Error
}

func serializar(datos map[string]any) (*string, error) {
	if len(datos) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(datos)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}
