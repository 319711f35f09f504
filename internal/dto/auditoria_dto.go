package dto

import "time"

// Paginacion is the skip/limit window shared by the audit listings.
type Paginacion struct {
	Skip  int `form:"skip,default=0"`
	Limit int `form:"limit,default=100"`
}

type AuditoriaResponse struct {
	ID               uint      `json:"id"`
	TablaAfectada    string    `json:"tabla_afectada"`
	IDRegistro       uint      `json:"id_registro"`
	Operacion        string    `json:"operacion"`
	GrupoResponsable string    `json:"grupo_responsable"`
	DatosAnteriores  *string   `json:"datos_anteriores"`
	DatosNuevos      *string   `json:"datos_nuevos"`
	FechaOperacion   time.Time `json:"fecha_operacion"`
	Observaciones    *string   `json:"observaciones"`
}
