package handler

import (
	"net/http"

	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/apierror"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/dto"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/service"

	"github.com/gin-gonic/gin"
)

// AuditoriaHandler serves the read-only audit browsing endpoints.
type AuditoriaHandler struct{ svc service.AuditoriaService }

func NewAuditoriaHandler(svc service.AuditoriaService) *AuditoriaHandler {
	return &AuditoriaHandler{svc: svc}
}

func bindPaginacion(c *gin.Context) (dto.Paginacion, bool) {
	var pag dto.Paginacion
	if err := c.ShouldBindQuery(&pag); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return pag, false
	}
	return pag, true
}

func (h *AuditoriaHandler) Listar(c *gin.Context) {
	pag, ok := bindPaginacion(c)
	if !ok {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), pag)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuditoriaHandler) PorGrupo(c *gin.Context) {
	pag, ok := bindPaginacion(c)
	if !ok {
		return
	}
	resp, err := h.svc.PorGrupo(c.Request.Context(), c.Param("grupo"), pag)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuditoriaHandler) PorTabla(c *gin.Context) {
	pag, ok := bindPaginacion(c)
	if !ok {
		return
	}
	resp, err := h.svc.PorTabla(c.Request.Context(), c.Param("tabla"), pag)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuditoriaHandler) PorOperacion(c *gin.Context) {
	pag, ok := bindPaginacion(c)
	if !ok {
		return
	}
	resp, err := h.svc.PorOperacion(c.Request.Context(), c.Param("operacion"), pag)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuditoriaHandler) PorRegistro(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.PorRegistro(c.Request.Context(), c.Param("tabla"), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
