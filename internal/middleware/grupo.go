package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const GrupoKey = "grupo"

// Grupo resolves the acting group for the request: the X-Grupo header when
// present, otherwise the configured default. The identity is not
// authenticated; it is an attribution string for the audit trail, and
// services receive it as an explicit parameter instead of reading ambient
// state.
func Grupo(porDefecto string) gin.HandlerFunc {
	return func(c *gin.Context) {
		grupo := strings.TrimSpace(c.GetHeader("X-Grupo"))
		if grupo == "" {
			grupo = porDefecto
		}
		c.Set(GrupoKey, grupo)
		c.Next()
	}
}

// GetGrupo returns the group resolved by the Grupo middleware.
func GetGrupo(c *gin.Context) string {
	return c.GetString(GrupoKey)
}
