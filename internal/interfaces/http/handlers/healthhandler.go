package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gorm.io/gorm"

	"github.com/bizcompare/bizcompare/internal/shared/utils"
)

type HealthHandler struct {
	readDB *gorm.DB
}

func NewHealthHandler(readDB *gorm.DB) *HealthHandler {
	return &HealthHandler{readDB: readDB}
}

// Check reports liveness. The database probe is best-effort: the
// service can still serve cached views when MySQL is briefly away, so
// a failed ping degrades the status instead of failing the endpoint.
func (h *HealthHandler) Check(c *gin.Context) {
	status := "ok"
	database := "ok"

	if h.readDB != nil {
		sqlDB, err := h.readDB.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status = "degraded"
			database = "unreachable"
		}
	}

	utils.SuccessResponse(c, http.StatusOK, "health check", gin.H{
		"status":   status,
		"database": database,
	})
}
