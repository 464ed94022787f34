package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func parseExternalID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("external_id"), 10, 64)
}
