package handler

import (
	"errors"
	"net/http"
	"strconv"

	"milhas-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// writeError maps service errors to JSON responses with the shape
// {"message": "..."}: 400 for validation, 404 for missing rows, 500
// for everything else.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"message": err.Error()})
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid " + name})
		return 0, false
	}
	return id, true
}
