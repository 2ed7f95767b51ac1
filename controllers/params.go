package controllers

import (
	"net/http"

	"salonease-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// pathUUID parses a uuid path parameter. A malformed id is a client error and
// must never reach the database as a cast failure.
func pathUUID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+label+" ID format")
		return uuid.Nil, false
	}
	return id, true
}
