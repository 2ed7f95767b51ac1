package utils

import "github.com/gin-gonic/gin"

// RespondWithError writes the {success:false, message} envelope.
func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "message": message})
}

// RespondWithSuccess writes the {success:true, ...} envelope with an optional
// payload keyed by name.
func RespondWithSuccess(c *gin.Context, code int, key string, payload interface{}) {
	c.JSON(code, gin.H{"success": true, key: payload})
}

// RespondWithMessage writes {success:true, message}.
func RespondWithMessage(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": true, "message": message})
}
