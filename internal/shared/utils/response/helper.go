package response

import "github.com/gin-gonic/gin"

func RespondJSON(c *gin.Context, success bool, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Success:    success,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}
