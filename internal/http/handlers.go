package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// HealthHandler responde el probe básico de la raíz.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Server is running"})
}

// bindErrorMessage traduce errores de binding al contrato del API:
// formato de email inválido tiene su propio mensaje, el resto se
// reporta como campos faltantes.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "email" {
				return "Invalid email format"
			}
		}
	}
	return "All fields are required"
}
