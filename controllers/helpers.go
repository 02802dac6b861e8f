package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crm-api/errs"
	"crm-api/services"
	"crm-api/utils"
)

func getCurrentUserID(c *gin.Context) (uint, bool) {
	if v, ok := c.Get("userID"); ok {
		switch t := v.(type) {
		case int:
			return uint(t), true
		case int64:
			return uint(t), true
		case float64:
			return uint(t), true
		case uint:
			return t, true
		}
	}
	return 0, false
}

// requireUserID aborts with 401 when the auth middleware did not run.
func requireUserID(c *gin.Context) (uint, bool) {
	uid, ok := getCurrentUserID(c)
	if !ok || uid == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return 0, false
	}
	return uid, true
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// bindJSON binds the request body and writes a 400 with per-field messages on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, utils.BindingError(err))
		return false
	}
	return true
}

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid email or password"})
		return
	case errors.Is(err, services.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid or expired token"})
		return
	}

	status := errs.HTTPStatus(err)
	body := gin.H{"success": false}
	switch {
	case status >= http.StatusInternalServerError:
		body["error"] = "Internal server error"
	case errs.IsValidation(err):
		body["error"] = "Validation failed"
		body["fields"] = errs.FieldErrors(err)
	default:
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}
