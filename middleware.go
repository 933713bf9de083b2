package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"synergyApi/synergy"
)

const (
	requestIDHeader = "X-Request-ID"
	credentialsKey  = "credentials"
)

// RequestLogger tags every request with an id and logs its outcome.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Set("requestID", id)

		c.Next()

		logger.Info("request",
			zap.String("id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// AuthMiddleware reads the per-request district credentials: HTTP Basic
// for the student login and X-Synergy-Host for the district.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok || username == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid credentials"})
			return
		}
		var h hostHeader
		if err := c.ShouldBindHeader(&h); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid X-Synergy-Host header"})
			return
		}
		c.Set(credentialsKey, synergy.Credentials{
			Username: username,
			Password: password,
			Host:     synergy.NormalizeHost(h.Host),
		})
		c.Next()
	}
}

func credentials(c *gin.Context) synergy.Credentials {
	creds, _ := c.MustGet(credentialsKey).(synergy.Credentials)
	return creds
}

// registerValidators adds the districthost rule to gin's validator.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("districthost", validateDistrictHost)
	}
}

func validateDistrictHost(fl validator.FieldLevel) bool {
	host := synergy.NormalizeHost(fl.Field().String())
	return host != "" && !strings.ContainsAny(host, " \t\r\n/?#")
}
