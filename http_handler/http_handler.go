package http_handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"worldclock/query"
)

type HTTPHandler struct {
	orchestrator *query.Orchestrator
	apiSecret    string
}

func NewHTTPHandler(orchestrator *query.Orchestrator, apiSecret string) *HTTPHandler {
	return &HTTPHandler{
		orchestrator: orchestrator,
		apiSecret:    apiSecret,
	}
}

// Register wires the handlers onto r. Everything under /api requires the
// X-Worldclock-Secret header when a secret is configured.
func (h *HTTPHandler) Register(r *gin.Engine) {
	// display names such as "Eastern (EST/EDT)" arrive with an escaped slash
	r.UseRawPath = true
	r.UnescapePathValues = true

	r.GET("/health", h.GetHealth)

	apiGroup := r.Group("/api", h.AuthRequired())
	apiGroup.GET("/zones", h.GetFixedZones)
	apiGroup.GET("/zones/:name", h.GetZone)
	apiGroup.GET("/city", h.GetCity)
}

func (h *HTTPHandler) AuthRequired() gin.HandlerFunc {
	return func(context *gin.Context) {
		if h.apiSecret != "" {
			authHeader := context.Request.Header.Get("X-Worldclock-Secret")
			if authHeader != h.apiSecret {
				log.Errorf("Incorrect authorisation received from %s", context.ClientIP())
				context.String(http.StatusUnauthorized, "Unauthorised")
				context.Abort()
				return
			}
		}
		context.Next()
	}
}

func (h *HTTPHandler) GetHealth(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"status": "ok"})
}
