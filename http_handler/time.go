package http_handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gopkg.in/guregu/null.v4"

	"worldclock/codec"
	"worldclock/query"
	"worldclock/zones"
)

type ApiResolvedTime struct {
	Name         string `json:"name"`
	Zone         string `json:"zone"`
	LocalTime    string `json:"local_time"`
	Abbreviation string `json:"abbreviation"`
}

type ApiFixedZone struct {
	Name         string      `json:"name"`
	Zone         string      `json:"zone"`
	LocalTime    null.String `json:"local_time"`
	Abbreviation null.String `json:"abbreviation"`
	Error        null.String `json:"error"`
}

type ApiError struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

func toApiResolvedTime(resolved query.ResolvedTime) ApiResolvedTime {
	return ApiResolvedTime{
		Name:         resolved.Name,
		Zone:         resolved.Zone,
		LocalTime:    resolved.LocalTime,
		Abbreviation: resolved.Abbreviation,
	}
}

var outcomeStatus = map[string]int{
	query.OutcomeValidation:  http.StatusBadRequest,
	query.OutcomeNotFound:    http.StatusNotFound,
	query.OutcomeSuperseded:  http.StatusConflict,
	query.OutcomeUnknownZone: http.StatusInternalServerError,
	query.OutcomeError:       http.StatusInternalServerError,
}

var outcomeMessage = map[string]string{
	query.OutcomeNotFound:    "There is no such city",
	query.OutcomeSuperseded:  "A newer search replaced this one",
	query.OutcomeUnknownZone: "Timezone is not known to this server",
	query.OutcomeError:       "Internal error",
}

func writeJSON(c *gin.Context, status int, v any) {
	body, err := codec.JSONMarshal(v)
	if err != nil {
		log.Errorf("HTTP: failed to encode response: %s", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(status, "application/json; charset=utf-8", body)
}

func writeQueryError(c *gin.Context, err error) {
	outcome := query.Classify(err)
	message, ok := outcomeMessage[outcome]
	switch {
	case errors.Is(err, zones.ErrNotFound):
		message = "There is no such fixed zone"
	case !ok:
		// validation errors are user-correctable and shown verbatim
		message = err.Error()
	}
	writeJSON(c, outcomeStatus[outcome], ApiError{Error: message, Reason: outcome})
}

func (h *HTTPHandler) GetFixedZones(c *gin.Context) {
	results := h.orchestrator.FixedZones(c.Request.Context())
	fixedZones := make([]ApiFixedZone, 0, len(results))
	for _, result := range results {
		zone := ApiFixedZone{
			Name: result.Entry.DisplayName,
			Zone: result.Entry.Zone,
		}
		if result.Err != nil {
			zone.Error = null.StringFrom(query.Classify(result.Err))
		} else {
			zone.LocalTime = null.StringFrom(result.Time.LocalTime)
			zone.Abbreviation = null.StringFrom(result.Time.Abbreviation)
		}
		fixedZones = append(fixedZones, zone)
	}
	writeJSON(c, http.StatusOK, gin.H{"zones": fixedZones})
}

func (h *HTTPHandler) GetZone(c *gin.Context) {
	name := c.Param("name")
	resolved, err := h.orchestrator.ResolveAndFormat(c.Request.Context(), query.RegistryKey(name))
	if err != nil {
		log.Debugf("GET /api/zones/%s: %s", name, err)
		writeQueryError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toApiResolvedTime(resolved))
}

func (h *HTTPHandler) GetCity(c *gin.Context) {
	city := c.Query("q")
	slot := c.Query("slot")
	resolved, err := h.orchestrator.ResolveInSlot(c.Request.Context(), slot, query.CityText(city))
	if err != nil {
		log.Debugf("GET /api/city: %s", err)
		writeQueryError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toApiResolvedTime(resolved))
}
