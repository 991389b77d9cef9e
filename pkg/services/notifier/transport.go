package notifier

import (
	"net/http"

	"github.com/estafette/estafette-ci-issues/pkg/api"
	"github.com/estafette/estafette-ci-issues/pkg/services/issues"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

func NewHandler(service Service) Handler {
	return Handler{
		service: service,
	}
}

type Handler struct {
	service Service
}

func (h *Handler) PostBuildCompleted(c *gin.Context) {

	var event api.BuildCompletedEvent
	err := c.ShouldBindJSON(&event)
	if err != nil {
		errorMessage := "Binding PostBuildCompleted body failed"
		log.Error().Err(err).Msg(errorMessage)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusText(http.StatusBadRequest), "message": errorMessage})
		return
	}

	if event.ID == "" {
		event.ID = api.GetRequestID(c)
	}

	result, err := h.service.HandleBuildCompleted(c.Request.Context(), event)
	if err != nil {
		if errors.Is(err, ErrInvalidEvent) || errors.Is(err, issues.ErrUndefinedOutcome) {
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusText(http.StatusBadRequest), "message": err.Error()})
			return
		}
		log.Error().Err(err).Msgf("Failed handling build completed event for job %v build %v", event.Job.Name, event.Build.Number)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusText(http.StatusInternalServerError), "message": "Failed handling build completed event"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetTrackedIssue(c *gin.Context) {

	jobName := c.Param("job")

	record, err := h.service.GetTrackedIssue(c.Request.Context(), jobName)
	if err != nil {
		switch {
		case errors.Is(err, ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusText(http.StatusNotFound), "message": err.Error()})
		case errors.Is(err, ErrDatabaseDisabled):
			c.JSON(http.StatusNotImplemented, gin.H{"code": http.StatusText(http.StatusNotImplemented), "message": err.Error()})
		default:
			log.Error().Err(err).Msgf("Failed retrieving tracked issue for job %v", jobName)
			c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusText(http.StatusInternalServerError), "message": "Failed retrieving tracked issue"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"job": jobName, "record": record})
}
