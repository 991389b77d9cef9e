package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/estafette/estafette-ci-issues/pkg/api"
	"github.com/estafette/estafette-ci-issues/pkg/services/notifier"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestConfigureGinGonic(t *testing.T) {
	t.Run("DoesNotPanic", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		config := &api.APIConfig{
			APIServer: &api.APIServerConfig{
				APIKey: "abc",
			},
		}

		notifierService := notifier.NewMockService(ctrl)

		// act
		_ = configureGinGonic(config, notifier.NewHandler(notifierService))
	})

	t.Run("ServesLiveness", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		config := &api.APIConfig{
			APIServer: &api.APIServerConfig{},
		}

		router := configureGinGonic(config, notifier.NewHandler(notifier.NewMockService(ctrl)))
		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/liveness", nil)

		// act
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "I'm alive!", recorder.Body.String())
	})

	t.Run("RejectsBuildCompletedWithoutAPIKey", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		config := &api.APIConfig{
			APIServer: &api.APIServerConfig{
				APIKey: "abc",
			},
		}

		router := configureGinGonic(config, notifier.NewHandler(notifier.NewMockService(ctrl)))
		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPost, "/api/builds/completed", nil)

		// act
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
