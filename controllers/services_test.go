package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"paper-submission-api/services"

	"github.com/gin-gonic/gin"
)

func TestRespondErrorMapsDomainErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("%w: submission x", services.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("%w: duplicate assignment", services.ErrConflict), http.StatusConflict},
		{"forbidden", fmt.Errorf("%w: not the owner", services.ErrForbidden), http.StatusForbidden},
		{"invalid state", fmt.Errorf("%w: not a draft", services.ErrInvalidState), http.StatusUnprocessableEntity},
		{"external", &services.ExternalError{System: "database", Err: errors.New("connection refused")}, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tc.err)

			if w.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, w.Code)
			}
		})
	}
}
