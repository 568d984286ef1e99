package utils

import (
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/dto/requests"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSONBody(t *testing.T) {
	t.Run("decodes known fields", func(t *testing.T) {
		var selection requests.SlotSelection

		err := DecodeJSONBody(strings.NewReader(`{"date":"2026-10-20","slot_index":0}`), &selection)

		require.NoError(t, err)
		require.NotNil(t, selection.SlotIndex)
		assert.Equal(t, 0, *selection.SlotIndex)
		assert.NoError(t, ValidateStruct(selection))
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		var selection requests.SlotSelection

		err := DecodeJSONBody(strings.NewReader(`{"date":"2026-10-20","slot_index":0,"doctor":1}`), &selection)

		assert.Error(t, err)
	})
}

func TestParseIntURLParam(t *testing.T) {
	withParam := func(value string) *http.Request {
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add(constvars.URLParamDoctorID, value)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	}

	id, err := ParseIntURLParam(withParam("12"), constvars.URLParamDoctorID)
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	_, err = ParseIntURLParam(withParam("twelve"), constvars.URLParamDoctorID)
	assert.Error(t, err)
}

func TestBuildDoctorFilterRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?surname=Petrov&specialization=ENT&unused=1", nil)

	filter := BuildDoctorFilterRequest(req)

	assert.Equal(t, &requests.DoctorFilter{Surname: "Petrov", Specialization: "ENT"}, filter)
}
