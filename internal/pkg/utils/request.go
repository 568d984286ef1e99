package utils

import (
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/dto/requests"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

func DecodeJSONBody(body io.Reader, dst interface{}) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func ParseIntURLParam(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}

func BuildDoctorFilterRequest(r *http.Request) *requests.DoctorFilter {
	query := r.URL.Query()
	return &requests.DoctorFilter{
		FirstName:      query.Get(constvars.QueryParamFirstName),
		Surname:        query.Get(constvars.QueryParamSurname),
		MiddleName:     query.Get(constvars.QueryParamMiddleName),
		Specialization: query.Get(constvars.QueryParamSpecialization),
	}
}
