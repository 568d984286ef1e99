package requests

import "github.com/goccy/go-json"

type DoctorFilter struct {
	FirstName      string `json:"first_name"`
	Surname        string `json:"surname"`
	MiddleName     string `json:"middle_name"`
	Specialization string `json:"specialization"`
}

// CacheKey identifies a filter combination in the doctor directory cache.
// Each value is JSON quoted, so separators inside a value cannot collide.
func (f *DoctorFilter) CacheKey() string {
	// Marshalling a struct of strings cannot fail.
	data, _ := json.Marshal(f)
	return string(data)
}
