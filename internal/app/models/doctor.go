package models

import (
	"strings"
	"unicode/utf8"
)

type Doctor struct {
	ID             int    `json:"id"`
	FirstName      string `json:"first_name"`
	Surname        string `json:"surname"`
	MiddleName     string `json:"middle_name"`
	Specialization string `json:"specialization"`
	Description    string `json:"description"`
}

// ShortName renders "Surname F. M.".
func (d Doctor) ShortName() string {
	parts := []string{d.Surname}
	for _, name := range []string{d.FirstName, d.MiddleName} {
		if name == "" {
			continue
		}
		initial, _ := utf8.DecodeRuneInString(name)
		parts = append(parts, string(initial)+".")
	}
	return strings.Join(parts, " ")
}
