package models

import "fmt"

// Session identifies the Mini-App user a booking controller belongs to.
type Session struct {
	UserID      int
	Username    string
	Role        string
	AccessToken string
}

func (s Session) Key() string {
	return fmt.Sprintf("user:%d", s.UserID)
}
