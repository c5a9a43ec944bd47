// ABOUTME: Stable enumeration codes for appointment types and negotiation statuses
// ABOUTME: Accepts legacy display strings from older snapshots and normalizes them to codes
package models

import (
	"encoding/json"
	"strings"
)

type AppointmentType string

const (
	AppointmentLocalVisit      AppointmentType = "LOCAL_VISIT"
	AppointmentVideoConference AppointmentType = "VIDEO_CONFERENCE"
	AppointmentPhoneCall       AppointmentType = "PHONE_CALL"
)

// AppointmentTypes lists every appointment type in display order.
var AppointmentTypes = []AppointmentType{
	AppointmentLocalVisit,
	AppointmentVideoConference,
	AppointmentPhoneCall,
}

var legacyAppointmentTypes = map[string]AppointmentType{
	"local visit":         AppointmentLocalVisit,
	"video conference":    AppointmentVideoConference,
	"phone/whatsapp call": AppointmentPhoneCall,
}

func (t AppointmentType) Valid() bool {
	switch t {
	case AppointmentLocalVisit, AppointmentVideoConference, AppointmentPhoneCall:
		return true
	}
	return false
}

// ParseAppointmentType accepts a code in any case or a legacy display label.
func ParseAppointmentType(s string) (AppointmentType, bool) {
	s = strings.TrimSpace(s)
	if t := AppointmentType(strings.ToUpper(s)); t.Valid() {
		return t, true
	}
	if t, ok := legacyAppointmentTypes[strings.ToLower(s)]; ok {
		return t, true
	}
	return AppointmentType(s), false
}

func (t *AppointmentType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	// Unknown values are kept verbatim so a snapshot never loses data.
	*t, _ = ParseAppointmentType(raw)
	return nil
}

type NegotiationStatus string

const (
	StatusOpen NegotiationStatus = "OPEN"
	StatusWon  NegotiationStatus = "WON"
	StatusLost NegotiationStatus = "LOST"
)

// NegotiationStatuses lists every status in lifecycle order.
var NegotiationStatuses = []NegotiationStatus{StatusOpen, StatusWon, StatusLost}

func (s NegotiationStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusWon, StatusLost:
		return true
	}
	return false
}

// ParseNegotiationStatus accepts a code or a legacy label ("Open", "Won", "Lost").
func ParseNegotiationStatus(s string) (NegotiationStatus, bool) {
	s = strings.TrimSpace(s)
	if st := NegotiationStatus(strings.ToUpper(s)); st.Valid() {
		return st, true
	}
	return NegotiationStatus(s), false
}

func (s *NegotiationStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s, _ = ParseNegotiationStatus(raw)
	return nil
}
