package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdmissionState is set by the admission pipeline and is read-only here.
type AdmissionState string

const (
	AdmissionIncomplete AdmissionState = "INCOMPLETE"
	AdmissionSubmitted  AdmissionState = "SUBMITTED"
	AdmissionWaitlisted AdmissionState = "WAITLISTED"
	AdmissionRejected   AdmissionState = "REJECTED"
	AdmissionAdmitted   AdmissionState = "ADMITTED"
	AdmissionConfirmed  AdmissionState = "ADMISSION_CONFIRMED"
	AdmissionDeclined   AdmissionState = "ADMISSION_DECLINED"
)

func (s AdmissionState) Known() bool {
	switch s {
	case AdmissionIncomplete, AdmissionSubmitted, AdmissionWaitlisted, AdmissionRejected,
		AdmissionAdmitted, AdmissionConfirmed, AdmissionDeclined:
		return true
	}
	return false
}

// Admitted reports whether the participant has reached ADMITTED or a later
// accepted state.
func (s AdmissionState) Admitted() bool {
	return s == AdmissionAdmitted || s == AdmissionConfirmed
}

type TransportationStatus string

const (
	TransportationUnset       TransportationStatus = ""
	TransportationUnavailable TransportationStatus = "UNAVAILABLE"
	TransportationAvailable   TransportationStatus = "AVAILABLE"
	TransportationSubmitted   TransportationStatus = "SUBMITTED"
)

func (s TransportationStatus) Known() bool {
	switch s {
	case TransportationUnset, TransportationUnavailable, TransportationAvailable, TransportationSubmitted:
		return true
	}
	return false
}

type OfferType string

const (
	OfferFlight OfferType = "flight"
	OfferBus    OfferType = "bus"
	OfferOther  OfferType = "other"
)

func (t OfferType) Known() bool {
	return t == OfferFlight || t == OfferBus || t == OfferOther
}

// TransportationOffer is issued by an administrator. Amount is set for flight
// and other offers, RouteID for bus offers.
type TransportationOffer struct {
	Type     OfferType       `json:"type"`
	Deadline time.Time       `json:"deadline"`
	Amount   decimal.Decimal `json:"amount"`
	RouteID  string          `json:"route_id,omitempty"`
}

// RSVP is the participant's answer to a bus placement. A nil *RSVP means the
// participant has not responded yet.
type RSVP struct {
	Accepted bool `json:"accepted"`
}

type Profile struct {
	ID                   string
	Email                string
	Admission            AdmissionState
	TransportationStatus TransportationStatus
	Offer                *TransportationOffer
	RSVP                 *RSVP
	UpdatedAt            time.Time
}
