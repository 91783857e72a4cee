package transportation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Domenick1991/hackportal/internal/domain"
)

// OutcomeKind is the closed set of states the transportation page can be in.
type OutcomeKind string

const (
	OutcomeDeclinedNoOptions OutcomeKind = "DECLINED_NO_OPTIONS"
	OutcomeNotYetEligible    OutcomeKind = "NOT_YET_ELIGIBLE"
	OutcomeNoReimbursement   OutcomeKind = "NO_REIMBURSEMENT"
	OutcomeExpired           OutcomeKind = "EXPIRED"
	OutcomeFlightOffer       OutcomeKind = "FLIGHT_OFFER"
	OutcomeOtherOffer        OutcomeKind = "OTHER_OFFER"
	OutcomeBusOffer          OutcomeKind = "BUS_OFFER"
)

type Input struct {
	Admission domain.AdmissionState
	Offer     *domain.TransportationOffer
	Status    domain.TransportationStatus
	RSVP      *domain.RSVP
	Now       time.Time
}

// Coordinator is nil on a BusPlacement when the route has nobody assigned.
type Coordinator struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type BusPlacement struct {
	RouteID     string       `json:"route_id"`
	RouteKnown  bool         `json:"route_known"`
	Coordinator *Coordinator `json:"coordinator,omitempty"`
	Meeting     string       `json:"meeting,omitempty"`
	Location    string       `json:"location,omitempty"`
	// Accepted is nil until the participant answers the RSVP.
	Accepted *bool `json:"accepted,omitempty"`
}

// Outcome is the tagged result of Resolve. Amount is set for flight and other
// offers, Bus for bus offers. Confirmed selects the post-confirmation wording.
type Outcome struct {
	Kind      OutcomeKind      `json:"kind"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Deadline  *time.Time       `json:"deadline,omitempty"`
	Confirmed bool             `json:"confirmed"`
	Submitted bool             `json:"submitted"`
	Bus       *BusPlacement    `json:"bus,omitempty"`
	Message   string           `json:"message"`

	// Diagnostic is set when an input carried a value the resolver does not
	// recognize. Callers log it; it is never shown to participants.
	Diagnostic string `json:"-"`
}

// Resolve picks the single display outcome for a participant's transportation
// page. Admission state beats transportation status, which beats offer
// presence, which beats the deadline.
func Resolve(in Input, routes domain.BusRouteTable) Outcome {
	out := resolve(in, routes)
	out.Message = describe(out)
	return out
}

func resolve(in Input, routes domain.BusRouteTable) Outcome {
	if !in.Admission.Known() {
		return unrecognized("admission state", string(in.Admission))
	}
	if in.Admission == domain.AdmissionDeclined {
		return Outcome{Kind: OutcomeDeclinedNoOptions}
	}
	if !in.Admission.Admitted() {
		return Outcome{Kind: OutcomeNotYetEligible}
	}

	if !in.Status.Known() {
		return unrecognized("transportation status", string(in.Status))
	}
	if in.Status == domain.TransportationUnavailable || in.Status == domain.TransportationUnset {
		return Outcome{Kind: OutcomeNoReimbursement}
	}

	offer := in.Offer
	if offer == nil {
		return Outcome{Kind: OutcomeNoReimbursement}
	}
	if !offer.Type.Known() {
		return unrecognized("offer type", string(offer.Type))
	}

	submitted := in.Status == domain.TransportationSubmitted
	if !submitted && in.Now.After(offer.Deadline) && !rsvpOverridesExpiry(offer, in.RSVP) {
		return Outcome{Kind: OutcomeExpired}
	}

	deadline := offer.Deadline
	out := Outcome{
		Deadline:  &deadline,
		Confirmed: in.Admission == domain.AdmissionConfirmed,
		Submitted: submitted,
	}

	switch offer.Type {
	case domain.OfferFlight:
		out.Kind = OutcomeFlightOffer
		out.Amount = amountOf(offer)
	case domain.OfferOther:
		out.Kind = OutcomeOtherOffer
		out.Amount = amountOf(offer)
	case domain.OfferBus:
		out.Kind = OutcomeBusOffer
		out.Bus = placement(offer.RouteID, routes, in.RSVP)
	}
	return out
}

// An accepted RSVP keeps a bus seat past the deadline. Flight and other
// offers have no such override.
func rsvpOverridesExpiry(offer *domain.TransportationOffer, rsvp *domain.RSVP) bool {
	return offer.Type == domain.OfferBus && rsvp != nil && rsvp.Accepted
}

func amountOf(offer *domain.TransportationOffer) *decimal.Decimal {
	amount := offer.Amount
	return &amount
}

func placement(routeID string, routes domain.BusRouteTable, rsvp *domain.RSVP) *BusPlacement {
	p := &BusPlacement{RouteID: routeID}
	if route, ok := routes.Lookup(routeID); ok {
		p.RouteKnown = true
		p.Meeting = route.Meeting
		p.Location = route.Location
		if route.HasCoordinator() {
			p.Coordinator = &Coordinator{Name: route.CoordinatorName, Email: route.CoordinatorEmail}
		}
	}
	if rsvp != nil {
		accepted := rsvp.Accepted
		p.Accepted = &accepted
	}
	return p
}

func unrecognized(field, value string) Outcome {
	return Outcome{
		Kind:       OutcomeNoReimbursement,
		Diagnostic: fmt.Sprintf("unrecognized %s %q", field, value),
	}
}
