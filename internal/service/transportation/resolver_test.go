package transportation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Domenick1991/hackportal/internal/domain"
)

var (
	deadline        = time.Date(2048, 11, 28, 4, 39, 47, 512_000_000, time.UTC)
	beforeDeadline  = deadline.Add(-24 * time.Hour)
	deadlineTooLate = deadline.Add(time.Hour)
)

func testRoutes() domain.BusRouteTable {
	return domain.NewBusRouteTable([]domain.BusRoute{
		{ID: "test", CoordinatorName: "Tree Hack", CoordinatorEmail: "treehack@treehacks.com", Meeting: "Hack, hack, hack!", Location: "37th & McClintock"},
		{ID: "test_no_coordinator", Meeting: "Hack, hack, hack!", Location: "37th & McClintock"},
	})
}

func flightOffer() *domain.TransportationOffer {
	return &domain.TransportationOffer{Type: domain.OfferFlight, Amount: decimal.RequireFromString("500.30"), Deadline: deadline}
}

func otherOffer() *domain.TransportationOffer {
	return &domain.TransportationOffer{Type: domain.OfferOther, Amount: decimal.RequireFromString("500.30"), Deadline: deadline}
}

func busOffer(route string) *domain.TransportationOffer {
	return &domain.TransportationOffer{Type: domain.OfferBus, RouteID: route, Deadline: deadline}
}

func TestResolve_Kinds(t *testing.T) {
	testCases := []struct {
		name string
		in   Input
		want OutcomeKind
	}{
		{
			name: "incomplete application has no travel options",
			in:   Input{Admission: domain.AdmissionIncomplete, Now: beforeDeadline},
			want: OutcomeNotYetEligible,
		},
		{
			name: "incomplete application ignores offer",
			in:   Input{Admission: domain.AdmissionIncomplete, Offer: flightOffer(), Status: domain.TransportationAvailable, Now: beforeDeadline},
			want: OutcomeNotYetEligible,
		},
		{
			name: "submitted application is not yet eligible",
			in:   Input{Admission: domain.AdmissionSubmitted, Offer: flightOffer(), Status: domain.TransportationAvailable, Now: beforeDeadline},
			want: OutcomeNotYetEligible,
		},
		{
			name: "declined admission suppresses a valid offer",
			in:   Input{Admission: domain.AdmissionDeclined, Offer: otherOffer(), Status: domain.TransportationAvailable, Now: beforeDeadline},
			want: OutcomeDeclinedNoOptions,
		},
		{
			name: "declined admission beats an accepted bus rsvp past deadline",
			in:   Input{Admission: domain.AdmissionDeclined, Offer: busOffer("test"), Status: domain.TransportationAvailable, RSVP: &domain.RSVP{Accepted: true}, Now: deadlineTooLate},
			want: OutcomeDeclinedNoOptions,
		},
		{
			name: "unavailable status without offer",
			in:   Input{Admission: domain.AdmissionConfirmed, Status: domain.TransportationUnavailable, Now: beforeDeadline},
			want: OutcomeNoReimbursement,
		},
		{
			name: "unavailable status hides a defined offer",
			in:   Input{Admission: domain.AdmissionConfirmed, Offer: otherOffer(), Status: domain.TransportationUnavailable, Now: beforeDeadline},
			want: OutcomeNoReimbursement,
		},
		{
			name: "unset status is treated as unavailable",
			in:   Input{Admission: domain.AdmissionAdmitted, Offer: flightOffer(), Now: beforeDeadline},
			want: OutcomeNoReimbursement,
		},
		{
			name: "available status without offer",
			in:   Input{Admission: domain.AdmissionConfirmed, Status: domain.TransportationAvailable, Now: beforeDeadline},
			want: OutcomeNoReimbursement,
		},
		{
			name: "flight before deadline",
			in:   Input{Admission: domain.AdmissionConfirmed, Offer: flightOffer(), Status: domain.TransportationAvailable, Now: beforeDeadline},
			want: OutcomeFlightOffer,
		},
		{
			name: "flight exactly at deadline is not expired",
			in:   Input{Admission: domain.AdmissionConfirmed, Offer: flightOffer(), Status: domain.TransportationAvailable, Now: deadline},
			want: OutcomeFlightOffer,
		},
		{
			name: "flight past deadline",
			in:   Input{Admission: domain.AdmissionConfirmed, Offer: flightOffer(), Status: domain.TransportationAvailable, Now: deadlineTooLate},
			want: OutcomeExpired,
		},
		{
			name: "flight past deadline ignores an rsvp",
			in:   Input{Admission: domain.AdmissionConfirmed, Offer: flightOffer(), Status: domain.TransportationAvailable, RSVP: &domain.RSVP{Accepted: true}, Now: deadlineTooLate},
			want: OutcomeExpired,
		},
		{
			name: "flight submitted past deadline",
			in:   Input{Admission: domain.AdmissionConfirmed, Offer: flightOffer(), Status: domain.TransportationSubmitted, Now: deadlineTooLate},
			want: OutcomeFlightOffer,
		},
		{
			name: "other past deadline",
			in:   Input{Admission: domain.AdmissionConfirmed, Offer: otherOffer(), Status: domain.TransportationAvailable, Now: deadlineTooLate},
			want: OutcomeExpired,
		},
		{
			name: "other submitted past deadline",
			in:   Input{Admission: domain.AdmissionConfirmed, Offer: otherOffer(), Status: domain.TransportationSubmitted, Now: deadlineTooLate},
			want: OutcomeOtherOffer,
		},
		{
			name: "bus before deadline",
			in:   Input{Admission: domain.AdmissionConfirmed, Offer: busOffer("test"), Status: domain.TransportationAvailable, Now: beforeDeadline},
			want: OutcomeBusOffer,
		},
		{
			name: "bus past deadline without rsvp",
			in:   Input{Admission: domain.AdmissionConfirmed, Offer: busOffer("test"), Status: domain.TransportationAvailable, Now: deadlineTooLate},
			want: OutcomeExpired,
		},
		{
			name: "bus past deadline with accepted rsvp",
			in:   Input{Admission: domain.AdmissionConfirmed, Offer: busOffer("test"), Status: domain.TransportationAvailable, RSVP: &domain.RSVP{Accepted: true}, Now: deadlineTooLate},
			want: OutcomeBusOffer,
		},
		{
			name: "bus past deadline with declined rsvp",
			in:   Input{Admission: domain.AdmissionConfirmed, Offer: busOffer("test"), Status: domain.TransportationAvailable, RSVP: &domain.RSVP{Accepted: false}, Now: deadlineTooLate},
			want: OutcomeExpired,
		},
		{
			name: "bus submitted past deadline",
			in:   Input{Admission: domain.AdmissionConfirmed, Offer: busOffer("test"), Status: domain.TransportationSubmitted, Now: deadlineTooLate},
			want: OutcomeBusOffer,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := Resolve(tc.in, testRoutes())
			assert.Equal(t, tc.want, out.Kind)
			assert.Empty(t, out.Diagnostic)
		})
	}
}

func TestResolve_FlightWording(t *testing.T) {
	admitted := Resolve(Input{Admission: domain.AdmissionAdmitted, Offer: flightOffer(), Status: domain.TransportationAvailable, Now: beforeDeadline}, testRoutes())
	require.Equal(t, OutcomeFlightOffer, admitted.Kind)
	assert.False(t, admitted.Confirmed)
	assert.False(t, admitted.Submitted)
	require.NotNil(t, admitted.Amount)
	assert.Equal(t, "500.3", admitted.Amount.String())
	assert.Equal(t, "500.30", admitted.Amount.StringFixed(2))

	confirmed := Resolve(Input{Admission: domain.AdmissionConfirmed, Offer: flightOffer(), Status: domain.TransportationAvailable, Now: beforeDeadline}, testRoutes())
	assert.True(t, confirmed.Confirmed)
	require.NotNil(t, confirmed.Deadline)
	assert.True(t, deadline.Equal(*confirmed.Deadline))
}

func TestResolve_SubmittedAcknowledgement(t *testing.T) {
	flight := Resolve(Input{Admission: domain.AdmissionConfirmed, Offer: flightOffer(), Status: domain.TransportationSubmitted, Now: deadlineTooLate}, testRoutes())
	assert.Equal(t, OutcomeFlightOffer, flight.Kind)
	assert.True(t, flight.Submitted)
	assert.Nil(t, flight.Bus)

	other := Resolve(Input{Admission: domain.AdmissionConfirmed, Offer: otherOffer(), Status: domain.TransportationSubmitted, Now: beforeDeadline}, testRoutes())
	assert.Equal(t, OutcomeOtherOffer, other.Kind)
	assert.True(t, other.Submitted)
	require.NotNil(t, other.Amount)
	assert.Equal(t, "500.30", other.Amount.StringFixed(2))
}

func TestResolve_BusPlacement(t *testing.T) {
	out := Resolve(Input{Admission: domain.AdmissionConfirmed, Offer: busOffer("test"), Status: domain.TransportationAvailable, Now: beforeDeadline}, testRoutes())
	require.Equal(t, OutcomeBusOffer, out.Kind)
	require.NotNil(t, out.Bus)
	assert.Nil(t, out.Amount)
	assert.True(t, out.Bus.RouteKnown)
	require.NotNil(t, out.Bus.Coordinator)
	assert.Equal(t, "Tree Hack", out.Bus.Coordinator.Name)
	assert.Equal(t, "treehack@treehacks.com", out.Bus.Coordinator.Email)
	assert.Equal(t, "Hack, hack, hack!", out.Bus.Meeting)
	assert.Equal(t, "37th & McClintock", out.Bus.Location)
	assert.Nil(t, out.Bus.Accepted)
}

func TestResolve_BusWithoutCoordinator(t *testing.T) {
	out := Resolve(Input{Admission: domain.AdmissionConfirmed, Offer: busOffer("test_no_coordinator"), Status: domain.TransportationAvailable, Now: beforeDeadline}, testRoutes())
	require.Equal(t, OutcomeBusOffer, out.Kind)
	assert.Nil(t, out.Bus.Coordinator)
	assert.Equal(t, "37th & McClintock", out.Bus.Location)
}

func TestResolve_BusAcceptedRSVP(t *testing.T) {
	out := Resolve(Input{Admission: domain.AdmissionConfirmed, Offer: busOffer("test"), Status: domain.TransportationAvailable, RSVP: &domain.RSVP{Accepted: true}, Now: beforeDeadline}, testRoutes())
	require.NotNil(t, out.Bus.Accepted)
	assert.True(t, *out.Bus.Accepted)

	out = Resolve(Input{Admission: domain.AdmissionConfirmed, Offer: busOffer("test"), Status: domain.TransportationAvailable, RSVP: &domain.RSVP{Accepted: false}, Now: beforeDeadline}, testRoutes())
	require.NotNil(t, out.Bus.Accepted)
	assert.False(t, *out.Bus.Accepted)
}

func TestResolve_UnknownRoute(t *testing.T) {
	out := Resolve(Input{Admission: domain.AdmissionConfirmed, Offer: busOffer("nowhere"), Status: domain.TransportationAvailable, Now: beforeDeadline}, testRoutes())
	require.Equal(t, OutcomeBusOffer, out.Kind)
	assert.False(t, out.Bus.RouteKnown)
	assert.Nil(t, out.Bus.Coordinator)
	assert.Empty(t, out.Diagnostic)
}

func TestResolve_UnrecognizedValues(t *testing.T) {
	testCases := []struct {
		name string
		in   Input
		want string
	}{
		{"admission", Input{Admission: "ON_HOLD", Offer: flightOffer(), Status: domain.TransportationAvailable, Now: beforeDeadline}, `unrecognized admission state "ON_HOLD"`},
		{"status", Input{Admission: domain.AdmissionConfirmed, Offer: flightOffer(), Status: "PENDING", Now: beforeDeadline}, `unrecognized transportation status "PENDING"`},
		{"offer type", Input{Admission: domain.AdmissionConfirmed, Offer: &domain.TransportationOffer{Type: "train", Deadline: deadline}, Status: domain.TransportationAvailable, Now: deadlineTooLate}, `unrecognized offer type "train"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := Resolve(tc.in, testRoutes())
			assert.Equal(t, OutcomeNoReimbursement, out.Kind)
			assert.Equal(t, tc.want, out.Diagnostic)
		})
	}
}
