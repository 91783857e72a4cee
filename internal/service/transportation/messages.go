package transportation

import (
	"fmt"
	"strings"
	"time"
)

const deadlineLayout = "Monday, January 2, 2006 at 3:04 PM MST"

func describe(o Outcome) string {
	switch o.Kind {
	case OutcomeDeclinedNoOptions:
		return "There are no transportation options available."
	case OutcomeNotYetEligible:
		return "There are no travel options at this time."
	case OutcomeNoReimbursement:
		return "You have not been given a travel reimbursement."
	case OutcomeExpired:
		return "The deadline to respond to your travel offer has passed."
	case OutcomeFlightOffer:
		return describeReimbursement(o, "You have received a flight reimbursement!", "Thanks, we've received your receipt.")
	case OutcomeOtherOffer:
		return describeReimbursement(o, "You have received a travel reimbursement!", "Thanks, we've received your reimbursement request.")
	case OutcomeBusOffer:
		return describeBus(o)
	}
	return ""
}

func describeReimbursement(o Outcome, headline, received string) string {
	lines := []string{headline}
	if o.Amount != nil {
		lines = append(lines, fmt.Sprintf("You will be reimbursed up to $%s.", o.Amount.StringFixed(2)))
	}
	switch {
	case !o.Confirmed:
		lines = append(lines, "After you confirm your spot using the dashboard, you can use this page to upload your receipts and request reimbursement.")
	case o.Submitted:
		lines = append(lines, received)
	case o.Deadline != nil:
		lines = append(lines, "Please upload your receipts by "+formatDeadline(*o.Deadline)+".")
	}
	return strings.Join(lines, " ")
}

func describeBus(o Outcome) string {
	lines := []string{"You have been placed on a bus!"}
	bus := o.Bus
	if bus == nil {
		return lines[0]
	}

	if bus.Coordinator != nil {
		lines = append(lines, fmt.Sprintf("Your bus coordinator is %s (%s).", bus.Coordinator.Name, bus.Coordinator.Email))
	} else {
		lines = append(lines, "We will add information for your bus coordinator soon.")
	}
	if bus.Meeting != "" {
		lines = append(lines, bus.Meeting)
	}
	if bus.Location != "" {
		lines = append(lines, "Pickup location: "+bus.Location+".")
	}

	switch {
	case bus.Accepted == nil:
		if o.Deadline != nil {
			lines = append(lines, "Please RSVP by "+formatDeadline(*o.Deadline)+".")
		}
	case *bus.Accepted:
		lines = append(lines, "We've received your RSVP! You can cancel your RSVP below if your plans change.")
	default:
		lines = append(lines, "You have declined your seat on the bus.")
	}
	return strings.Join(lines, " ")
}

func formatDeadline(t time.Time) string {
	return t.UTC().Format(deadlineLayout)
}
