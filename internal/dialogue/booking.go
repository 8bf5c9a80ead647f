package dialogue

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"flightchat/internal/domain"
)

// DateLayout is the day/month/year format used across the flight dataset
// and every date prompt.
const DateLayout = "02/01/2006"

// Picker selects one record from an alternative-date search result. The
// default takes the first record in inventory load order; no proximity
// ranking is applied.
type Picker func(candidates []domain.FlightRecord) (domain.FlightRecord, bool)

// FirstAvailable is the default Picker.
func FirstAvailable(candidates []domain.FlightRecord) (domain.FlightRecord, bool) {
	if len(candidates) == 0 {
		return domain.FlightRecord{}, false
	}
	return candidates[0], true
}

// Option configures a Dialogue.
type Option func(*Dialogue)

// WithPicker replaces the alternative-selection strategy.
func WithPicker(p Picker) Option {
	return func(d *Dialogue) { d.pick = p }
}

type state int

const (
	stateOrigin state = iota
	stateDestination
	stateTicketType
	stateDates
	stateConfirm
	stateFlexible
	stateDone
)

// availability enumerates the four mutually exclusive search outcomes for a
// return ticket. Single tickets only use noneAvailable, to mark that the
// flexibility question is pending.
type availability int

const (
	bothAvailable availability = iota
	departureOnly
	returnOnly
	noneAvailable
)

// proposal is a booking awaiting a yes/no confirmation.
type proposal struct {
	depDate string
	depID   string
	retDate string // empty for single tickets
	retID   string
}

// Dialogue is the slot-filling booking state machine. It consumes one input
// line per Advance call and emits the next prompt or the final message;
// invalid input re-issues the current state's prompt. It never mutates the
// inventory.
type Dialogue struct {
	inv    domain.Inventory
	pick   Picker
	titler cases.Caser

	state         state
	req           domain.BookingRequest
	departureDate time.Time
	returnDate    time.Time
	avail         availability
	pendingDepID  string
	pendingRetID  string
	pending       proposal
}

// New creates a dialogue positioned at the origin prompt.
func New(inv domain.Inventory, opts ...Option) *Dialogue {
	d := &Dialogue{
		inv:    inv,
		pick:   FirstAvailable,
		titler: cases.Title(language.English),
		state:  stateOrigin,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

const (
	promptOrigin       = "Please specify your origin city"
	promptDestination  = "Please specify your destination city"
	promptTicketType   = "Is this a single or return ticket? (Please type 'single' or 'return')"
	promptSingleDate   = "Please provide your departure date in DD/MM/YYYY format."
	promptReturnDates  = "Please provide your departure and return dates in the format shown (e.g., DD/MM/YYYY, DD/MM/YYYY)."
	msgDecline         = "Alright, let me know if there's anything else I can assist you with."
	msgCancelled       = "No problem, I've cancelled this booking request. Let me know if there's anything else I can assist you with."
	msgNoAlternatives  = "Sorry, there are no alternative flights available. Would you like help with something else?"
	msgNoAltReturns    = "Sorry, there are no alternative return flights available. Would you like help with something else?"
	msgNoAltDepartures = "Sorry, there are no alternative departure flights available. Would you like help with something else?"
)

// Open returns the first prompt of the dialogue.
func (d *Dialogue) Open() string { return promptOrigin }

// Done reports whether the dialogue has produced its final message.
func (d *Dialogue) Done() bool { return d.state == stateDone }

// Request returns the slots collected so far.
func (d *Dialogue) Request() domain.BookingRequest { return d.req }

// Advance consumes one line of user input and returns the dialogue's reply.
// done is true once the reply is the final message.
func (d *Dialogue) Advance(line string) (reply string, done bool) {
	input := strings.TrimSpace(line)
	if d.state.collecting() && strings.EqualFold(input, "cancel") {
		d.state = stateDone
		return msgCancelled, true
	}

	switch d.state {
	case stateOrigin:
		return d.collectOrigin(input), false
	case stateDestination:
		return d.collectDestination(input), false
	case stateTicketType:
		return d.collectTicketType(input), false
	case stateDates:
		return d.collectDates(input)
	case stateConfirm:
		return d.resolveConfirm(input), true
	case stateFlexible:
		return d.resolveFlexible(input)
	default:
		return msgDecline, true
	}
}

func (s state) collecting() bool {
	switch s {
	case stateOrigin, stateDestination, stateTicketType, stateDates:
		return true
	}
	return false
}

func (d *Dialogue) collectOrigin(input string) string {
	city := d.titler.String(input)
	if !d.inv.HasOrigin(city) {
		return fmt.Sprintf("Sorry, we do not operate flights from %s. Please try another city.\n%s", city, promptOrigin)
	}
	d.req.Origin = city
	d.state = stateDestination
	return promptDestination
}

func (d *Dialogue) collectDestination(input string) string {
	city := d.titler.String(input)
	if !d.inv.HasDestination(city) {
		return fmt.Sprintf("Sorry, we do not operate flights to %s. Please try another city.\n%s", city, promptDestination)
	}
	d.req.Destination = city
	d.state = stateTicketType
	return promptTicketType
}

func (d *Dialogue) collectTicketType(input string) string {
	switch strings.ToLower(input) {
	case string(domain.TicketSingle):
		d.req.TicketType = domain.TicketSingle
	case string(domain.TicketReturn):
		d.req.TicketType = domain.TicketReturn
	default:
		return "Sorry, I didn't understand that. Please specify if it's a single or return ticket.\n" + promptTicketType
	}
	d.state = stateDates
	if d.req.TicketType == domain.TicketSingle {
		return promptSingleDate
	}
	return promptReturnDates
}

func (d *Dialogue) collectDates(input string) (string, bool) {
	if d.req.TicketType == domain.TicketSingle {
		dep, err := time.Parse(DateLayout, input)
		if err != nil {
			return "Sorry, the date format seems incorrect. Please try again.\n" + promptSingleDate, false
		}
		d.departureDate = dep
		d.req.DepartureDate = dep.Format(DateLayout)
		return d.search()
	}

	parts := strings.Split(input, ",")
	if len(parts) != 2 {
		return "Sorry, the date format seems incorrect. Please try again with both dates separated by a comma.\n" + promptReturnDates, false
	}
	dep, errDep := time.Parse(DateLayout, strings.TrimSpace(parts[0]))
	ret, errRet := time.Parse(DateLayout, strings.TrimSpace(parts[1]))
	if errDep != nil || errRet != nil {
		return "Sorry, the date format seems incorrect. Please try again with both dates separated by a comma.\n" + promptReturnDates, false
	}
	if !ret.After(dep) {
		return "The return date must be after the departure date. Please try again.\n" + promptReturnDates, false
	}
	d.departureDate = dep
	d.returnDate = ret
	d.req.DepartureDate = dep.Format(DateLayout)
	d.req.ReturnDate = ret.Format(DateLayout)
	return d.search()
}

// search runs the availability lookups once all slots are filled and either
// proposes a booking, asks the flexibility question, or ends the dialogue.
func (d *Dialogue) search() (string, bool) {
	depMatches := d.inv.Search(d.req.Origin, d.req.Destination, d.req.DepartureDate)

	if d.req.TicketType == domain.TicketSingle {
		if len(depMatches) > 0 {
			d.pending = proposal{depDate: d.req.DepartureDate, depID: depMatches[0].FlightID}
			d.state = stateConfirm
			return fmt.Sprintf("Great! We have a flight available from %s to %s on %s. Would you like to confirm this booking? (yes/no)",
				d.req.Origin, d.req.Destination, d.req.DepartureDate), false
		}
		d.avail = noneAvailable
		d.state = stateFlexible
		return fmt.Sprintf("Unfortunately, no flights are available on %s. Are you flexible with your dates? (yes/no)", d.req.DepartureDate), false
	}

	retMatches := d.inv.Search(d.req.Destination, d.req.Origin, d.req.ReturnDate)
	switch {
	case len(depMatches) > 0 && len(retMatches) > 0:
		d.avail = bothAvailable
		d.pending = proposal{
			depDate: d.req.DepartureDate, depID: depMatches[0].FlightID,
			retDate: d.req.ReturnDate, retID: retMatches[0].FlightID,
		}
		d.state = stateConfirm
		return fmt.Sprintf("Great! We have flights available for both departure and return. Departure on %s and return on %s. Would you like to confirm this booking? (yes/no)",
			d.req.DepartureDate, d.req.ReturnDate), false
	case len(depMatches) > 0:
		d.avail = departureOnly
		d.pendingDepID = depMatches[0].FlightID
		d.state = stateFlexible
		return fmt.Sprintf("There is a flight for departure on %s but no flight for return. Are you flexible with your return date? (yes/no)", d.req.DepartureDate), false
	case len(retMatches) > 0:
		d.avail = returnOnly
		d.pendingRetID = retMatches[0].FlightID
		d.state = stateFlexible
		return fmt.Sprintf("There is a flight for return on %s but no flight for departure. Are you flexible with your departure date? (yes/no)", d.req.ReturnDate), false
	default:
		d.avail = noneAvailable
		d.state = stateFlexible
		return "Unfortunately, no flights are available for either departure or return. Are you flexible with your dates? (yes/no)", false
	}
}

// resolveConfirm terminates the dialogue on a yes/no answer to a proposal.
// Anything other than "yes" declines.
func (d *Dialogue) resolveConfirm(input string) string {
	d.state = stateDone
	if !strings.EqualFold(input, "yes") {
		return msgDecline
	}
	p := d.pending
	if p.retDate == "" {
		return fmt.Sprintf("Your booking from %s to %s on %s (Flight ID: %s) has been confirmed! Anything else I can assist you with?",
			d.req.Origin, d.req.Destination, p.depDate, p.depID)
	}
	return fmt.Sprintf("Your booking from %s to %s on %s (Flight ID: %s) and return on %s (Flight ID: %s) has been confirmed! Anything else I can assist you with?",
		d.req.Origin, d.req.Destination, p.depDate, p.depID, p.retDate, p.retID)
}

// resolveFlexible handles the yes/no flexibility answer for whichever legs
// were unavailable, running the date-relaxed searches on "yes".
func (d *Dialogue) resolveFlexible(input string) (string, bool) {
	if !strings.EqualFold(input, "yes") {
		d.state = stateDone
		return msgDecline, true
	}
	if d.req.TicketType == domain.TicketSingle {
		return d.flexSingle()
	}
	switch d.avail {
	case departureOnly:
		return d.flexReturnLeg()
	case returnOnly:
		return d.flexDepartureLeg()
	default:
		return d.flexBothLegs()
	}
}

func (d *Dialogue) flexSingle() (string, bool) {
	alt, ok := d.pick(d.inv.SearchExcludingDate(d.req.Origin, d.req.Destination, d.req.DepartureDate))
	if !ok {
		d.state = stateDone
		return msgNoAlternatives, true
	}
	d.pending = proposal{depDate: alt.DepartureDate, depID: alt.FlightID}
	d.state = stateConfirm
	return fmt.Sprintf("We have a flight available on %s. Would you like to confirm this booking? (yes/no)", alt.DepartureDate), false
}

func (d *Dialogue) flexReturnLeg() (string, bool) {
	alt, ok := d.pick(d.inv.SearchExcludingDate(d.req.Destination, d.req.Origin, d.req.ReturnDate))
	if !ok {
		d.state = stateDone
		return msgNoAltReturns, true
	}
	// Only the single picked candidate is considered; a second alternative
	// is never tried.
	if !dateAfter(alt.DepartureDate, d.departureDate) {
		d.state = stateDone
		return fmt.Sprintf("The adjusted return date (%s) is before the departure date. No valid return flights available. Would you like help with something else?", alt.DepartureDate), true
	}
	d.pending = proposal{
		depDate: d.req.DepartureDate, depID: d.pendingDepID,
		retDate: alt.DepartureDate, retID: alt.FlightID,
	}
	d.state = stateConfirm
	return fmt.Sprintf("We have a return flight available on %s. Would you like to confirm this booking? (yes/no)", alt.DepartureDate), false
}

func (d *Dialogue) flexDepartureLeg() (string, bool) {
	alt, ok := d.pick(d.inv.SearchExcludingDate(d.req.Origin, d.req.Destination, d.req.DepartureDate))
	if !ok {
		d.state = stateDone
		return msgNoAltDepartures, true
	}
	if !dateBefore(alt.DepartureDate, d.returnDate) {
		d.state = stateDone
		return fmt.Sprintf("The adjusted departure date (%s) is after the return date. No valid departure flights available. Would you like help with something else?", alt.DepartureDate), true
	}
	d.pending = proposal{
		depDate: alt.DepartureDate, depID: alt.FlightID,
		retDate: d.req.ReturnDate, retID: d.pendingRetID,
	}
	d.state = stateConfirm
	return fmt.Sprintf("We have a departure flight available on %s. Would you like to confirm this booking? (yes/no)", alt.DepartureDate), false
}

func (d *Dialogue) flexBothLegs() (string, bool) {
	altDep, okDep := d.pick(d.inv.SearchExcludingDate(d.req.Origin, d.req.Destination, d.req.DepartureDate))
	altRet, okRet := d.pick(d.inv.SearchExcludingDate(d.req.Destination, d.req.Origin, d.req.ReturnDate))
	if !okDep || !okRet {
		d.state = stateDone
		return msgNoAlternatives, true
	}
	dep, errDep := time.Parse(DateLayout, altDep.DepartureDate)
	if errDep != nil || !dateAfter(altRet.DepartureDate, dep) {
		d.state = stateDone
		return fmt.Sprintf("The adjusted return date (%s) is before the departure date. No valid flights available. Would you like help with something else?", altRet.DepartureDate), true
	}
	d.pending = proposal{
		depDate: altDep.DepartureDate, depID: altDep.FlightID,
		retDate: altRet.DepartureDate, retID: altRet.FlightID,
	}
	d.state = stateConfirm
	return fmt.Sprintf("We have flights available. Departure on %s and return on %s. Would you like to confirm this booking? (yes/no)",
		altDep.DepartureDate, altRet.DepartureDate), false
}

// dateAfter reports whether the candidate date string parses and falls
// strictly after t. Unparsable dates fail the check rather than abort the
// dialogue.
func dateAfter(candidate string, t time.Time) bool {
	parsed, err := time.Parse(DateLayout, candidate)
	return err == nil && parsed.After(t)
}

func dateBefore(candidate string, t time.Time) bool {
	parsed, err := time.Parse(DateLayout, candidate)
	return err == nil && parsed.Before(t)
}
