package domain

// QAEntry is a single question/answer pair from the small-talk or QnA
// datasets. Questions are lowercased on load; answers may contain a {name}
// placeholder substituted at response time.
type QAEntry struct {
	Question string
	Answer   string
}

// FlightRecord is one row of the flight inventory. DepartureDate keeps the
// dataset's DD/MM/YYYY string form; availability matching is exact on that
// string.
type FlightRecord struct {
	Origin        string
	Destination   string
	DepartureDate string
	FlightID      string
}

// TicketType distinguishes one-way from round-trip bookings.
type TicketType string

const (
	TicketSingle TicketType = "single"
	TicketReturn TicketType = "return"
)

// BookingRequest holds the slots collected by one booking dialogue. It lives
// only for the duration of that dialogue. ReturnDate is empty for single
// tickets and strictly after DepartureDate for return tickets.
type BookingRequest struct {
	Origin        string
	Destination   string
	TicketType    TicketType
	DepartureDate string
	ReturnDate    string
}

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

// Index answers nearest-neighbor lookups over the QnA corpus.
type Index interface {
	BestMatch(query string) (answer string, score float64)
}

// Inventory exposes route/date search over the loaded flight records.
// City comparisons are case-insensitive; results keep load order.
type Inventory interface {
	Search(origin, destination, date string) []FlightRecord
	SearchExcludingDate(origin, destination, excluded string) []FlightRecord
	HasOrigin(city string) bool
	HasDestination(city string) bool
}
