package pexels

// Outcome classifies the last request a client made
type Outcome int

const (
	// OutcomeNone means no request has been made yet
	OutcomeNone Outcome = iota
	// OutcomeOK means the last request returned a 2xx status and a readable body
	OutcomeOK
	// OutcomeBadResponse means a response arrived but was non-2xx or unreadable
	OutcomeBadResponse
	// OutcomeTransportFailure means no response was obtained
	OutcomeTransportFailure
)

// String returns the string representation of an Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "OK"
	case OutcomeBadResponse:
		return "BAD_RESPONSE"
	case OutcomeTransportFailure:
		return "TRANSPORT_FAILURE"
	default:
		return "NONE"
	}
}

// State is an immutable snapshot of the client after its last request.
// A new snapshot replaces the old one as a whole; the fields are never
// updated individually.
type State struct {
	Outcome    Outcome
	StatusCode int

	// Body is nil unless Outcome is OutcomeOK.
	Body *Response

	Page         *int
	TotalResults *int
	PageResults  *int

	NextPage        string
	HasNextPage     bool
	PrevPage        string
	HasPreviousPage bool
}

func successState(statusCode int, body *Response) *State {
	return &State{
		Outcome:         OutcomeOK,
		StatusCode:      statusCode,
		Body:            body,
		Page:            body.Page,
		TotalResults:    body.TotalResults,
		PageResults:     body.PageResults(),
		NextPage:        body.NextPage,
		HasNextPage:     body.HasNextPage(),
		PrevPage:        body.PrevPage,
		HasPreviousPage: body.HasPreviousPage(),
	}
}

// failureState clears the cached body and both cursors.
func failureState(outcome Outcome, statusCode int) *State {
	return &State{
		Outcome:    outcome,
		StatusCode: statusCode,
	}
}
