package desk

import "context"

// Store is the persistence interface for the triage queue.
//
// FindCustomerByName matches on the exact trimmed name. ListMessages
// returns messages newest-first with the owning customer joined.
// ListResponses returns responses oldest-first with the agent joined.
type Store interface {
	FindCustomerByName(ctx context.Context, name string) (*Customer, bool, error)
	GetCustomer(ctx context.Context, id string) (*Customer, bool, error)
	CreateCustomer(ctx context.Context, c *Customer) error

	CreateMessage(ctx context.Context, m *Message) error
	GetMessage(ctx context.Context, id string) (*Message, bool, error)
	ListMessages(ctx context.Context) ([]*Message, error)
	UpdateMessage(ctx context.Context, m *Message) error

	CreateResponse(ctx context.Context, r *Response) error
	ListResponses(ctx context.Context, messageID string) ([]*Response, error)

	FindAnyAgent(ctx context.Context) (*Agent, bool, error)
	CreateAgent(ctx context.Context, a *Agent) error

	CreateCannedResponse(ctx context.Context, cr *CannedResponse) error
	ListCannedResponses(ctx context.Context) ([]*CannedResponse, error)
	GetCannedResponse(ctx context.Context, id string) (*CannedResponse, bool, error)
	IncrementCannedUsage(ctx context.Context, id string) error
}
