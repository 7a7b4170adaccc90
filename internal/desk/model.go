package desk

import "time"

// Status tracks where a message is in its lifecycle.
type Status string

const (
	// StatusNew means received, no agent has responded yet
	StatusNew Status = "new"

	// StatusInProgress means at least one agent response exists
	StatusInProgress Status = "in_progress"

	// StatusResolved means the inquiry is closed out
	StatusResolved Status = "resolved"
)

// StatusAll is the filter wildcard accepted by Rank; it is not a
// valid message status and is never persisted.
const StatusAll Status = "all"

// Urgency is the triage tier assigned to a message at ingestion.
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// Customer is a person we have received messages from. Identity is the
// exact trimmed name; dedup beyond that is the resolver's problem.
type Customer struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email,omitempty"`
	Phone       string         `json:"phone,omitempty"`
	ProfileInfo map[string]any `json:"profile_info"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Message is a single customer inquiry in the triage queue.
type Message struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	Content     string    `json:"content"`
	Urgency     Urgency   `json:"urgency_level"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	RespondedAt time.Time `json:"responded_at,omitzero"`

	// Customer is populated on reads that join the owning customer.
	Customer *Customer `json:"customer,omitempty"`
}

// Response is one agent reply on a message. Immutable once created.
type Response struct {
	ID        string    `json:"id"`
	MessageID string    `json:"message_id"`
	AgentID   string    `json:"agent_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// Agent is populated on reads that join the responding agent.
	Agent *Agent `json:"agent,omitempty"`
}

// Agent is a minimal support-agent identity.
type Agent struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CannedResponse is a pre-written reply agents can reuse.
type CannedResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	Content    string    `json:"content"`
	UsageCount int       `json:"usage_count"`
	CreatedAt  time.Time `json:"created_at"`
}
