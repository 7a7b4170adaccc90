package desk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/linnemanlabs/go-core/log"
	"github.com/oklog/ulid/v2"
)

// ErrNotFound reports that a referenced record does not exist.
var ErrNotFound = errors.New("not found")

// bootstrapAgentName is used when recording a response and no agent
// has ever been provisioned.
const bootstrapAgentName = "Support Agent"

// Notifier delivers out-of-band notifications for noteworthy messages.
type Notifier interface {
	Send(ctx context.Context, m *Message) error
}

// Service is the business boundary for triage-queue operations.
type Service struct {
	store    Store
	feed     *Feed
	logger   log.Logger
	metrics  *Metrics
	notifier Notifier
}

// NewService creates a new desk service. feed, metrics, and notifier
// may be nil; the corresponding side effects are skipped.
func NewService(store Store, feed *Feed, logger log.Logger, metrics *Metrics, notifier Notifier) *Service {
	if logger == nil {
		logger = log.Nop()
	}
	return &Service{
		store:    store,
		feed:     feed,
		logger:   logger,
		metrics:  metrics,
		notifier: notifier,
	}
}

// Store exposes the underlying store for collaborators that need raw
// access (the importer resolves customers against it directly).
func (s *Service) Store() Store { return s.store }

// Feed exposes the change feed for subscription endpoints.
func (s *Service) Feed() *Feed { return s.feed }

// ListMessages returns the triage queue filtered and ranked for agent
// work order.
func (s *Service) ListMessages(ctx context.Context, query string, status Status) ([]*Message, error) {
	msgs, err := s.store.ListMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return Rank(msgs, query, status), nil
}

// GetMessage returns a single message with its responses in creation
// order.
func (s *Service) GetMessage(ctx context.Context, id string) (*Message, []*Response, bool, error) {
	m, ok, err := s.store.GetMessage(ctx, id)
	if err != nil || !ok {
		return nil, nil, ok, err
	}
	responses, err := s.store.ListResponses(ctx, id)
	if err != nil {
		return nil, nil, false, fmt.Errorf("list responses: %w", err)
	}
	return m, responses, true, nil
}

// CreateMessage stores a new message in state new and fires the change
// feed plus, for high urgency, the notifier. Used by both the importer
// and direct single-message intake.
func (s *Service) CreateMessage(ctx context.Context, customerID, content string, urgency Urgency) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("message content is required")
	}

	m := &Message{
		ID:         ulid.Make().String(),
		CustomerID: customerID,
		Content:    content,
		Urgency:    urgency,
		Status:     StatusNew,
		CreatedAt:  time.Now(),
	}
	if err := s.store.CreateMessage(ctx, m); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	if s.metrics != nil {
		s.metrics.MessagesTotal.WithLabelValues(string(urgency)).Inc()
	}
	s.publish()

	if urgency == UrgencyHigh && s.notifier != nil {
		// best effort, never fails the ingest path
		if err := s.notifier.Send(ctx, m); err != nil {
			s.logger.Warn(ctx, "high urgency notification failed", "message_id", m.ID, "error", err)
		}
	}

	return m, nil
}

// Respond records an agent response on a message. The first response
// moves the message to in_progress and stamps responded_at; later
// responses leave both untouched. If no agent exists one is
// auto-provisioned.
func (s *Service) Respond(ctx context.Context, messageID, content string) (*Response, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("response content is required")
	}

	m, ok, err := s.store.GetMessage(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("message %s: %w", messageID, ErrNotFound)
	}

	agent, err := s.ensureAgent(ctx)
	if err != nil {
		return nil, err
	}

	r := &Response{
		ID:        ulid.Make().String(),
		MessageID: messageID,
		AgentID:   agent.ID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateResponse(ctx, r); err != nil {
		return nil, fmt.Errorf("create response: %w", err)
	}

	if m.RespondedAt.IsZero() {
		m.Status = StatusInProgress
		m.RespondedAt = r.CreatedAt
		if err := s.store.UpdateMessage(ctx, m); err != nil {
			return nil, fmt.Errorf("update message status: %w", err)
		}
	}

	if s.metrics != nil {
		s.metrics.ResponsesTotal.Inc()
	}
	s.publish()

	s.logger.Info(ctx, "response recorded",
		"message_id", messageID,
		"agent_id", agent.ID,
		"status", m.Status,
	)
	return r, nil
}

// Resolve marks a message resolved.
func (s *Service) Resolve(ctx context.Context, messageID string) error {
	m, ok, err := s.store.GetMessage(ctx, messageID)
	if err != nil {
		return fmt.Errorf("get message: %w", err)
	}
	if !ok {
		return fmt.Errorf("message %s: %w", messageID, ErrNotFound)
	}

	if m.Status == StatusResolved {
		return nil
	}
	m.Status = StatusResolved
	if err := s.store.UpdateMessage(ctx, m); err != nil {
		return fmt.Errorf("update message status: %w", err)
	}

	s.publish()
	return nil
}

// CreateCannedResponse stores a new quick response with a zero usage
// count.
func (s *Service) CreateCannedResponse(ctx context.Context, title, category, content string) (*CannedResponse, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, fmt.Errorf("canned response title and content are required")
	}

	cr := &CannedResponse{
		ID:        ulid.Make().String(),
		Title:     title,
		Category:  strings.TrimSpace(category),
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateCannedResponse(ctx, cr); err != nil {
		return nil, fmt.Errorf("create canned response: %w", err)
	}
	return cr, nil
}

// ListCannedResponses returns quick responses ordered by usage count
// descending.
func (s *Service) ListCannedResponses(ctx context.Context) ([]*CannedResponse, error) {
	return s.store.ListCannedResponses(ctx)
}

// UseCannedResponse increments a canned response's usage counter and
// returns its content. A failed increment does not block reuse.
func (s *Service) UseCannedResponse(ctx context.Context, id string) (*CannedResponse, bool, error) {
	cr, ok, err := s.store.GetCannedResponse(ctx, id)
	if err != nil || !ok {
		return nil, ok, err
	}
	if err := s.store.IncrementCannedUsage(ctx, id); err != nil {
		s.logger.Warn(ctx, "canned usage increment failed", "canned_id", id, "error", err)
	}
	return cr, true, nil
}

// ensureAgent returns any existing agent, provisioning a default one
// when the table is empty. Bootstrap policy, not identity management.
func (s *Service) ensureAgent(ctx context.Context) (*Agent, error) {
	agent, ok, err := s.store.FindAnyAgent(ctx)
	if err != nil {
		return nil, fmt.Errorf("find agent: %w", err)
	}
	if ok {
		return agent, nil
	}

	agent = &Agent{
		ID:        ulid.Make().String(),
		Name:      bootstrapAgentName,
		Status:    "online",
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateAgent(ctx, agent); err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}
	s.logger.Info(ctx, "auto-provisioned agent", "agent_id", agent.ID)
	return agent, nil
}

func (s *Service) publish() {
	if s.feed != nil {
		s.feed.Publish()
	}
}
