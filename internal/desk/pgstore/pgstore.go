// Package pgstore provides a PostgreSQL implementation of desk.Store.
package pgstore

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linnemanlabs/frontdesk/internal/desk"
)

var tracer = otel.Tracer("github.com/linnemanlabs/frontdesk/internal/desk/pgstore")

//go:embed schema.sql
var schema string

// Store persists the triage queue in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New applies the schema to the pool's database and returns a ready Store.
func New(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

const customerColumns = `id, name, email, phone, profile_info, created_at`

const messageColumns = `m.id, m.customer_id, m.content, m.urgency_level, m.status, m.created_at, m.responded_at,
	c.id, c.name, c.email, c.phone, c.profile_info, c.created_at`

// FindCustomerByName retrieves a customer by exact name match.
func (s *Store) FindCustomerByName(ctx context.Context, name string) (*desk.Customer, bool, error) {
	ctx, span := s.startSpan(ctx, "pgstore.FindCustomerByName", "SELECT")
	defer span.End()

	query := `SELECT ` + customerColumns + ` FROM customers WHERE name = $1`
	c, err := scanCustomer(s.pool.QueryRow(ctx, query, name))
	if err != nil {
		return nil, false, recordErr(span, err)
	}
	return c, c != nil, nil
}

// GetCustomer retrieves a customer by ID.
func (s *Store) GetCustomer(ctx context.Context, id string) (*desk.Customer, bool, error) {
	ctx, span := s.startSpan(ctx, "pgstore.GetCustomer", "SELECT")
	defer span.End()

	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, false, recordErr(span, err)
	}
	return c, c != nil, nil
}

// CreateCustomer inserts a customer row.
func (s *Store) CreateCustomer(ctx context.Context, c *desk.Customer) error {
	ctx, span := s.startSpan(ctx, "pgstore.CreateCustomer", "INSERT")
	defer span.End()

	profileJSON, err := json.Marshal(c.ProfileInfo)
	if err != nil {
		return recordErr(span, fmt.Errorf("marshal profile_info: %w", err))
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO customers (id, name, email, phone, profile_info, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Name, c.Email, c.Phone, profileJSON, c.CreatedAt,
	)
	if err != nil {
		return recordErr(span, fmt.Errorf("insert customer: %w", err))
	}
	return nil
}

// CreateMessage inserts a message row.
func (s *Store) CreateMessage(ctx context.Context, m *desk.Message) error {
	ctx, span := s.startSpan(ctx, "pgstore.CreateMessage", "INSERT")
	defer span.End()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO messages (id, customer_id, content, urgency_level, status, created_at, responded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.CustomerID, m.Content, string(m.Urgency), string(m.Status), m.CreatedAt, nullableTime(m.RespondedAt),
	)
	if err != nil {
		return recordErr(span, fmt.Errorf("insert message: %w", err))
	}
	return nil
}

// GetMessage retrieves a message with its customer joined.
func (s *Store) GetMessage(ctx context.Context, id string) (*desk.Message, bool, error) {
	ctx, span := s.startSpan(ctx, "pgstore.GetMessage", "SELECT")
	defer span.End()

	query := `SELECT ` + messageColumns + `
		FROM messages m JOIN customers c ON c.id = m.customer_id
		WHERE m.id = $1`
	m, err := scanMessage(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, false, recordErr(span, err)
	}
	return m, m != nil, nil
}

// ListMessages returns all messages newest-first with customers joined.
func (s *Store) ListMessages(ctx context.Context) ([]*desk.Message, error) {
	ctx, span := s.startSpan(ctx, "pgstore.ListMessages", "SELECT")
	defer span.End()

	query := `SELECT ` + messageColumns + `
		FROM messages m JOIN customers c ON c.id = m.customer_id
		ORDER BY m.created_at DESC`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, recordErr(span, fmt.Errorf("query messages: %w", err))
	}
	defer rows.Close()

	var out []*desk.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, recordErr(span, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, recordErr(span, fmt.Errorf("iterate messages: %w", err))
	}
	return out, nil
}

// UpdateMessage updates the mutable fields of a message row.
func (s *Store) UpdateMessage(ctx context.Context, m *desk.Message) error {
	ctx, span := s.startSpan(ctx, "pgstore.UpdateMessage", "UPDATE")
	defer span.End()

	_, err := s.pool.Exec(ctx,
		`UPDATE messages SET status = $2, responded_at = $3 WHERE id = $1`,
		m.ID, string(m.Status), nullableTime(m.RespondedAt),
	)
	if err != nil {
		return recordErr(span, fmt.Errorf("update message: %w", err))
	}
	return nil
}

// CreateResponse inserts a response row.
func (s *Store) CreateResponse(ctx context.Context, r *desk.Response) error {
	ctx, span := s.startSpan(ctx, "pgstore.CreateResponse", "INSERT")
	defer span.End()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO message_responses (id, message_id, agent_id, content, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		r.ID, r.MessageID, r.AgentID, r.Content, r.CreatedAt,
	)
	if err != nil {
		return recordErr(span, fmt.Errorf("insert response: %w", err))
	}
	return nil
}

// ListResponses returns responses for a message oldest-first with
// agents joined.
func (s *Store) ListResponses(ctx context.Context, messageID string) ([]*desk.Response, error) {
	ctx, span := s.startSpan(ctx, "pgstore.ListResponses", "SELECT")
	defer span.End()

	rows, err := s.pool.Query(ctx,
		`SELECT r.id, r.message_id, r.agent_id, r.content, r.created_at,
			a.id, a.name, a.status, a.created_at
		 FROM message_responses r JOIN agents a ON a.id = r.agent_id
		 WHERE r.message_id = $1
		 ORDER BY r.created_at ASC`,
		messageID,
	)
	if err != nil {
		return nil, recordErr(span, fmt.Errorf("query responses: %w", err))
	}
	defer rows.Close()

	var out []*desk.Response
	for rows.Next() {
		var (
			r desk.Response
			a desk.Agent
		)
		if err := rows.Scan(&r.ID, &r.MessageID, &r.AgentID, &r.Content, &r.CreatedAt,
			&a.ID, &a.Name, &a.Status, &a.CreatedAt); err != nil {
			return nil, recordErr(span, fmt.Errorf("scan response: %w", err))
		}
		r.Agent = &a
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, recordErr(span, fmt.Errorf("iterate responses: %w", err))
	}
	return out, nil
}

// FindAnyAgent returns the oldest provisioned agent, if any.
func (s *Store) FindAnyAgent(ctx context.Context) (*desk.Agent, bool, error) {
	ctx, span := s.startSpan(ctx, "pgstore.FindAnyAgent", "SELECT")
	defer span.End()

	var a desk.Agent
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, status, created_at FROM agents ORDER BY created_at ASC LIMIT 1`,
	).Scan(&a.ID, &a.Name, &a.Status, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, recordErr(span, fmt.Errorf("scan agent: %w", err))
	}
	return &a, true, nil
}

// CreateAgent inserts an agent row.
func (s *Store) CreateAgent(ctx context.Context, a *desk.Agent) error {
	ctx, span := s.startSpan(ctx, "pgstore.CreateAgent", "INSERT")
	defer span.End()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO agents (id, name, status, created_at) VALUES ($1, $2, $3, $4)`,
		a.ID, a.Name, a.Status, a.CreatedAt,
	)
	if err != nil {
		return recordErr(span, fmt.Errorf("insert agent: %w", err))
	}
	return nil
}

// CreateCannedResponse inserts a canned response row.
func (s *Store) CreateCannedResponse(ctx context.Context, cr *desk.CannedResponse) error {
	ctx, span := s.startSpan(ctx, "pgstore.CreateCannedResponse", "INSERT")
	defer span.End()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO canned_responses (id, title, category, content, usage_count, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		cr.ID, cr.Title, cr.Category, cr.Content, cr.UsageCount, cr.CreatedAt,
	)
	if err != nil {
		return recordErr(span, fmt.Errorf("insert canned response: %w", err))
	}
	return nil
}

// ListCannedResponses returns canned responses most-used first.
func (s *Store) ListCannedResponses(ctx context.Context) ([]*desk.CannedResponse, error) {
	ctx, span := s.startSpan(ctx, "pgstore.ListCannedResponses", "SELECT")
	defer span.End()

	rows, err := s.pool.Query(ctx,
		`SELECT id, title, category, content, usage_count, created_at
		 FROM canned_responses ORDER BY usage_count DESC, created_at ASC`,
	)
	if err != nil {
		return nil, recordErr(span, fmt.Errorf("query canned responses: %w", err))
	}
	defer rows.Close()

	var out []*desk.CannedResponse
	for rows.Next() {
		var cr desk.CannedResponse
		if err := rows.Scan(&cr.ID, &cr.Title, &cr.Category, &cr.Content, &cr.UsageCount, &cr.CreatedAt); err != nil {
			return nil, recordErr(span, fmt.Errorf("scan canned response: %w", err))
		}
		out = append(out, &cr)
	}
	if err := rows.Err(); err != nil {
		return nil, recordErr(span, fmt.Errorf("iterate canned responses: %w", err))
	}
	return out, nil
}

// GetCannedResponse retrieves a canned response by ID.
func (s *Store) GetCannedResponse(ctx context.Context, id string) (*desk.CannedResponse, bool, error) {
	ctx, span := s.startSpan(ctx, "pgstore.GetCannedResponse", "SELECT")
	defer span.End()

	var cr desk.CannedResponse
	err := s.pool.QueryRow(ctx,
		`SELECT id, title, category, content, usage_count, created_at
		 FROM canned_responses WHERE id = $1`,
		id,
	).Scan(&cr.ID, &cr.Title, &cr.Category, &cr.Content, &cr.UsageCount, &cr.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, recordErr(span, fmt.Errorf("scan canned response: %w", err))
	}
	return &cr, true, nil
}

// IncrementCannedUsage bumps a canned response's usage counter.
func (s *Store) IncrementCannedUsage(ctx context.Context, id string) error {
	ctx, span := s.startSpan(ctx, "pgstore.IncrementCannedUsage", "UPDATE")
	defer span.End()

	_, err := s.pool.Exec(ctx,
		`UPDATE canned_responses SET usage_count = usage_count + 1 WHERE id = $1`,
		id,
	)
	if err != nil {
		return recordErr(span, fmt.Errorf("increment canned usage: %w", err))
	}
	return nil
}

func (s *Store) startSpan(ctx context.Context, name, op string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", op),
	))
}

func recordErr(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// scanCustomer scans a single customer row. Returns (nil, nil) when no
// row is found.
func scanCustomer(row pgx.Row) (*desk.Customer, error) {
	var (
		c           desk.Customer
		profileJSON []byte
	)
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &profileJSON, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan customer: %w", err)
	}
	if err := json.Unmarshal(profileJSON, &c.ProfileInfo); err != nil {
		return nil, fmt.Errorf("unmarshal profile_info: %w", err)
	}
	return &c, nil
}

// scanMessage scans a message row joined with its customer. Returns
// (nil, nil) when no row is found.
func scanMessage(row pgx.Row) (*desk.Message, error) {
	var (
		m           desk.Message
		c           desk.Customer
		urgency     string
		status      string
		respondedAt *time.Time
		profileJSON []byte
	)
	err := row.Scan(
		&m.ID, &m.CustomerID, &m.Content, &urgency, &status, &m.CreatedAt, &respondedAt,
		&c.ID, &c.Name, &c.Email, &c.Phone, &profileJSON, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan message: %w", err)
	}

	m.Urgency = desk.Urgency(urgency)
	m.Status = desk.Status(status)
	if respondedAt != nil {
		m.RespondedAt = *respondedAt
	}
	if err := json.Unmarshal(profileJSON, &c.ProfileInfo); err != nil {
		return nil, fmt.Errorf("unmarshal profile_info: %w", err)
	}
	m.Customer = &c
	return &m, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
