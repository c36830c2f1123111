// ABOUTME: Orchestrates the propose -> validate -> confirm -> execute flow.
// ABOUTME: Pending drafts live in memory only; confirmation commits them.
package assistant

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/harperreed/lift/internal/draft"
	"github.com/harperreed/lift/internal/storage"
)

// Service wires the model client to the draft pipeline. It keeps
// validated drafts in memory keyed by id until the user confirms or the
// process exits; drafts are never persisted.
type Service struct {
	repo     storage.Repository
	client   *Client
	executor *draft.Executor

	mu      sync.Mutex
	pending map[uuid.UUID]*draft.Draft
}

// NewService creates the assistant service over an open store.
func NewService(db *storage.DB, client *Client) *Service {
	return &Service{
		repo:     db,
		client:   client,
		executor: draft.NewExecutor(db),
		pending:  make(map[uuid.UUID]*draft.Draft),
	}
}

// Proposal is one assistant turn presented to the user. Validation is
// nil when the assistant answered without proposing an action.
type Proposal struct {
	Text       string
	Draft      *draft.Draft
	Validation *draft.Result
}

// Propose sends the user's request to the model, validates any returned
// draft, and parks valid drafts for confirmation.
func (s *Service) Propose(ctx context.Context, text string) (*Proposal, error) {
	system, err := BuildSystemPrompt(s.repo)
	if err != nil {
		return nil, err
	}

	reply, err := s.client.Propose(ctx, system, text)
	if err != nil {
		return nil, err
	}

	p := &Proposal{Text: reply.Text, Draft: reply.Draft}
	if reply.Draft == nil {
		return p, nil
	}

	snap, err := draft.SnapshotFrom(s.repo)
	if err != nil {
		return nil, err
	}
	p.Validation = draft.Validate(reply.Draft, snap)

	if p.Validation.Valid {
		s.mu.Lock()
		s.pending[reply.Draft.ID] = p.Validation.Normalized
		s.mu.Unlock()
	}
	return p, nil
}

// Confirm commits a previously proposed draft. The draft is removed from
// the pending set whether or not execution succeeds; a failed draft must
// be re-proposed against fresh state.
func (s *Service) Confirm(id uuid.UUID) (*draft.ExecuteResult, error) {
	s.mu.Lock()
	d, ok := s.pending[id]
	delete(s.pending, id)
	s.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("no pending draft %s", id)
	}
	return s.executor.Execute(d)
}

// Discard drops a pending draft without executing it.
func (s *Service) Discard(id uuid.UUID) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}
