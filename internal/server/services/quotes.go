package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/repomanager"
)

type QuoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewQuoteService(db *sql.DB, m repomanager.RepositoryManager) *QuoteService {
	return &QuoteService{db: db, repomanager: m}
}

func (s *QuoteService) List(ctx context.Context, userID string) ([]journal.Quote, error) {
	return s.repomanager.Quotes(s.db).List(ctx, userID)
}

// Add stores q. Text is required; DateAdded defaults to today.
func (s *QuoteService) Add(ctx context.Context, userID string, q journal.Quote) (*journal.Quote, error) {
	q.Text = strings.TrimSpace(q.Text)
	if q.Text == "" {
		return nil, fmt.Errorf("quote text is empty: %w", common.ErrValidation)
	}
	q.Author = strings.TrimSpace(q.Author)
	if err := s.repomanager.Quotes(s.db).Create(ctx, userID, &q); err != nil {
		return nil, fmt.Errorf("add quote: %w", err)
	}
	return &q, nil
}

func (s *QuoteService) Delete(ctx context.Context, userID, id string) error {
	return s.repomanager.Quotes(s.db).Delete(ctx, userID, id)
}
