package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/finbooks/gl_engine/internal/apperrors"
	portsrepo "github.com/finbooks/gl_engine/internal/core/ports/repositories"
	portssvc "github.com/finbooks/gl_engine/internal/core/ports/services"
)

const defaultEntryPrefix = "JE"

// sequenceService formats gap-free entry numbers from the per-year counters.
// The counter row is a deliberate serialization point: throughput is bounded
// by the store's single-row write rate, which is acceptable at this scale.
type sequenceService struct {
	sequenceRepo portsrepo.SequenceRepository
}

// NewSequenceService creates the entry number allocator.
func NewSequenceService(sequenceRepo portsrepo.SequenceRepository) portssvc.SequenceSvcFacade {
	return &sequenceService{sequenceRepo: sequenceRepo}
}

var _ portssvc.SequenceSvcFacade = (*sequenceService)(nil)

// NextEntryNumber reserves and formats the next number for the year.
func (s *sequenceService) NextEntryNumber(ctx context.Context, year int) (string, error) {
	prefix, err := s.entryPrefix(ctx)
	if err != nil {
		return "", err
	}
	seq, err := s.sequenceRepo.NextSequence(ctx, year)
	if err != nil {
		return "", err
	}
	return formatEntryNumber(prefix, year, seq), nil
}

// NextEntryNumberInTx reserves a number inside a caller-owned transaction:
// if the entry write rolls back, the increment rolls back with it and no
// gap appears in the sequence.
func (s *sequenceService) NextEntryNumberInTx(ctx context.Context, tx pgx.Tx, year int) (string, error) {
	prefix, err := s.entryPrefix(ctx)
	if err != nil {
		return "", err
	}
	seq, err := s.sequenceRepo.NextSequenceInTx(ctx, tx, year)
	if err != nil {
		return "", err
	}
	return formatEntryNumber(prefix, year, seq), nil
}

// AllocateEntryNumberBlock reserves size consecutive numbers in one atomic
// increment, amortizing counter contention for batch-posting flows.
func (s *sequenceService) AllocateEntryNumberBlock(ctx context.Context, year, size int) ([]string, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: block size must be positive, got %d", apperrors.ErrValidation, size)
	}
	prefix, err := s.entryPrefix(ctx)
	if err != nil {
		return nil, err
	}
	first, err := s.sequenceRepo.AllocateBlock(ctx, year, size)
	if err != nil {
		return nil, err
	}
	numbers := make([]string, size)
	for i := 0; i < size; i++ {
		numbers[i] = formatEntryNumber(prefix, year, first+i)
	}
	return numbers, nil
}

func (s *sequenceService) entryPrefix(ctx context.Context) (string, error) {
	settings, err := s.sequenceRepo.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return defaultEntryPrefix, nil
		}
		return "", err
	}
	if settings.JournalEntryPrefix == "" {
		return defaultEntryPrefix, nil
	}
	return settings.JournalEntryPrefix, nil
}

func formatEntryNumber(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, seq)
}
