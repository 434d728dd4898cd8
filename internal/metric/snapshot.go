package metric

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/watchair/watchair/internal/store"
	"github.com/watchair/watchair/internal/store/model"
)

// Snapshot is the ingested state of a domain the metrics are computed from.
type Snapshot struct {
	Domain       model.Domain
	Persons      []model.Person
	Members      []model.CommitteeMember
	Assignments  []model.Assignment
	Reviews      []model.Review
	Comments     []model.Comment
	ReviewScores []model.ReviewScore
}

func loadSnapshot(ctx context.Context, s store.Store, domainID uuid.UUID) (*Snapshot, error) {
	domain, err := s.Domain().Get(ctx, domainID)
	if err != nil {
		return nil, fmt.Errorf("failed to load domain %s: %w", domainID, err)
	}

	snapshot := &Snapshot{Domain: *domain}

	if snapshot.Persons, err = s.Person().List(ctx, domainID); err != nil {
		return nil, fmt.Errorf("failed to load persons: %w", err)
	}
	if snapshot.Members, err = s.Member().List(ctx, store.NewMemberQueryFilter().ByDomainID(domainID)); err != nil {
		return nil, fmt.Errorf("failed to load committee members: %w", err)
	}
	if snapshot.Assignments, err = s.Assignment().List(ctx, domainID); err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}
	if snapshot.Reviews, err = s.Review().List(ctx, domainID); err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}
	if snapshot.Comments, err = s.Comment().List(ctx, domainID); err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	if snapshot.ReviewScores, err = s.Score().ListReviewScores(ctx); err != nil {
		return nil, fmt.Errorf("failed to load review scores: %w", err)
	}

	return snapshot, nil
}

// memberLabel names a committee member after its person, falling back to the member number.
func (s *Snapshot) memberLabel(memberID int) string {
	for _, m := range s.Members {
		if m.ID != memberID {
			continue
		}
		for _, p := range s.Persons {
			if p.ID == m.PersonID && p.FullName() != "" {
				return p.FullName()
			}
		}
	}
	return fmt.Sprintf("Member #%d", memberID)
}

func countBy[T any](records []T, key func(T) int) map[int]int {
	counts := make(map[int]int)
	for _, r := range records {
		counts[key(r)]++
	}
	return counts
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func ptr[T any](v T) *T {
	return &v
}
