package audit

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, req ListRequest) ([]Record, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	records, err := s.repo.ListRecent(ctx, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("list fetch records: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}
