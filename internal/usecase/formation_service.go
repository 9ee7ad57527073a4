package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/touchline/internal/domain/formation"
)

type FormationService struct {
	catalog *formation.Catalog
}

func NewFormationService(catalog *formation.Catalog) *FormationService {
	return &FormationService{catalog: catalog}
}

func (s *FormationService) List(ctx context.Context) []formation.Formation {
	_, span := startUsecaseSpan(ctx, "usecase.FormationService.List")
	defer span.End()

	return s.catalog.List()
}

func (s *FormationService) Get(ctx context.Context, name string) (formation.Formation, error) {
	_, span := startUsecaseSpan(ctx, "usecase.FormationService.Get")
	defer span.End()

	item, err := s.catalog.Get(name)
	if err != nil {
		if errors.Is(err, formation.ErrFormationNotFound) {
			return formation.Formation{}, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return formation.Formation{}, err
	}
	return item, nil
}
