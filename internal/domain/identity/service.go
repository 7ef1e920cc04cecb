package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ichewm/MedicalBible-sub001/internal/platform/fhir"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetAccount(ctx context.Context, id int64) (*Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fhir.NewNotFound("Patient", fhir.PatientID(id))
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *Service) SearchAccounts(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Account, int, error) {
	return s.repo.Search(ctx, filter, limit, offset)
}
