package leads

import (
	"context"
	"strings"

	"staffsync/internal/platform/docstore"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]Lead, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Lead, error) {
	return s.store.Get(ctx, id)
}

// Create stores a lead; new leads start Cold unless a status is given.
func (s *Service) Create(ctx context.Context, lead Lead) (Lead, error) {
	lead.Name = strings.TrimSpace(lead.Name)
	if lead.Name == "" {
		return Lead{}, ErrInvalidInput
	}
	if lead.Status == "" {
		lead.Status = StatusCold
	}
	if !ValidStatus(lead.Status) {
		return Lead{}, ErrInvalidStatus
	}
	id, err := s.store.Create(ctx, lead)
	if err != nil {
		return Lead{}, err
	}
	lead.ID = id
	return lead, nil
}

func (s *Service) Update(ctx context.Context, id string, upd Update) (Lead, error) {
	fields := docstore.Fields{}
	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return Lead{}, ErrInvalidInput
		}
		fields["name"] = strings.TrimSpace(*upd.Name)
	}
	if upd.LastRemark != nil {
		fields["lastRemark"] = *upd.LastRemark
	}
	if upd.Email != nil {
		fields["email"] = strings.TrimSpace(*upd.Email)
	}
	if upd.Phone != nil {
		fields["phone"] = strings.TrimSpace(*upd.Phone)
	}
	if upd.Status != nil {
		if !ValidStatus(*upd.Status) {
			return Lead{}, ErrInvalidStatus
		}
		fields["status"] = *upd.Status
	}
	if len(fields) > 0 {
		if err := s.store.Update(ctx, id, fields); err != nil {
			return Lead{}, err
		}
	}
	return s.store.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
