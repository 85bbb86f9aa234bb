package notifications

import (
	"context"
	"sort"
	"strings"
	"time"

	"staffsync/internal/platform/docstore"
	"staffsync/internal/platform/email"
)

type Service struct {
	store        StoreAPI
	Mailer       email.Mailer
	From         string
	DashboardURL string
	Now          func() time.Time
}

func New(store StoreAPI, mailer email.Mailer, from, dashboardURL string) *Service {
	return &Service{store: store, Mailer: mailer, From: from, DashboardURL: dashboardURL, Now: time.Now}
}

// Create stores an unread notification stamped with the server time.
func (s *Service) Create(ctx context.Context, to Recipient, message, ntype string) (Notification, error) {
	if !to.Valid() {
		return Notification{}, ErrInvalidRecipient
	}
	message = strings.TrimSpace(message)
	if message == "" || !validType(ntype) {
		return Notification{}, ErrInvalidInput
	}
	now := s.Now().UTC()
	id, err := s.store.Create(ctx, to.Key(), message, ntype, now)
	if err != nil {
		return Notification{}, err
	}
	return Notification{ID: id, UserID: to.Key(), Message: message, Timestamp: now, Read: false, Type: ntype}, nil
}

// List returns the recipient's notifications, newest first.
func (s *Service) List(ctx context.Context, to Recipient) ([]Notification, error) {
	if !to.Valid() {
		return nil, ErrInvalidRecipient
	}
	out, err := s.store.List(ctx, docstore.Where(FieldUserID, to.Key()))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (s *Service) MarkAllRead(ctx context.Context, to Recipient) (int, error) {
	if !to.Valid() {
		return 0, ErrInvalidRecipient
	}
	return s.store.MarkRead(ctx, to.Key())
}

func (s *Service) Get(ctx context.Context, id string) (Notification, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// SendTaskEmail renders the task assignment email and hands it to the
// mailer. It returns the provider message id.
func (s *Service) SendTaskEmail(ctx context.Context, msg TaskEmail) (string, error) {
	if s.Mailer == nil || !s.Mailer.Configured() {
		return "", email.ErrNotConfigured
	}
	if strings.TrimSpace(msg.To) == "" {
		return "", ErrInvalidInput
	}
	body, err := email.RenderTaskAssigned(email.TaskAssigned{
		Name:            msg.Name,
		TaskTitle:       msg.TaskTitle,
		TaskDescription: msg.TaskDescription,
		DashboardURL:    s.DashboardURL,
	})
	if err != nil {
		return "", err
	}
	return s.Mailer.Send(ctx, email.Message{
		From:    s.From,
		To:      msg.To,
		Subject: email.TaskAssignedSubject,
		HTML:    body,
	})
}
