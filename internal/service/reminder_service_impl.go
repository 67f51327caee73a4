package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tanish-jain-225/SilverCare-AI/internal/domain"
	"github.com/tanish-jain-225/SilverCare-AI/internal/repository"
	"github.com/tanish-jain-225/SilverCare-AI/internal/temporal"
)

type reminderService struct {
	reminders repository.ReminderRepo
	now       func() time.Time
	observer  UseCaseObserver
}

func NewReminderService(reminders repository.ReminderRepo, observers ...UseCaseObserver) ReminderService {
	return &reminderService{
		reminders: reminders,
		now:       time.Now,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// NewReminderServiceWithClock is NewReminderService with an injected clock
// for date and time inference.
func NewReminderServiceWithClock(reminders repository.ReminderRepo, now func() time.Time, observers ...UseCaseObserver) ReminderService {
	svc := NewReminderService(reminders, observers...).(*reminderService)
	svc.now = now
	return svc
}

func (s *reminderService) Save(ctx context.Context, r *domain.Reminder) (saved *domain.Reminder, err error) {
	if r == nil {
		return nil, fmt.Errorf("%w: reminder is required", ErrInvalidInput)
	}
	start := time.Now()
	defer func() {
		observe(ctx, s.observer, "reminder.save", start, err, map[string]any{"user_id": r.UserID})
	}()

	now := s.now()
	rec := *r
	rec.Title = strings.TrimSpace(rec.Title)
	if rec.Title == "" {
		rec.Title = domain.DefaultReminderTitle
	}
	if strings.TrimSpace(rec.Date) == "" {
		rec.Date = temporal.DefaultDate(rec.Title, now)
	}
	if strings.TrimSpace(rec.Time) == "" {
		rec.Time = temporal.DefaultTime(rec.Title, now)
	}
	rec.Date = temporal.NormalizeDate(rec.Date, now)
	rec.Time = temporal.NormalizeTime(rec.Time, now)
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now.UTC()
	}

	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.reminders.Create(ctx, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListByUser returns reminders in chronological order: by date, then by
// clock time within a day.
func (s *reminderService) ListByUser(ctx context.Context, userID string) ([]*domain.Reminder, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", ErrInvalidInput)
	}
	list, err := s.reminders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Date != list[j].Date {
			return list[i].Date < list[j].Date
		}
		mi, _ := temporal.ClockMinutes(list[i].Time)
		mj, _ := temporal.ClockMinutes(list[j].Time)
		return mi < mj
	})
	return list, nil
}

func (s *reminderService) Delete(ctx context.Context, id, userID string) (err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.observer, "reminder.delete", start, err, map[string]any{"user_id": userID})
	}()

	if id == "" || userID == "" {
		return fmt.Errorf("%w: reminder ID and user ID are required", ErrInvalidInput)
	}
	return s.reminders.Delete(ctx, id, userID)
}
