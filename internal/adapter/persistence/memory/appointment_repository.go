package memory

import (
	"context"
	"sort"
	"time"

	"automobile_shop/internal/domain/entities"
	"automobile_shop/internal/usecase/interfaces"
)

type AppointmentRepository struct {
	s *Store
}

var _ interfaces.IAppointmentRepository = (*AppointmentRepository)(nil)

func NewAppointmentRepository(s *Store) *AppointmentRepository {
	return &AppointmentRepository{s: s}
}

func (r *AppointmentRepository) Create(_ context.Context, a entities.Appointment) (entities.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.appointments[a.ID]; ok {
		return entities.Appointment{}, interfaces.ErrConditionFailed
	}
	r.s.appointments[a.ID] = cloneAppointment(a)
	return cloneAppointment(a), nil
}

func (r *AppointmentRepository) GetByID(_ context.Context, id string) (entities.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.appointments[id]
	if !ok {
		return entities.Appointment{}, nil
	}
	return cloneAppointment(a), nil
}

func (r *AppointmentRepository) List(_ context.Context, filter interfaces.AppointmentFilter) ([]entities.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entities.Appointment, 0, len(r.s.appointments))
	for _, a := range r.s.appointments {
		if !filter.Matches(a) {
			continue
		}
		out = append(out, cloneAppointment(a))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	return out, nil
}

func (r *AppointmentRepository) UpdateStatus(_ context.Context, id string, from, to entities.AppointmentStatus) (entities.Appointment, error) {
	return r.update(id, from, func(a *entities.Appointment) {
		a.Status = to
	})
}

func (r *AppointmentRepository) UpdateScheduledAt(_ context.Context, id string, expected entities.AppointmentStatus, scheduledAt time.Time) (entities.Appointment, error) {
	return r.update(id, expected, func(a *entities.Appointment) {
		a.ScheduledAt = scheduledAt
	})
}

func (r *AppointmentRepository) update(id string, expected entities.AppointmentStatus, apply func(a *entities.Appointment)) (entities.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.appointments[id]
	if !ok || a.Status != expected {
		return entities.Appointment{}, interfaces.ErrConditionFailed
	}
	apply(&a)
	a.UpdatedAt = time.Now().UTC()
	r.s.appointments[id] = a
	return cloneAppointment(a), nil
}
