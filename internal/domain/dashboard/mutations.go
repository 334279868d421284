package dashboard

import (
	"context"
	"fmt"

	"github.com/rpggio/coachboard/internal/domain/entity"
)

// Entity names used in logs and metrics.
const (
	EntityWeek          = "week"
	EntityAssignment    = "assignment"
	EntityPrivateCall   = "privateCall"
	EntityGroupSession  = "groupSession"
	EntityGroupAttendee = "groupAttendee"
)

// SaveWeek creates or updates a week.
func (s *Service) SaveWeek(ctx context.Context, w *entity.Week) error {
	return s.save(ctx, EntityWeek, w, func(m Mutator) error { return m.SaveWeek(ctx, w) })
}

// DeleteWeek removes a week.
func (s *Service) DeleteWeek(ctx context.Context, id int) error {
	return s.delete(ctx, EntityWeek, id, func(m Mutator) error { return m.DeleteWeek(ctx, id) })
}

// SaveAssignment creates or updates an assignment.
func (s *Service) SaveAssignment(ctx context.Context, a *entity.Assignment) error {
	return s.save(ctx, EntityAssignment, a, func(m Mutator) error { return m.SaveAssignment(ctx, a) })
}

// DeleteAssignment removes an assignment.
func (s *Service) DeleteAssignment(ctx context.Context, id int) error {
	return s.delete(ctx, EntityAssignment, id, func(m Mutator) error { return m.DeleteAssignment(ctx, id) })
}

// SavePrivateCall creates or updates a private call.
func (s *Service) SavePrivateCall(ctx context.Context, c *entity.PrivateCall) error {
	return s.save(ctx, EntityPrivateCall, c, func(m Mutator) error { return m.SavePrivateCall(ctx, c) })
}

// DeletePrivateCall removes a private call.
func (s *Service) DeletePrivateCall(ctx context.Context, id int) error {
	return s.delete(ctx, EntityPrivateCall, id, func(m Mutator) error { return m.DeletePrivateCall(ctx, id) })
}

// SaveGroupSession creates or updates a group session.
func (s *Service) SaveGroupSession(ctx context.Context, g *entity.GroupSession) error {
	return s.save(ctx, EntityGroupSession, g, func(m Mutator) error { return m.SaveGroupSession(ctx, g) })
}

// DeleteGroupSession removes a group session.
func (s *Service) DeleteGroupSession(ctx context.Context, id int) error {
	return s.delete(ctx, EntityGroupSession, id, func(m Mutator) error { return m.DeleteGroupSession(ctx, id) })
}

// SaveGroupAttendee creates or updates a group attendee.
func (s *Service) SaveGroupAttendee(ctx context.Context, a *entity.GroupAttendee) error {
	return s.save(ctx, EntityGroupAttendee, a, func(m Mutator) error { return m.SaveGroupAttendee(ctx, a) })
}

// DeleteGroupAttendee removes a group attendee.
func (s *Service) DeleteGroupAttendee(ctx context.Context, id int) error {
	return s.delete(ctx, EntityGroupAttendee, id, func(m Mutator) error { return m.DeleteGroupAttendee(ctx, id) })
}

func (s *Service) save(ctx context.Context, name string, v any, write func(Mutator) error) error {
	if err := entity.Validate(v); err != nil {
		s.metrics.ObserveMutation(name, "save", err)
		return err
	}
	return s.mutate(ctx, name, "save", write)
}

func (s *Service) delete(ctx context.Context, name string, id int, write func(Mutator) error) error {
	if id <= 0 {
		err := fmt.Errorf("%w: %s id must be positive", entity.ErrInvalidInput, name)
		s.metrics.ObserveMutation(name, "delete", err)
		return err
	}
	return s.mutate(ctx, name, "delete", write)
}

// mutate writes through the mutator and then reloads the snapshot. A failed
// reload after a successful write is logged, not returned.
func (s *Service) mutate(ctx context.Context, name, op string, write func(Mutator) error) error {
	if s.mutator == nil {
		s.metrics.ObserveMutation(name, op, ErrReadOnly)
		return ErrReadOnly
	}
	if err := write(s.mutator); err != nil {
		s.metrics.ObserveMutation(name, op, err)
		return fmt.Errorf("%s %s: %w", op, name, err)
	}
	s.metrics.ObserveMutation(name, op, nil)
	s.logger.InfoContext(ctx, "mutation applied", "entity", name, "op", op)

	if err := s.Refresh(ctx); err != nil {
		s.logger.WarnContext(ctx, "refresh after mutation failed", "entity", name, "op", op, "error", err)
	}
	return nil
}
