package dashboard

import (
	"errors"

	"github.com/rpggio/coachboard/internal/domain/store"
)

var (
	// ErrNotReady is returned before the first successful refresh.
	ErrNotReady = store.ErrNotReady
	// ErrWeekNotFound indicates the week isn't in the current snapshot.
	ErrWeekNotFound = errors.New("week not found")
	// ErrReadOnly indicates the service has no mutator configured.
	ErrReadOnly = errors.New("dashboard is read-only")
)
