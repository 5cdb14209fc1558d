package service

import "time"

// Clock supplies the current time / Fournit l'heure courante
// Injected so timestamp bookkeeping stays testable without wall-clock sleeps.
type Clock interface {
	Now() time.Time
}

// systemClock is the production clock / Horloge de production
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
