// internal/middleware/logging.go

package middleware

import (
	"github.com/jason-s-yu/roulette/internal/game"
	"github.com/sirupsen/logrus"
)

// EventHandler consumes one game event, as Options.BroadcastFn does.
type EventHandler func(ev game.GameEvent)

// LogEvents is a broadcast middleware that logs every event using Logrus before
// passing it on. Logs the type, round, actor and target of each event.
func LogEvents(logger *logrus.Logger) func(next EventHandler) EventHandler {
	return func(next EventHandler) EventHandler {
		return func(ev game.GameEvent) {
			fields := logrus.Fields{
				"event": ev.Type,
				"round": ev.Round,
			}
			if ev.User != nil {
				fields["actor"] = ev.User.Name
			}
			if ev.Target != nil {
				fields["target"] = ev.Target.Name
			}
			if ev.Card != nil {
				fields["card"] = ev.Card.Name
			}

			entry := logger.WithFields(fields)
			switch ev.Type {
			case game.EventPlayerEliminated, game.EventGameEnd:
				entry.Info("Game event")
			default:
				entry.Debug("Game event")
			}

			if next != nil {
				next(ev)
			}
		}
	}
}

// Chain fans one event out to every handler in order. Nil handlers are skipped.
func Chain(handlers ...EventHandler) EventHandler {
	return func(ev game.GameEvent) {
		for _, h := range handlers {
			if h != nil {
				h(ev)
			}
		}
	}
}
