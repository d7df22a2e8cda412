// internal/console/narrator.go
package console

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jason-s-yu/roulette/internal/game"
)

// suspenseLines are printed before every trigger pull, one per Pace.
var suspenseLines = []string{
	"You steady your nerves...",
	"You slowly bring the gun to your head...",
	"The sound of the mechanism echoes in the silence...",
	"...",
}

// Narrator renders game events as text. It is used as a BroadcastFn.
type Narrator struct {
	out io.Writer

	// Pace is the delay between suspense lines. Zero disables it.
	Pace  time.Duration
	sleep func(time.Duration)
}

// NewNarrator returns a narrator writing to out.
func NewNarrator(out io.Writer, pace time.Duration) *Narrator {
	return &Narrator{out: out, Pace: pace, sleep: time.Sleep}
}

// Handle writes the narration for ev, pausing on trigger suspense.
func (n *Narrator) Handle(ev game.GameEvent) {
	if ev.Type == game.EventTriggerSuspense {
		fmt.Fprintln(n.out)
		for _, line := range suspenseLines {
			fmt.Fprintln(n.out, line)
			n.pause()
		}
		fmt.Fprintf(n.out, "%s pulls the trigger...\n", userName(ev.User))
		n.pause()
		return
	}
	if text := Render(ev); text != "" {
		fmt.Fprintln(n.out, text)
	}
}

func (n *Narrator) pause() {
	if n.Pace > 0 && n.sleep != nil {
		n.sleep(n.Pace)
	}
}

// Render returns the narration line(s) for ev, or "" for events with no text.
func Render(ev game.GameEvent) string {
	actor := userName(ev.User)
	target := userName(ev.Target)

	switch ev.Type {
	case game.EventGameStart:
		return "=== Starting Russian Roulette with Cards! ==="
	case game.EventTurnStart:
		return fmt.Sprintf("\n========================================\nRound %d\n\nIt's %s's turn!", ev.Round, actor)
	case game.EventPendingApplied:
		delta := intField(ev.Payload, "delta")
		if delta > 0 {
			return fmt.Sprintf("  -> %s's chamber was modified: +%d bullet(s) added!", actor, intField(ev.Payload, "applied"))
		}
		return fmt.Sprintf("  -> %s's chamber was modified: %d bullet(s) removed!", actor, intField(ev.Payload, "applied"))
	case game.EventDeckRepopulated:
		return "  (The deck ran dry and has been reshuffled.)"
	case game.EventPlayerDiscard:
		return fmt.Sprintf("  %s discards and redraws %d card(s).", actor, intField(ev.Payload, "count"))
	case game.EventCardPlayed:
		return fmt.Sprintf("  %s plays %s.", actor, cardName(ev.Card))
	case game.EventCardDeclined:
		return ""
	case game.EventInvalidSelection:
		return fmt.Sprintf("  Invalid %s; nothing happens.", stringField(ev.Payload, "selection"))
	case game.EventNoTarget:
		return "  -> No valid target; the card has no effect."
	case game.EventEffectBlocked:
		return fmt.Sprintf("  -> %s blocked the effect!", target)
	case game.EventUnknownCard:
		return "  -> (No effect)"
	case game.EventRespin:
		return "  -> The revolver has been respun!"
	case game.EventChamberPeek:
		status := "empty"
		if boolField(ev.Payload, "loaded") {
			status = "loaded"
		}
		return fmt.Sprintf("  -> You peek at the chamber: Chamber %d is %s.", intField(ev.Payload, "chamber"), status)
	case game.EventChamberSet:
		return fmt.Sprintf("  -> The next chamber is now %d.", intField(ev.Payload, "chamber"))
	case game.EventBulletAdded:
		added := intField(ev.Payload, "added")
		if added == 0 {
			return "  -> The revolver is full! No bullet was added."
		}
		return fmt.Sprintf("  -> %d bullet(s) have been added to the revolver!", added)
	case game.EventBulletRemoved:
		removed := intField(ev.Payload, "removed")
		if removed == 0 {
			return "  -> There were no bullets to remove!"
		}
		return fmt.Sprintf("  -> %d bullet(s) have been removed from the revolver!", removed)
	case game.EventSafeTriggerArmed:
		return "  -> Safe Trigger Pull activated! You will be immune to a bullet this turn."
	case game.EventLuckyCharmArmed:
		return "  -> Lucky Charm activated! A coin toss may save you from a bullet."
	case game.EventMiracleArmed:
		return "  -> Miracle activated! A bullet might disintegrate if it fires."
	case game.EventExtraLife:
		return fmt.Sprintf("  -> Constitution activated: You gain an extra life for the next %d rounds!", intField(ev.Payload, "rounds"))
	case game.EventBonusPlays:
		return fmt.Sprintf("  -> Next round, you may play %d cards!", intField(ev.Payload, "plays"))
	case game.EventBlockArmed:
		return "  -> Block activated! Your next targeted card effect will be blocked."
	case game.EventExtraDraw:
		return fmt.Sprintf("  -> You draw %d extra cards!", intField(ev.Payload, "count"))
	case game.EventHandSwapped:
		return fmt.Sprintf("  -> %s swapped hands with %s!", actor, target)
	case game.EventHandRevealed:
		var b strings.Builder
		fmt.Fprintf(&b, "  -> %s's hand:", target)
		for _, name := range stringsField(ev.Payload, "cards") {
			fmt.Fprintf(&b, "\n     - %s", name)
		}
		return b.String()
	case game.EventCardStolen:
		return fmt.Sprintf("  -> %s stole a card from %s!", actor, target)
	case game.EventStealEmpty:
		return fmt.Sprintf("  -> %s has no cards to steal.", target)
	case game.EventHandRedrawn:
		return fmt.Sprintf("  -> %s's hand has been reshuffled!", target)
	case game.EventPendingQueued:
		delta := intField(ev.Payload, "delta")
		if delta < 0 {
			return fmt.Sprintf("  -> %s's chamber will have %d bullet(s) removed next turn!", target, -delta)
		}
		return fmt.Sprintf("  -> %s's chamber will have +%d bullet(s) added next turn!", target, delta)
	case game.EventForcedFire:
		return fmt.Sprintf("  -> %s forces %s to pull the trigger instead!", actor, target)
	case game.EventForcedNextFire:
		return fmt.Sprintf("  -> %s will be forced to pull the trigger again after their turn!", target)
	case game.EventForcedExtraPull:
		return fmt.Sprintf("  -> %s is forced to pull the trigger again!", actor)
	case game.EventOrderReversed:
		return "  -> The order of play is reversed!"
	case game.EventSkip:
		return fmt.Sprintf("  -> %s has chosen to skip pulling the trigger this turn.", actor)
	case game.EventReplicate:
		return fmt.Sprintf("  -> Duplicating the effect of %s!", stringField(ev.Payload, "card"))
	case game.EventReplicateFailed:
		return "  -> No valid last card to duplicate."
	case game.EventTriggerClick:
		return "Click! The chamber was empty. You survived this round!"
	case game.EventTriggerBang:
		return "Bang!"
	case game.EventImmunityUsed:
		switch stringField(ev.Payload, "immunity") {
		case game.ImmunitySafeTrigger:
			return "But your Safe Trigger Pull card protects you!"
		case game.ImmunityLuckyCharm:
			return "The coin toss favors you. You survive!"
		case game.ImmunityMiracle:
			return "A miracle occurs! The bullet disintegrates before it can harm you!"
		case game.ImmunityExtraLife:
			return "But your Constitution card extra life saves you!"
		}
		return ""
	case game.EventCoinToss:
		if boolField(ev.Payload, "survived") {
			return "Your Lucky Charm gives you a fighting chance..."
		}
		return "Your Lucky Charm gives you a fighting chance... The coin toss does not favor you."
	case game.EventPlayerEliminated:
		return fmt.Sprintf("%s has been eliminated!", actor)
	case game.EventHandRefilled:
		return fmt.Sprintf("  %s draws %d card(s) to refill their hand.", actor, intField(ev.Payload, "count"))
	case game.EventGameEnd:
		if ev.User != nil {
			return fmt.Sprintf("\n=== Game Over! ===\n%s is the last person standing!", actor)
		}
		return "\n=== Game Over! ===\nAll players have been eliminated! No winners."
	}
	return ""
}

func userName(u *game.EventUser) string {
	if u == nil {
		return "Someone"
	}
	return u.Name
}

func cardName(c *game.EventCard) string {
	if c == nil {
		return "a card"
	}
	return c.Name
}

// intField reads a numeric payload value. Values decoded from JSON arrive as float64.
func intField(payload map[string]interface{}, key string) int {
	switch v := payload[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func boolField(payload map[string]interface{}, key string) bool {
	b, _ := payload[key].(bool)
	return b
}

func stringField(payload map[string]interface{}, key string) string {
	s, _ := payload[key].(string)
	return s
}

func stringsField(payload map[string]interface{}, key string) []string {
	switch v := payload[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
