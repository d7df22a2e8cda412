// internal/console/prompter.go
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jason-s-yu/roulette/internal/game"
	"github.com/jason-s-yu/roulette/internal/models"
)

// turnIntent carries the answer to the opening action menu over to ChooseCard.
type turnIntent uint8

const (
	intentNone turnIntent = iota
	intentPlay
	intentAsk
)

// Prompter is a game.Decider that asks a human at a terminal. Unparseable
// answers, and EOF, are treated as declining.
type Prompter struct {
	in     *bufio.Scanner
	out    io.Writer
	intent turnIntent
}

var _ game.Decider = (*Prompter)(nil)

// NewPrompter reads answers from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Ask prints prompt and returns the next trimmed input line, or "" at EOF.
func (pr *Prompter) Ask(prompt string) string {
	fmt.Fprint(pr.out, prompt)
	if !pr.in.Scan() {
		return ""
	}
	return strings.TrimSpace(pr.in.Text())
}

// AskInt is Ask parsed as an integer.
func (pr *Prompter) AskInt(prompt string) (int, bool) {
	n, err := strconv.Atoi(pr.Ask(prompt))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ChooseDiscards shows the hand and opens the turn menu. Only the discard
// branch returns indices; the play/none answer is remembered for ChooseCard.
func (pr *Prompter) ChooseDiscards(p *models.Participant) []int {
	pr.printHand("Your current hand:", p)
	action := strings.ToLower(pr.Ask("Choose an action: (p)lay a card, (d)iscard to redraw, or (n)one: "))

	switch action {
	case "p":
		pr.intent = intentPlay
		return nil
	case "d":
		pr.intent = intentAsk
		line := pr.Ask("Enter indices of cards to discard separated by spaces (or press Enter to cancel): ")
		var indices []int
		for _, field := range strings.Fields(line) {
			idx, err := strconv.Atoi(field)
			if err != nil {
				fmt.Fprintln(pr.out, "  Invalid input; no cards discarded.")
				return nil
			}
			indices = append(indices, idx)
		}
		return indices
	default:
		pr.intent = intentNone
		fmt.Fprintln(pr.out, "  No card action taken.")
		return nil
	}
}

// ChooseCard asks for the hand index to play.
func (pr *Prompter) ChooseCard(p *models.Participant, bonus bool) (int, bool) {
	intent := pr.intent
	pr.intent = intentNone

	if bonus {
		pr.printHand("Your current hand:", p)
		if strings.ToLower(pr.Ask("You have an extra card play opportunity! (p)lay a card or (n)one: ")) != "p" {
			return 0, false
		}
		return pr.askCardIndex()
	}

	switch intent {
	case intentPlay:
		return pr.askCardIndex()
	case intentAsk:
		pr.printHand("Your new hand:", p)
		if strings.ToLower(pr.Ask("Now, do you want to play a card? (p)lay or (n)one: ")) != "p" {
			return 0, false
		}
		return pr.askCardIndex()
	}
	return 0, false
}

func (pr *Prompter) askCardIndex() (int, bool) {
	idx, ok := pr.AskInt("Enter the index of the card to play: ")
	if !ok {
		fmt.Fprintln(pr.out, "  Invalid input; no card played.")
	}
	return idx, ok
}

// ChooseTarget lists the eligible participants and asks for one.
func (pr *Prompter) ChooseTarget(_ *models.Participant, eligible []*models.Participant) (uuid.UUID, bool) {
	fmt.Fprintln(pr.out, "Available targets:")
	for i, p := range eligible {
		fmt.Fprintf(pr.out, "  %d: %s\n", i, p.Name)
	}
	idx, ok := pr.AskInt("Choose a target by index: ")
	if !ok || idx < 0 || idx >= len(eligible) {
		fmt.Fprintln(pr.out, "Invalid input; no target selected.")
		return uuid.Nil, false
	}
	return eligible[idx].ID, true
}

// ChooseChamber asks for the next chamber to fire. Range is checked by the revolver.
func (pr *Prompter) ChooseChamber(_ *models.Participant, chambers int) (int, bool) {
	idx, ok := pr.AskInt(fmt.Sprintf("Enter a chamber index (0-%d) to set as next: ", chambers-1))
	if !ok {
		fmt.Fprintln(pr.out, "  -> Invalid input. No changes made.")
	}
	return idx, ok
}

// ChooseConstitution asks kill or extra life. Anything but "k" is extra life.
func (pr *Prompter) ChooseConstitution(*models.Participant) game.ConstitutionChoice {
	answer := pr.Ask("Do you want to (k)ill a chosen player immediately or gain extra life for 3 rounds? (k/e): ")
	if strings.ToLower(answer) == "k" {
		return game.ConstitutionKill
	}
	return game.ConstitutionExtraLife
}

// AskRoster asks for the player count and each player's name. Blank names
// become "Player N".
func (pr *Prompter) AskRoster(minPlayers int) ([]string, error) {
	count, ok := pr.AskInt("Enter the number of players: ")
	if !ok || count < minPlayers {
		return nil, fmt.Errorf("need at least %d players", minPlayers)
	}
	names := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		name := pr.Ask(fmt.Sprintf("Enter name for player %d: ", i))
		if name == "" {
			name = fmt.Sprintf("Player %d", i)
		}
		names = append(names, name)
	}
	return names, nil
}

func (pr *Prompter) printHand(title string, p *models.Participant) {
	fmt.Fprintln(pr.out, title)
	if len(p.Hand) == 0 {
		fmt.Fprintln(pr.out, "  (empty)")
		return
	}
	for i, c := range p.Hand {
		fmt.Fprintf(pr.out, "  %d: %s\n", i, c.Name)
	}
}
