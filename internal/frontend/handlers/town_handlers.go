package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/noahsark/internal/frontend/console"
	"github.com/cory-johannsen/noahsark/internal/game/combat"
	"github.com/cory-johannsen/noahsark/internal/game/command"
	"github.com/cory-johannsen/noahsark/internal/game/explore"
	"github.com/cory-johannsen/noahsark/internal/game/inventory"
	"github.com/cory-johannsen/noahsark/internal/game/world"
)

// shellContext carries all inputs a shell handler needs.
type shellContext struct {
	ctx    context.Context
	shell  *Shell
	cmd    *command.Command
	parsed command.ParseResult
}

// shellResult is returned by every shell handler.
// cancelled is true when the player backed out before anything happened.
// quit is true when the player ended the current game.
// gameOver is true when the whole party fell.
type shellResult struct {
	cancelled bool
	quit      bool
	gameOver  bool
}

// shellHandlerFunc is the signature for all shell dispatch functions.
type shellHandlerFunc func(sctx *shellContext) (shellResult, error)

// ShellHandlers returns the map from Handler constant to shell function.
// Exported so TestAllCommandHandlersAreWired can verify completeness.
func ShellHandlers() map[string]shellHandlerFunc {
	return shellHandlerMap
}

// shellHandlerMap is the single source of truth for town command dispatch.
// To add a new command: add a Handler constant to commands.go AND add an entry here.
var shellHandlerMap = map[string]shellHandlerFunc{
	command.HandlerBattle:      shellBattle,
	command.HandlerMove:        shellMove,
	command.HandlerShop:        shellShop,
	command.HandlerParty:       shellParty,
	command.HandlerInvestigate: shellInvestigate,
	command.HandlerStatus:      shellStatus,
	command.HandlerHelp:        shellHelp,
	command.HandlerQuit:        shellQuit,
}

func (sctx *shellContext) say(color, text string) {
	_ = sctx.shell.conn.WriteLine(console.Colorize(color, text))
}

// choose asks for a number in [lo, hi].
func (sctx *shellContext) choose(prompt string, lo, hi int) (int, error) {
	return sctx.shell.prompter.Choose(sctx.ctx, prompt, lo, hi)
}

// shellBattle generates an encounter at the current location and fights it.
//
// Postcondition: chapter narration is shown after a boss victory; gameOver is
// set when the party was wiped out.
func shellBattle(sctx *shellContext) (shellResult, error) {
	s := sctx.shell
	m, err := s.session.Encounter()
	if err != nil {
		return shellResult{}, err
	}
	_ = s.conn.WriteLine(console.RenderMonster(m))

	res, err := s.session.Fight(sctx.ctx, m, combat.WithDecider(s.prompter), combat.WithPresenter(s.renderer))
	if errors.Is(err, combat.ErrRoundLimit) {
		s.logger.Warn("battle abandoned", zap.String("monster", m.Name), zap.Int("rounds", res.Rounds))
		sctx.say(console.BrightBlack, "The fight drags on until both sides withdraw.")
		return shellResult{}, nil
	}
	if err != nil {
		return shellResult{}, err
	}
	s.showChapters(res.Chapters)
	if res.Relocated {
		sctx.say(console.Green, "The party moves on to "+s.session.Location().Name+".")
	}
	if res.GameOver {
		sctx.say(console.BrightRed, "GAME OVER... Noah's Ark has fallen into the Organization's hands...")
		return shellResult{gameOver: true}, nil
	}
	return shellResult{}, nil
}

// shellMove travels to the location given as an argument or chosen from the menu.
//
// Postcondition: a locked destination leaves the party in place.
func shellMove(sctx *shellContext) (shellResult, error) {
	s := sctx.shell
	locs := s.session.Destinations()

	choice := 0
	if len(sctx.parsed.Args) > 0 {
		n, ok := sctx.parsed.IntArg(0)
		if !ok || n < 1 || n > len(locs) {
			sctx.say(console.Red, "No such destination.")
			return shellResult{cancelled: true}, nil
		}
		choice = n
	} else {
		sctx.say(console.Cyan, "=== Travel ===")
		_ = s.conn.WriteLine(console.RenderLocations(locs, s.session.State.Chapter) + "\n0. Back")
		n, err := sctx.choose("Destination", 0, len(locs))
		if err != nil {
			return shellResult{}, err
		}
		if n == 0 {
			return shellResult{cancelled: true}, nil
		}
		choice = n
	}

	l, err := s.session.Travel(locs[choice-1].ID)
	if errors.Is(err, world.ErrLocked) {
		sctx.say(console.Red, "That area is still locked!")
		return shellResult{}, nil
	}
	if err != nil {
		return shellResult{}, err
	}
	sctx.say(console.Green, "Moved to "+l.Name+".")
	return shellResult{}, nil
}

// shellShop sells items until the player leaves.
func shellShop(sctx *shellContext) (shellResult, error) {
	s := sctx.shell
	catalog := s.session.Catalog()
	for {
		_ = s.conn.WriteLine(console.RenderCatalog(catalog, s.session.State.Money))
		n, err := sctx.choose("Buy", 0, len(catalog))
		if err != nil || n == 0 {
			return shellResult{}, err
		}
		d, err := s.session.Buy(n - 1)
		if errors.Is(err, inventory.ErrInsufficientFunds) {
			sctx.say(console.Red, "Not enough money!")
			continue
		}
		if err != nil {
			return shellResult{}, err
		}
		sctx.say(console.Green, "Bought "+d.Name+"!")
	}
}

// shellParty shows the roster and offers item use and member swaps.
func shellParty(sctx *shellContext) (shellResult, error) {
	s := sctx.shell
	for {
		sctx.say(console.Cyan, "\n=== Party & Items ===")
		_ = s.conn.WriteLine(console.RenderParty("Active", s.session.Party()))
		if reserve := s.session.Roster.Reserve(); len(reserve) > 0 {
			_ = s.conn.WriteLine(console.RenderParty("Reserve", reserve))
		}
		_ = s.conn.WriteLine("1. Use item\n2. Swap members\n0. Back")
		n, err := sctx.choose("Choice", 0, 2)
		if err != nil || n == 0 {
			return shellResult{}, err
		}
		if n == 1 {
			err = useItem(sctx)
		} else {
			err = swapMembers(sctx)
		}
		if err != nil {
			return shellResult{}, err
		}
	}
}

func useItem(sctx *shellContext) error {
	s := sctx.shell
	if s.session.Backpack.IsEmpty() {
		sctx.say(console.Red, "Your backpack is empty!")
		return nil
	}
	sctx.say(console.Yellow, "=== Backpack ===")
	_ = s.conn.WriteLine(console.RenderInventory(s.session.Backpack))
	slot, err := sctx.choose("Item", 0, s.session.Backpack.Len())
	if err != nil || slot == 0 {
		return err
	}
	name := s.session.Backpack.Slots()[slot-1].Item.Name()

	party := s.session.Party()
	_ = s.conn.WriteLine(console.RenderParty("Target", party))
	target, err := sctx.choose("Target", 1, len(party))
	if err != nil {
		return err
	}
	ok, err := s.session.UseItem(slot-1, target-1)
	if err != nil {
		return err
	}
	if !ok {
		sctx.say(console.BrightBlack, name+" has no effect on "+party[target-1].Name+".")
		return nil
	}
	sctx.say(console.Green, "Used "+name+" on "+party[target-1].Name+".")
	return nil
}

func swapMembers(sctx *shellContext) error {
	s := sctx.shell
	reserve := s.session.Roster.Reserve()
	if len(reserve) == 0 {
		sctx.say(console.Red, "Nobody is waiting in reserve!")
		return nil
	}
	party := s.session.Party()
	out, err := sctx.choose("Swap out (0 to cancel)", 0, len(party))
	if err != nil || out == 0 {
		return err
	}
	if party[out-1].Controlled {
		sctx.say(console.Red, "The leader cannot be swapped out!")
		return nil
	}
	in, err := sctx.choose("Swap in (0 to cancel)", 0, len(reserve))
	if err != nil || in == 0 {
		return err
	}
	if err := s.session.Swap(out-1, in-1); err != nil {
		if errors.Is(err, explore.ErrLeaderSwap) || errors.Is(err, explore.ErrInvalidSelection) {
			sctx.say(console.Red, err.Error())
			return nil
		}
		return err
	}
	sctx.say(console.Green, "The party has changed!")
	return nil
}

// shellInvestigate searches the current location for clues and companions.
func shellInvestigate(sctx *shellContext) (shellResult, error) {
	s := sctx.shell
	sctx.say(console.Cyan, "=== Investigating the area ===")
	rep, err := s.session.Investigate()
	if err != nil {
		return shellResult{}, err
	}
	if rep.Success {
		sctx.say(console.Green, "Found a key clue! (total: "+strconv.Itoa(s.session.State.Clues)+")")
	} else {
		sctx.say(console.BrightBlack, "Nothing turned up...")
	}
	if !rep.Encounter {
		return shellResult{}, nil
	}
	sctx.say(console.Magenta, "\n[Special event] A familiar figure catches your eye...")
	switch {
	case rep.Met == nil:
		sctx.say(console.BrightBlack, "Just a passer-by after all. (no new companion)")
	case rep.JoinedParty:
		sctx.say(console.Green, rep.Met.Name+" is investigating here too!\n>>> "+rep.Met.Name+" joins the party!")
	default:
		sctx.say(console.Green, rep.Met.Name+" is investigating here too!\n>>> The party is full, so "+rep.Met.Name+" waits in reserve.")
	}
	return shellResult{}, nil
}

// shellStatus shows the story header, the roster and the backpack.
func shellStatus(sctx *shellContext) (shellResult, error) {
	s := sctx.shell
	_ = s.conn.WriteLine(console.RenderStatus(s.session.State, s.session.Location()))
	_ = s.conn.WriteLine(console.RenderParty("Active", s.session.Party()))
	if reserve := s.session.Roster.Reserve(); len(reserve) > 0 {
		_ = s.conn.WriteLine(console.RenderParty("Reserve", reserve))
	}
	var items []string
	for _, slot := range s.session.Backpack.Slots() {
		items = append(items, slot.Item.Name()+" x"+strconv.Itoa(slot.Quantity))
	}
	if len(items) == 0 {
		items = []string{"(empty)"}
	}
	_ = s.conn.WriteLine(console.Colorize(console.Yellow, "[Backpack] ") + strings.Join(items, ", "))
	return shellResult{}, nil
}

// shellHelp lists the commands by category.
func shellHelp(sctx *shellContext) (shellResult, error) {
	s := sctx.shell
	_ = s.conn.WriteLine(console.Colorize(console.BrightWhite, "Available commands:"))

	categories := []struct {
		name  string
		label string
	}{
		{command.CategoryTown, "Town"},
		{command.CategoryParty, "Party"},
		{command.CategorySystem, "System"},
	}

	byCategory := s.registry.CommandsByCategory()
	for _, cat := range categories {
		cmds := byCategory[cat.name]
		if len(cmds) == 0 {
			continue
		}
		_ = s.conn.WriteLine(console.Colorf(console.BrightYellow, "  %s:", cat.label))
		for _, cmd := range cmds {
			aliases := ""
			if len(cmd.Aliases) > 0 {
				aliases = " (" + strings.Join(cmd.Aliases, ", ") + ")"
			}
			_ = s.conn.WriteLine(console.Colorf(console.Green, "    %-12s", cmd.Name) + aliases + ": " + cmd.Help)
		}
	}
	return shellResult{}, nil
}

// shellQuit ends the current game.
func shellQuit(sctx *shellContext) (shellResult, error) {
	sctx.say(console.Cyan, "The investigation is put on hold.")
	return shellResult{quit: true}, nil
}
