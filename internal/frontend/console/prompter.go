package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/noahsark/internal/game/combat"
	"github.com/cory-johannsen/noahsark/internal/game/inventory"
)

var _ combat.Decider = (*Prompter)(nil)

// Prompter asks the player for numbered choices. It implements combat.Decider.
type Prompter struct {
	conn *Conn
}

// NewPrompter creates a Prompter reading from and writing to conn.
func NewPrompter(conn *Conn) *Prompter {
	return &Prompter{conn: conn}
}

// Choose prompts until the player enters an integer in [lo, hi].
//
// Precondition: lo <= hi.
// Postcondition: Returns a value in [lo, hi], or the read error (io.EOF, ctx.Err()).
func (p *Prompter) Choose(ctx context.Context, prompt string, lo, hi int) (int, error) {
	for {
		if err := p.conn.WritePrompt(prompt + "> "); err != nil {
			return 0, err
		}
		line, err := p.conn.ReadLine(ctx)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && n >= lo && n <= hi {
			return n, nil
		}
		if err := p.conn.WriteLine(Colorf(Red, "Please enter a number from %d to %d.", lo, hi)); err != nil {
			return 0, err
		}
	}
}

// menu writes body then asks for a choice in [0, n]; 0 means back.
func (p *Prompter) menu(ctx context.Context, body, prompt string, n int) (int, bool, error) {
	if err := p.conn.WriteLine(body); err != nil {
		return 0, false, err
	}
	choice, err := p.Choose(ctx, prompt, 0, n)
	if err != nil || choice == 0 {
		return 0, false, err
	}
	return choice - 1, true, nil
}

var actionMenu = []combat.ActionType{combat.ActionAttack, combat.ActionSkill, combat.ActionItem}

// ChooseAction shows the acting member's status and the top-level battle menu.
func (p *Prompter) ChooseAction(ctx context.Context, t combat.Turn) (combat.ActionType, error) {
	header := fmt.Sprintf("%s\n%s  vs  %s\n1. Attack  2. Skill  3. Item",
		Colorf(BrightWhite, "[Round %d] %s's turn", t.Round, t.Actor.Name),
		RenderMember(t.Actor),
		RenderMonster(t.Monster),
	)
	if err := p.conn.WriteLine(header); err != nil {
		return combat.ActionUnknown, err
	}
	n, err := p.Choose(ctx, "Action", 1, len(actionMenu))
	if err != nil {
		return combat.ActionUnknown, err
	}
	return actionMenu[n-1], nil
}

// ChooseSkill lists the actor's skills, cooling-down ones included.
func (p *Prompter) ChooseSkill(ctx context.Context, t combat.Turn) (int, bool, error) {
	return p.menu(ctx, RenderSkills(t.Actor), "Skill", len(t.Actor.Skills))
}

// ChooseItem lists the shared inventory.
func (p *Prompter) ChooseItem(ctx context.Context, _ combat.Turn, inv *inventory.Inventory) (int, bool, error) {
	return p.menu(ctx, RenderInventory(inv), "Item", inv.Len())
}

// ChooseTarget lists the party, fallen members included.
func (p *Prompter) ChooseTarget(ctx context.Context, t combat.Turn) (int, bool, error) {
	return p.menu(ctx, RenderParty("Target", t.Party)+"\n0. Back", "Target", len(t.Party))
}
