package console

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/noahsark/internal/game/character"
	"github.com/cory-johannsen/noahsark/internal/game/combat"
	"github.com/cory-johannsen/noahsark/internal/game/inventory"
	"github.com/cory-johannsen/noahsark/internal/game/npc"
	"github.com/cory-johannsen/noahsark/internal/game/progress"
	"github.com/cory-johannsen/noahsark/internal/game/world"
)

var _ combat.Presenter = (*Renderer)(nil)

// Renderer writes battle events and game views to a Conn. It implements
// combat.Presenter.
type Renderer struct {
	conn *Conn
}

// NewRenderer creates a Renderer writing to conn.
func NewRenderer(conn *Conn) *Renderer {
	return &Renderer{conn: conn}
}

// Notify renders one battle event. Write errors are dropped; input errors
// surface through the Prompter instead.
func (r *Renderer) Notify(e combat.Event) {
	r.Print(RenderEvent(e))
}

// Print writes text, which may span several lines.
func (r *Renderer) Print(text string) {
	if text == "" {
		return
	}
	_ = r.conn.WriteLine(strings.TrimRight(text, "\n"))
}

// Say renders one line of dialogue or narration.
func (r *Renderer) Say(speaker, text string) {
	r.Print(RenderLine(speaker, text))
}

// RenderLine formats dialogue as "speaker: text", or bare narration when speaker is empty.
func RenderLine(speaker, text string) string {
	if speaker == "" {
		return Colorize(White, text)
	}
	return Colorize(BrightYellow, speaker+": ") + Colorf(White, "%q", text)
}

// RenderEvent formats one battle event.
func RenderEvent(e combat.Event) string {
	var b strings.Builder
	switch e.Kind {
	case combat.EventBattleStart:
		b.WriteString(Colorf(BrightRed, "=== Battle: %s (%s) ===", e.Actor, e.Detail))
		if e.Quote != "" {
			b.WriteString("\n" + RenderLine(e.Actor, e.Quote))
		}
	case combat.EventDiscount:
		b.WriteString(Colorf(Magenta, "Your %d clues expose %s's weak points!", e.Amount, e.Target))
	case combat.EventRoundStart:
		b.WriteString(Colorf(Cyan, "--- Round %d --- %s HP %d", e.Round, e.Target, e.Amount))
	case combat.EventAttack:
		if e.Quote != "" {
			b.WriteString(RenderLine(e.Actor, e.Quote) + "\n")
		}
		b.WriteString(fmt.Sprintf("%s attacks %s for %s damage.", e.Actor, e.Target, Colorf(Yellow, "%d", e.Amount)))
	case combat.EventSkill:
		if e.Quote != "" {
			b.WriteString(RenderLine(e.Actor, e.Quote) + "\n")
		}
		if e.Target == "" {
			b.WriteString(Colorf(Green, "%s uses %s!", e.Actor, e.Detail))
			break
		}
		b.WriteString(fmt.Sprintf("%s uses %s on %s for %s damage.", e.Actor, Colorize(BrightCyan, e.Detail), e.Target, Colorf(Yellow, "%d", e.Amount)))
		if e.Critical {
			b.WriteString(Colorize(BrightRed, " Critical hit!"))
		}
	case combat.EventItemUsed:
		b.WriteString(Colorf(Green, "%s uses %s on %s. (HP %d)", e.Actor, e.Detail, e.Target, e.Amount))
	case combat.EventItemFailed:
		b.WriteString(Colorf(BrightBlack, "%s has no effect on %s.", e.Detail, e.Target))
	case combat.EventInvalidSelection:
		b.WriteString(Colorf(Red, "Invalid selection: %s", e.Detail))
	case combat.EventEmptyResource:
		b.WriteString(Colorf(Red, "Not available: %s", e.Detail))
	case combat.EventRetaliate:
		b.WriteString(Colorf(Red, "%s strikes %s for %d damage!", e.Actor, e.Target, e.Amount))
	case combat.EventDodge:
		b.WriteString(Colorf(Cyan, "%s dodges %s's attack!", e.Target, e.Actor))
	case combat.EventVictory:
		b.WriteString(Colorf(BrightYellow, "Victory! %s is defeated. Gained %s.", e.Target, inventory.FormatMoney(e.Amount)))
		if e.Quote != "" {
			b.WriteString("\n" + RenderLine(e.Actor, e.Quote))
		}
	case combat.EventLevelUp:
		b.WriteString(Colorf(BrightYellow, "%s reached level %d!", e.Actor, e.Amount))
	case combat.EventDefeat:
		b.WriteString(Colorize(BrightRed, "The party has fallen..."))
	default:
		b.WriteString(e.Kind.String())
	}
	return b.String()
}

// RenderMember formats one party member's stat line.
func RenderMember(c *character.Character) string {
	hp := Colorf(Green, "%d/%d", c.HP(), c.MaxHP())
	if !c.IsAlive() {
		hp = Colorize(BrightBlack, "down")
	}
	return fmt.Sprintf("%-18s Lv%-3d HP %s  ATK %d  KNO %d  LUK %d  EXP %d/%d",
		c.Name, c.Level(), hp, c.Attack(), c.Knowledge(), c.Luck(), c.Exp(), character.ExpThreshold(c.Level()))
}

// RenderParty formats a numbered party listing, starting at 1.
func RenderParty(title string, members []*character.Character) string {
	var b strings.Builder
	b.WriteString(Colorize(Yellow, "["+title+"]"))
	for i, c := range members {
		b.WriteString(fmt.Sprintf("\n %d. %s", i+1, RenderMember(c)))
	}
	return b.String()
}

// RenderSkills formats a numbered skill menu with a back option.
func RenderSkills(c *character.Character) string {
	var b strings.Builder
	for i, s := range c.Skills {
		state := Colorize(Green, "ready")
		if !s.Ready() {
			state = Colorf(BrightBlack, "cooldown %d", s.Cooldown())
		}
		b.WriteString(fmt.Sprintf("%d. %s (%s) %s\n", i+1, s.Name, state, Colorize(Dim, s.Description)))
	}
	b.WriteString("0. Back")
	return b.String()
}

// RenderInventory formats a numbered item menu with a back option.
func RenderInventory(inv *inventory.Inventory) string {
	var b strings.Builder
	for i, s := range inv.Slots() {
		b.WriteString(fmt.Sprintf("%d. %s x%d %s\n", i+1, s.Item.Name(), s.Quantity, Colorize(Dim, s.Item.Description())))
	}
	b.WriteString("0. Back")
	return b.String()
}

// RenderCatalog formats the shop listing with prices.
func RenderCatalog(items []*inventory.ItemDef, money int) string {
	var b strings.Builder
	b.WriteString(Colorf(BrightYellow, "=== Supply Shop === (you have %s)", inventory.FormatMoney(money)))
	for i, d := range items {
		b.WriteString(fmt.Sprintf("\n%d. %-24s %12s  %s", i+1, d.Name, inventory.FormatMoney(d.Price), Colorize(Dim, d.Description)))
	}
	b.WriteString("\n0. Leave")
	return b.String()
}

// RenderMonster formats an encounter announcement.
func RenderMonster(m *npc.Monster) string {
	color := White
	switch m.Type {
	case npc.Elite:
		color = Magenta
	case npc.Boss:
		color = BrightRed
	}
	return Colorf(color, "[%s] %s  HP %d  ATK %d  (%s)", m.Type, m.Name, m.HP, m.Attack, m.HealthDescription())
}

// RenderStatus formats the shell header.
func RenderStatus(st *progress.State, loc *world.Location) string {
	name := "?"
	if loc != nil {
		name = loc.Name
	}
	return Colorf(Cyan, "[Location] %s | [Chapter] %d\n[Money] %s | [Clues] %d", name, st.Chapter, inventory.FormatMoney(st.Money), st.Clues)
}

// RenderLocations formats the travel menu, greying out locked destinations.
func RenderLocations(locs []*world.Location, chapter int) string {
	var b strings.Builder
	for i, l := range locs {
		if i > 0 {
			b.WriteString("\n")
		}
		if !l.Unlocked(chapter) {
			b.WriteString(Colorf(BrightBlack, "%d. %s (locked)", i+1, l.Name))
			continue
		}
		b.WriteString(fmt.Sprintf("%d. %s", i+1, l.Name))
	}
	return b.String()
}

// RenderChapter formats chapter narration.
func RenderChapter(ch progress.Chapter) string {
	var b strings.Builder
	b.WriteString(Colorf(BrightCyan, "=== Chapter %d: %s ===", ch.Number, ch.Title))
	for _, l := range ch.Lines {
		b.WriteString("\n" + RenderLine(l.Speaker, l.Text))
	}
	return b.String()
}
