package combat

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/noahsark/internal/game/character"
	"github.com/cory-johannsen/noahsark/internal/game/inventory"
	"github.com/cory-johannsen/noahsark/internal/game/ruleset"
)

// partyPhase lets every living member act in list order and applies their damage.
//
// Postcondition: Returns true as soon as the monster reaches 0 HP; later members do not act.
func (b *Battle) partyPhase(ctx context.Context) (bool, error) {
	for _, actor := range b.party {
		if !actor.IsAlive() {
			continue
		}
		var (
			dmg int
			err error
		)
		if actor.Controlled {
			dmg, err = b.playerTurn(ctx, actor)
		} else {
			dmg = b.npcTurn(actor)
		}
		if err != nil {
			return false, err
		}
		if dmg > 0 {
			b.monster.ApplyDamage(dmg)
		}
		if b.monster.IsDead() {
			return true, nil
		}
	}
	return false, nil
}

func (b *Battle) turn(actor *character.Character) Turn {
	return Turn{Round: b.round, Actor: actor, Party: b.party, Monster: b.monster}
}

// playerTurn asks the Decider until an action completes and returns its damage.
//
// Rejected selections, cancelled sub-menus and failed item applications
// re-prompt without consuming the turn.
func (b *Battle) playerTurn(ctx context.Context, actor *character.Character) (int, error) {
	t := b.turn(actor)
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		act, err := b.decider.ChooseAction(ctx, t)
		if err != nil {
			return 0, fmt.Errorf("choosing action for %s: %w", actor.Name, err)
		}
		switch act {
		case ActionAttack:
			return b.normalAttack(actor), nil

		case ActionSkill:
			idx, ok, err := b.decider.ChooseSkill(ctx, t)
			if err != nil {
				return 0, fmt.Errorf("choosing skill for %s: %w", actor.Name, err)
			}
			if !ok {
				continue
			}
			res, err := actor.PerformSkill(idx, b.party, b.rng)
			if err != nil {
				b.reject(actor, err)
				continue
			}
			return b.skillUsed(actor, res), nil

		case ActionItem:
			done, err := b.useItem(ctx, t)
			if err != nil {
				return 0, err
			}
			if done {
				return 0, nil
			}

		default:
			b.emit(Event{Kind: EventInvalidSelection, Actor: actor.Name, Detail: fmt.Sprintf("unknown action %d", act)})
		}
	}
}

// useItem runs the item sub-menu. It reports true only when an item was applied.
func (b *Battle) useItem(ctx context.Context, t Turn) (bool, error) {
	if b.inv == nil || b.inv.IsEmpty() {
		b.emit(Event{Kind: EventEmptyResource, Actor: t.Actor.Name, Detail: inventory.ErrEmptyInventory.Error()})
		return false, nil
	}
	slot, ok, err := b.decider.ChooseItem(ctx, t, b.inv)
	if err != nil {
		return false, fmt.Errorf("choosing item for %s: %w", t.Actor.Name, err)
	}
	if !ok {
		return false, nil
	}
	ti, ok, err := b.decider.ChooseTarget(ctx, t)
	if err != nil {
		return false, fmt.Errorf("choosing target for %s: %w", t.Actor.Name, err)
	}
	if !ok {
		return false, nil
	}
	if ti < 0 || ti >= len(b.party) {
		b.emit(Event{Kind: EventInvalidSelection, Actor: t.Actor.Name, Detail: fmt.Sprintf("target %d out of range", ti)})
		return false, nil
	}
	slots := b.inv.Slots()
	target := b.party[ti]
	applied, err := b.inv.Use(slot, target)
	if err != nil {
		b.reject(t.Actor, err)
		return false, nil
	}
	name := slots[slot].Item.Name()
	if !applied {
		b.emit(Event{Kind: EventItemFailed, Actor: t.Actor.Name, Target: target.Name, Detail: name})
		return false, nil
	}
	b.emit(Event{Kind: EventItemUsed, Actor: t.Actor.Name, Target: target.Name, Amount: target.HP(), Detail: name})
	return true, nil
}

// npcTurn picks a random ready skill with NPCSkillChance percent, otherwise
// (or when nothing is ready) a normal attack.
func (b *Battle) npcTurn(actor *character.Character) int {
	if b.rng.UniformInt(1, 100) <= b.cfg.NPCSkillChance {
		res, err := actor.UseRandomSkill(b.party, b.rng)
		if err == nil {
			return b.skillUsed(actor, res)
		}
		b.logger.Debug("no ready skill, attacking", zap.String("actor", actor.Name))
	}
	return b.normalAttack(actor)
}

func (b *Battle) normalAttack(actor *character.Character) int {
	dmg := ResolveNormalAttack(actor.Attack(), b.cfg.JitterLow, b.cfg.JitterHigh, b.rng)
	b.emit(Event{
		Kind:   EventAttack,
		Actor:  actor.Name,
		Target: b.monster.Name,
		Amount: dmg,
		Quote:  actor.Quote(ruleset.QuoteAttack),
	})
	return dmg
}

func (b *Battle) skillUsed(actor *character.Character, res character.SkillResult) int {
	target := b.monster.Name
	if res.Damage == 0 {
		target = ""
	}
	b.emit(Event{
		Kind:     EventSkill,
		Actor:    actor.Name,
		Target:   target,
		Amount:   res.Damage,
		Critical: res.Critical,
		Detail:   res.Skill.Name,
		Quote:    actor.Quote(ruleset.QuoteSkill),
	})
	return res.Damage
}

func (b *Battle) reject(actor *character.Character, err error) {
	kind := EventInvalidSelection
	if errors.Is(err, character.ErrNoReadySkill) || errors.Is(err, inventory.ErrEmptyInventory) {
		kind = EventEmptyResource
	}
	b.emit(Event{Kind: kind, Actor: actor.Name, Detail: err.Error()})
}

// retaliate has the monster strike one uniformly chosen living member.
//
// Postcondition: No draw is made when nobody is alive.
func (b *Battle) retaliate() {
	alive := b.party.Alive()
	if len(alive) == 0 {
		return
	}
	target := alive[b.rng.UniformInt(0, len(alive)-1)]
	if Dodged(target.Speed(), b.rng) {
		b.emit(Event{Kind: EventDodge, Actor: b.monster.Name, Target: target.Name})
		return
	}
	target.ApplyDamage(b.monster.Attack)
	b.emit(Event{Kind: EventRetaliate, Actor: b.monster.Name, Target: target.Name, Amount: b.monster.Attack})
}
