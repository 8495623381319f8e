// Package command provides the town menu's command registry, parser, and
// built-in command definitions.
package command

// Categories for organizing commands.
const (
	CategoryTown   = "town"
	CategoryParty  = "party"
	CategorySystem = "system"
)

// Handler identifiers mapping commands to shell handlers.
const (
	HandlerBattle      = "battle"
	HandlerMove        = "move"
	HandlerShop        = "shop"
	HandlerParty       = "party"
	HandlerInvestigate = "investigate"
	HandlerStatus      = "status"
	HandlerHelp        = "help"
	HandlerQuit        = "quit"
)

// Hidden marks a command that has no number on the town menu.
const Hidden = -1

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command (town, party, system).
	Category string
	// Handler maps to the shell handler.
	Handler string
	// Menu is the number shown on the town menu, or Hidden.
	Menu int
}

// BuiltinCommands returns all built-in commands for the game.
func BuiltinCommands() []Command {
	return []Command{
		// Town commands
		{Name: "battle", Aliases: []string{"fight", "b"}, Help: "Look for a fight at the current location", Category: CategoryTown, Handler: HandlerBattle, Menu: 1},
		{Name: "move", Aliases: []string{"go", "travel", "m"}, Help: "Travel to another location (move [number])", Category: CategoryTown, Handler: HandlerMove, Menu: 2},
		{Name: "shop", Aliases: []string{"buy"}, Help: "Visit the supply shop", Category: CategoryTown, Handler: HandlerShop, Menu: 3},
		{Name: "investigate", Aliases: []string{"search", "i"}, Help: "Search the area for clues", Category: CategoryTown, Handler: HandlerInvestigate, Menu: 5},

		// Party commands
		{Name: "party", Aliases: []string{"team", "p"}, Help: "Manage the party and use items", Category: CategoryParty, Handler: HandlerParty, Menu: 4},
		{Name: "status", Aliases: []string{"st"}, Help: "Show the party and story progress", Category: CategoryParty, Handler: HandlerStatus, Menu: Hidden},

		// System commands
		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp, Menu: Hidden},
		{Name: "quit", Aliases: []string{"exit", "q"}, Help: "End the current game", Category: CategorySystem, Handler: HandlerQuit, Menu: 0},
	}
}

// TriggersEvent reports whether finishing the handler may set off a random event.
func TriggersEvent(handler string) bool {
	switch handler {
	case HandlerMove, HandlerInvestigate:
		return true
	default:
		return false
	}
}
