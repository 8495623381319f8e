// Package handlers drives the town menu: it reads commands from a console
// connection and dispatches them to the game session.
package handlers

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/noahsark/internal/frontend/console"
	"github.com/cory-johannsen/noahsark/internal/game/command"
	"github.com/cory-johannsen/noahsark/internal/game/progress"
	"github.com/cory-johannsen/noahsark/internal/game/session"
)

// Shell is the interactive game loop for one console.
type Shell struct {
	conn     *console.Conn
	prompter *console.Prompter
	renderer *console.Renderer
	session  *session.Session
	registry *command.Registry
	logger   *zap.Logger

	// eventHeader is set while a random event may speak its first line.
	eventHeader bool
}

// NewShell creates a Shell playing sess over conn and routes random event
// dialogue to the console.
//
// Precondition: conn, sess and logger must be non-nil.
func NewShell(conn *console.Conn, sess *session.Session, logger *zap.Logger) *Shell {
	s := &Shell{
		conn:     conn,
		prompter: console.NewPrompter(conn),
		renderer: console.NewRenderer(conn),
		session:  sess,
		registry: command.DefaultRegistry(),
		logger:   logger,
	}
	sess.SetNarrator(s.narrate)
	return s
}

// Run plays games until the player declines to start another.
//
// Postcondition: Returns nil when the player exits, ctx.Err() on
// cancellation, or the input error that ended the session.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := s.play(ctx); err != nil {
			return err
		}
		again, err := s.askRestart(ctx)
		if err != nil || !again {
			return err
		}
		if err := s.session.Reset(); err != nil {
			return fmt.Errorf("restarting game: %w", err)
		}
	}
}

// play runs the town menu until the player quits or the party is wiped out.
func (s *Shell) play(ctx context.Context) error {
	if ch, ok := s.session.Chapter(0); ok {
		s.showChapters([]progress.Chapter{ch})
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.showChapters(s.session.CheckStory())
		s.writeMenu()

		line, err := s.conn.ReadLine(ctx)
		if err != nil {
			return err
		}
		parsed := command.Parse(line)
		if parsed.Command == "" {
			continue
		}
		cmd, ok := s.registry.Resolve(parsed.Command)
		if !ok {
			_ = s.conn.WriteLine(console.Colorf(console.Red, "Unknown command %q. Type help for a list.", parsed.Command))
			continue
		}

		res, err := shellHandlerMap[cmd.Handler](&shellContext{ctx: ctx, shell: s, cmd: cmd, parsed: parsed})
		if err != nil {
			return err
		}
		if !res.cancelled && command.TriggersEvent(cmd.Handler) {
			s.randomEvent()
		}
		if res.quit || res.gameOver {
			return nil
		}
	}
}

func (s *Shell) writeMenu() {
	var b strings.Builder
	b.WriteString(console.Colorize(console.Cyan, "\n=================================="))
	b.WriteString("\n" + console.RenderStatus(s.session.State, s.session.Location()))
	for _, cmd := range s.registry.Menu() {
		b.WriteString(fmt.Sprintf("\n%d. %s", cmd.Menu, strings.ToUpper(cmd.Name[:1])+cmd.Name[1:]))
	}
	_ = s.conn.WriteLine(b.String())
	_ = s.conn.WritePrompt("> ")
}

func (s *Shell) showChapters(chs []progress.Chapter) {
	for _, ch := range chs {
		s.renderer.Print("\n" + console.RenderChapter(ch))
	}
}

func (s *Shell) askRestart(ctx context.Context) (bool, error) {
	_ = s.conn.WriteLine("\n==================================\nStart a new game?\n1. New game (all progress is reset)\n0. Exit")
	n, err := s.prompter.Choose(ctx, "Choice", 0, 1)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// randomEvent gives the scripted events their chance after a move or search.
func (s *Shell) randomEvent() {
	s.eventHeader = true
	id, ok := s.session.RandomEvent()
	s.eventHeader = false
	if ok {
		s.logger.Debug("random event fired", zap.String("event", id))
	}
}

// narrate prints event dialogue, opening with a banner on the first line.
func (s *Shell) narrate(speaker, text string) {
	if s.eventHeader {
		s.eventHeader = false
		s.renderer.Print(console.Colorize(console.Magenta, "\n[Random event]"))
	}
	s.renderer.Say(speaker, text)
}
