package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Ricardo08S/StarrySky-4/internal/catalog"
	"github.com/Ricardo08S/StarrySky-4/internal/render"
	"github.com/Ricardo08S/StarrySky-4/internal/ui"
)

func viewCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Interactive terminal sky view (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), opts)
		},
	}
}

func runView(ctx context.Context, opts *rootOptions) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the sky view needs a terminal; use summary or serve instead")
	}

	a, err := newApp(opts)
	if err != nil {
		return err
	}
	// The alt screen owns the terminal; errors reach the footer instead.
	a.logger.SetOutput(io.Discard)

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	scene := render.NewScene()
	mgr, err := a.newSession(scene)
	if err != nil {
		return err
	}

	res, err := a.loadCatalog()
	if err != nil {
		return err
	}
	if errs := mgr.Reload(res); len(errs) > 0 {
		return fmt.Errorf("place stars: %w", errors.Join(errs...))
	}

	model := ui.New(mgr, scene.Snapshot, a.cfg.Field.CameraSensitivity)
	if obs, ok := a.cfg.Observer.Site(); ok {
		model = model.WithObserver(obs)
	}
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if a.cfg.Catalog.Watch {
		go func() {
			err := catalog.Watch(ctx, a.cfg.Catalog.Path, a.format, a.logger.Slog(), func(res *catalog.Result) {
				mgr.Reload(res)
				p.Send(ui.TickMsg(time.Now()))
			})
			if err != nil {
				p.Send(ui.ErrorMsg{Error: fmt.Errorf("watch catalog: %w", err)})
			}
		}()
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
