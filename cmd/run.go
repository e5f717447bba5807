package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vodila/vodila/internal/app"
	"github.com/vodila/vodila/internal/audio"
	"github.com/vodila/vodila/internal/cards"
	"github.com/vodila/vodila/internal/screen"
	audioscreen "github.com/vodila/vodila/internal/screens/audio"
	"github.com/vodila/vodila/internal/screens/history"
	"github.com/vodila/vodila/internal/screens/home"
	"github.com/vodila/vodila/internal/screens/notice"
	"github.com/vodila/vodila/internal/screens/study"
	"github.com/vodila/vodila/internal/screens/welcome"
	"github.com/vodila/vodila/internal/session"
	"github.com/vodila/vodila/internal/store"
)

// screens builds the views the menu and subcommands open.
type screens struct {
	study   func(mode cards.Mode) screen.Screen
	audio   func() screen.Screen
	history func() screen.Screen
}

// runApp builds dependencies and launches the TUI. When then is not nil
// the screen it returns is opened on top of the home menu.
func runApp(cmd *cobra.Command, then func(s screens) screen.Screen) error {
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	s := e.screens()
	newHome := func() screen.Screen {
		return home.New(home.Deps{
			Progress:   e.sync,
			Modes:      e.client,
			NewStudy:   s.study,
			NewAudio:   s.audio,
			NewHistory: s.history,
			Log:        e.log,
		})
	}
	root := welcome.New(func(ctx context.Context) (string, error) {
		id, err := e.identify(ctx)
		// Failures are logged; the first session then fetches on its own.
		_ = e.sync.Refresh(ctx)
		return id.DisplayName(), err
	}, newHome)
	if then != nil {
		root.Then(func() screen.Screen { return then(s) })
	}

	return app.Run(app.Options{
		Root:  root,
		Tasks: e.tasks,
		User:  e.user,
		Log:   e.log,
	})
}

func (e *env) screens() screens {
	selector := cards.NewSelector(e.client)
	cfg := e.cfg

	return screens{
		study: func(mode cards.Mode) screen.Screen {
			machine := session.NewMachine(selector, e.sync, e.tasks, e.log,
				session.WithDelay(cfg.Study.SwipeDelay),
				session.WithJournal(e.store),
			)
			return study.New(machine, mode, study.Options{
				Threshold:    float64(cfg.Study.SwipeThreshold),
				UnitsPerCell: cfg.Study.UnitsPerCell,
			})
		},
		audio: func() screen.Screen {
			player, err := e.player()
			if err != nil {
				e.log.WithError(err).Warn("audio player unavailable")
				return notice.New("Listen", "Audio playback is unavailable:\n"+err.Error())
			}
			return audioscreen.New(e.client, player, nil, e.log)
		},
		history: func() screen.Screen {
			return history.New(e.store)
		},
	}
}

func (e *env) player() (*audio.ExecPlayer, error) {
	dir := e.cfg.Audio.CacheDir
	if dir == "" {
		data, err := store.DataDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		dir = filepath.Join(data, "audio")
	}
	return audio.NewExecPlayer(e.client, dir, e.cfg.Audio.Command, e.log)
}
