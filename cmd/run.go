package cmd

import (
	"context"

	"github.com/castdeck/castdeck/key"
	"github.com/castdeck/castdeck/log"
	"github.com/castdeck/castdeck/media"
	"github.com/castdeck/castdeck/mini"
	"github.com/castdeck/castdeck/player"
	"github.com/castdeck/castdeck/session"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

type viewOptions struct {
	session *session.Session
}

// view drives a session until the user leaves.
type view func(ctx context.Context, options *viewOptions) error

func runMini(ctx context.Context, options *viewOptions) error {
	return mini.Run(ctx, &mini.Options{Session: options.session})
}

// launch loads the configured catalog, starts a session on the configured
// surface and hands it to v. The session stops once v returns.
func launch(ctx context.Context, v view) error {
	if viper.GetString(key.Player) == player.BackendMPV {
		CheckDependencies()
	}

	catalog, err := media.Open(ctx, viper.GetString(key.CatalogPath))
	if err != nil {
		return err
	}
	log.Infof("catalog loaded with %d items", catalog.Len())

	options, err := session.OptionsFromConfig(catalog, "")
	if err != nil {
		return err
	}
	s := session.New(options)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Run(ctx)
	})
	g.Go(func() error {
		defer cancel()
		return v(ctx, &viewOptions{session: s})
	})

	return g.Wait()
}
