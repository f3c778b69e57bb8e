package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hormonya/hormonya/internal/client"
	"github.com/hormonya/hormonya/internal/cycle"
	"github.com/hormonya/hormonya/internal/session"
)

const defaultServer = "http://localhost:3000"

// options holds the global flags and the injectable pieces of the CLI.
type options struct {
	server    string
	cachePath string
	today     func() cycle.Date
}

func defaultOptions() *options {
	path, err := session.DefaultPath()
	if err != nil {
		path = "hormonya-session.json"
	}
	return &options{
		server:    defaultServer,
		cachePath: path,
		today:     cycle.Today,
	}
}

func newRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "hormonya",
		Short: "Track your cycle and chat with Hormonya from the terminal",
		Long: `hormonya talks to a Hormonya server.

Sign in with your email, record the first day of your period and see the
next one predicted on a calendar. Cycles are assumed to be 28 days long.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.server, "server", opts.server, "Hormonya server URL")
	root.PersistentFlags().StringVar(&opts.cachePath, "cache", opts.cachePath, "signed-in identity file")

	root.AddCommand(
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newWhoamiCmd(opts),
		newCalendarCmd(opts),
		newTrackCmd(opts),
		newPredictCmd(opts),
		newChatCmd(opts),
		newMigrateCmd(),
	)
	return root
}

func (o *options) store() *session.FileStore {
	return session.NewFileStore(o.cachePath)
}

// client returns an API client carrying the cached session token, if any.
func (o *options) client(id *session.Identity) (*client.Client, error) {
	var opts []client.Option
	if id != nil && id.Token != "" {
		opts = append(opts, client.WithToken(id.Token))
	}
	return client.New(o.server, opts...)
}

// gate loads the cached identity and builds the login wall over it.
func (o *options) gate() (*session.Gate, *client.Client, error) {
	store := o.store()
	id, err := store.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", store.Path(), err)
	}
	c, err := o.client(id)
	if err != nil {
		return nil, nil, err
	}
	gate, err := session.NewGate(c, store)
	if err != nil {
		return nil, nil, err
	}
	return gate, c, nil
}
