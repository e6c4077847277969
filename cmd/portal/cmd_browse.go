package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"listing_portal/internal/adapters/observability"
	"listing_portal/internal/adapters/tui"
	"listing_portal/internal/app"
	"listing_portal/internal/domain"
)

func (rt *runtime) runBrowse(cmd *cobra.Command, _ []string) error {
	summary, err := rt.flags.summary.summary()
	if err != nil {
		return err
	}

	// the terminal belongs to the UI; logs go to a file
	lf, err := observability.OpenLogFile(rt.effective().LogFile)
	if err != nil {
		return err
	}
	defer lf.Close()
	rt.setupLogging(lf)
	defer rt.close()

	c, err := rt.client()
	if err != nil {
		return err
	}
	opts := rt.appOptions()
	loader := app.NewCollectionLoader(c, opts...)
	defer loader.Unmount()

	m := tui.New(cmd.Context(), tui.Config{
		Client:  c,
		Loader:  loader,
		Summary: func(domain.PropertyRecord) domain.ListingSummary { return summary },
		Options: opts,
	})
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	return err
}
