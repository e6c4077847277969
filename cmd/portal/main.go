package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"listing_portal/internal/shared"
)

type flags struct {
	base    string
	token   string
	locale  string
	summary summaryFlags
}

func newRootCmd(cfg shared.Config) *cobra.Command {
	var f flags
	rt := &runtime{cfg: cfg, flags: &f}

	root := &cobra.Command{
		Use:   "portal",
		Short: "Browse the properties you own",
		Long: `portal lists and inspects the real-estate listings owned by the
authenticated user.

Without a subcommand it opens the interactive browser. The bearer token is
taken from --token, API_TOKEN, TOKEN_FILE or redis (REDIS_ADDR), in that order.
--price, --for-sale and --available-from fill the Price & Status section of
every detail overlay.`,
		SilenceUsage: true,
		RunE:         rt.runBrowse,
	}
	root.PersistentFlags().StringVar(&f.base, "base", "", "Backend base URL (default: API_BASE_URL)")
	root.PersistentFlags().StringVar(&f.token, "token", "", "Bearer token (default: API_TOKEN)")
	root.PersistentFlags().StringVar(&f.locale, "locale", "", "Locale for dates (default: LOCALE or LANG)")

	f.summary.bind(root)

	root.AddCommand(rt.listCmd())
	root.AddCommand(rt.showCmd())
	root.AddCommand(rt.tokenCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd(shared.Load()).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
