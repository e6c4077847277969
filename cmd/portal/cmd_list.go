package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"listing_portal/internal/app"
)

var errFetchFailed = errors.New("fetch failed")

func (rt *runtime) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print your properties",
		Args:  cobra.NoArgs,
		RunE:  rt.runList,
	}
}

func (rt *runtime) runList(cmd *cobra.Command, _ []string) error {
	rt.setupLogging(cmd.ErrOrStderr())
	defer rt.close()

	c, err := rt.client()
	if err != nil {
		return err
	}
	loader := app.NewCollectionLoader(c, rt.appOptions()...)
	defer loader.Unmount()

	st := loader.Load(cmd.Context())
	if !st.IsReady() {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error: "+st.Err())
		return errFetchFailed
	}
	cards := loader.Cards()
	if len(cards) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No properties found.")
		return nil
	}
	for i, card := range cards {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		printCard(cmd.OutOrStdout(), card)
	}
	return nil
}

func printCard(w io.Writer, c app.CardView) {
	fmt.Fprintln(w, c.Address)
	fmt.Fprintln(w, "  "+c.Location)
	fmt.Fprintln(w, "  "+strings.Join(c.Details, "  "))
	if c.HasImages() {
		fmt.Fprintln(w, "  Images: "+strconv.Itoa(len(c.ImageURLs))+"  "+c.ImageURLs[0])
	} else {
		fmt.Fprintln(w, "  "+c.ImagesPlaceholder())
	}
	fmt.Fprintln(w, "  "+c.IDLabel)
}
