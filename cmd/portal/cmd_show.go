package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"listing_portal/internal/app"
	"listing_portal/internal/domain"
)

// summaryFlags carries the listing scalars the backend record lacks.
type summaryFlags struct {
	price         float64
	forSale       bool
	availableFrom string
}

func (sf *summaryFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&sf.price, "price", 0, "Listing price")
	fs.BoolVar(&sf.forSale, "for-sale", false, "Listing is for sale (default: for rent)")
	fs.StringVar(&sf.availableFrom, "available-from", "", "Availability date (YYYY-MM-DD or RFC 3339)")
}

func (sf summaryFlags) summary() (domain.ListingSummary, error) {
	s := domain.ListingSummary{Price: sf.price, ForSale: sf.forSale}
	if sf.availableFrom != "" {
		t, err := app.ParseDate(sf.availableFrom)
		if err != nil {
			return domain.ListingSummary{}, fmt.Errorf("--available-from: %w", err)
		}
		s.AvailableFrom = t
	}
	return s, nil
}

type showFlags struct {
	summaryFlags
	image int
}

func (rt *runtime) showCmd() *cobra.Command {
	var sf showFlags
	cmd := &cobra.Command{
		Use:   "show <property-id>",
		Short: "Print the details of one property",
		Long: `Fetches one listing and prints the detail view. Price, status and
availability are not part of the listing record and are passed as flags.

Example:
  portal show 101 --price 350000 --for-sale --available-from 2024-06-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.runShow(cmd, args[0], sf)
		},
	}
	sf.bind(cmd)
	cmd.Flags().IntVar(&sf.image, "image", 0, "Also print gallery entry N (1-based)")
	return cmd
}

func (rt *runtime) runShow(cmd *cobra.Command, id string, sf showFlags) error {
	rt.setupLogging(cmd.ErrOrStderr())
	defer rt.close()

	summary, err := sf.summary()
	if err != nil {
		return err
	}

	c, err := rt.client()
	if err != nil {
		return err
	}
	p := app.NewDetailPresenter(c, summary, rt.appOptions()...)
	defer p.Close()

	st := p.Show(cmd.Context(), domain.PropertyID(id))
	if !st.IsReady() {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error: "+st.Err())
		return errFetchFailed
	}
	if sf.image > 0 {
		if err := p.OpenGallery(sf.image - 1); err != nil {
			return fmt.Errorf("image %d: %w", sf.image, err)
		}
	}
	v, _ := p.View()

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, v.Title)
	if v.HasImages() {
		fmt.Fprintln(w, "  "+v.RepresentativeImage)
		for i, u := range v.ImageURLs {
			fmt.Fprintln(w, "  ["+strconv.Itoa(i+1)+"] "+u)
		}
	} else {
		fmt.Fprintln(w, "  No images available")
	}
	for _, s := range v.Sections {
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.Title)
		for _, l := range s.Lines {
			fmt.Fprintln(w, "  "+l)
		}
	}
	if v.Gallery.Open {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Gallery "+v.Gallery.Counter)
		fmt.Fprintln(w, "  "+v.Gallery.ImageURL+"  ("+v.Gallery.Alt+")")
	}
	return nil
}
