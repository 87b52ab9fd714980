package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"syndication-kit/core/extensions/geo"
)

func newGeoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geo",
		Short: "Convert coordinates between decimal degrees and degrees-minutes-seconds",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "dms <decimal>",
		Short: "Format a decimal coordinate as degrees, minutes and seconds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("parsing %q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), geo.DecimalToDegreesMinutesSeconds(v))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "decimal <dms>",
		Short: "Parse a degrees-minutes-seconds coordinate into decimal degrees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := geo.DegreesMinutesSecondsToDecimal(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), geo.FormatCoordinate(v))
			return nil
		},
	})

	return cmd
}
