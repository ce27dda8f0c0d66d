package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agrisense/agrisense/internal/zone"
)

func newZonesCmd(c *cli) *cobra.Command {
	var asGeoJSON bool
	cmd := &cobra.Command{
		Use:   "zones",
		Short: "List monitored zones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer s.Close()

			zones, err := s.zones.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list zones: %w", err)
			}
			out := cmd.OutOrStdout()
			if asGeoJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(zone.FeatureCollection(zones))
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCROP\tSTATUS\tCONFIDENCE\tAREA (ha)\tLAST SCAN\tISSUE")
			for _, z := range zones {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.0f%%\t%.1f\t%s\t%s\n",
					z.ID, z.Name, z.CropType, z.Status, z.Confidence, z.AreaHectares(), z.LastScan, z.Issue())
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asGeoJSON, "geojson", false, "print zones as a GeoJSON FeatureCollection")
	return cmd
}
