package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ricardo08S/StarrySky-4/internal/catalog"
	"github.com/Ricardo08S/StarrySky-4/internal/render"
)

func summaryCmd(opts *rootOptions) *cobra.Command {
	var (
		limit        int
		snapshotPath string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print a catalog summary, or export it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			res, err := a.loadCatalog()
			if err != nil {
				return err
			}

			if snapshotPath != "" {
				return writeSnapshot(cmd.OutOrStdout(), snapshotPath, res)
			}
			catalog.WriteSummaryTable(cmd.OutOrStdout(), res, limit)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of stars to list")
	cmd.Flags().StringVar(&snapshotPath, "snapshot-path", "", "Export JSON snapshot to file (use - for stdout)")
	return cmd
}

func writeSnapshot(stdout io.Writer, path string, res *catalog.Result) error {
	export := catalog.ExportStars(res, time.Now())
	if path == "-" {
		if err := export.WriteJSON(stdout); err != nil {
			return fmt.Errorf("write JSON to stdout: %w", err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()
	if err := export.WriteJSON(f); err != nil {
		return fmt.Errorf("write JSON to file: %w", err)
	}
	return nil
}

func constellationsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "constellations",
		Short: "List the built-in constellations and check them against the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			res, err := a.loadCatalog()
			if err != nil {
				return err
			}

			scene := render.NewScene()
			mgr, err := a.newSession(scene)
			if err != nil {
				return err
			}
			mgr.Reload(res)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-4s %-12s %8s %6s %8s\n", "Key", "Name", "Vertices", "Edges", "Missing")
			for _, st := range mgr.Constellations() {
				toggled, err := mgr.Toggle(st.Index)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%-4d %-12s %8d %6d %8d\n",
					st.Index, st.Name, st.Vertices, st.Edges, len(toggled.Missing))
				for _, m := range toggled.Missing {
					a.logger.Debug("%v", m)
				}
			}
			return nil
		},
	}
}
