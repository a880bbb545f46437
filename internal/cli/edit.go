package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/envelopekit/envelope/pkg/adjacency"
)

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Modify a model in place",
	}
	cmd.AddCommand(newSolveAdjacencyCmd())
	return cmd
}

func newSolveAdjacencyCmd() *cobra.Command {
	var (
		configPath     string
		tolerance      float64
		angleTolerance float64
		output         string
		workers        int
	)

	cmd := &cobra.Command{
		Use:   "solve-adjacency <model.json>",
		Short: "Pair coincident faces between rooms as interior surfaces",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			m, err := loadModel(args[0], configPath, tolerance, angleTolerance)
			if err != nil {
				return err
			}

			result, err := adjacency.Solve(m.Rooms(), adjacency.Options{
				Tolerance: m.Tolerance(),
				Workers:   workers,
			})
			if err != nil {
				return err
			}
			logger.Info("adjacency solved",
				"face_pairs", len(result.Faces),
				"aperture_pairs", len(result.Apertures),
				"door_pairs", len(result.Doors))
			for _, mismatch := range result.SubFaceMismatches {
				logger.Warn(mismatch.Error())
			}

			data, err := json.MarshalIndent(m, "", "  ")
			if err != nil {
				return fmt.Errorf("serializing model: %w", err)
			}
			dest := output
			if dest == "" {
				dest = args[0]
			}
			if err := os.WriteFile(dest, data, 0o644); err != nil {
				return fmt.Errorf("writing model: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				styleSuccess.Render(fmt.Sprintf("✓ %d face pairs written to %s", len(result.Faces), dest)))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "envelope.toml", "settings file")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "distance tolerance override")
	cmd.Flags().Float64Var(&angleTolerance, "angle-tolerance", 0, "angle tolerance override in degrees")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this path instead of in place")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel coincidence tests, 0 for one per CPU")
	return cmd
}
