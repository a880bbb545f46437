package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/envelopekit/envelope/pkg/geometry"
	"github.com/envelopekit/envelope/pkg/model"
)

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create model JSON from simple parameters",
	}
	cmd.AddCommand(newShoeboxCmd())
	return cmd
}

func newShoeboxCmd() *cobra.Command {
	var (
		width  float64
		depth  float64
		height float64
		angle  float64
		output string
	)

	cmd := &cobra.Command{
		Use:   "shoebox <identifier>",
		Short: "Emit a single-room box model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			room, err := model.NewRoomFromBox(args[0], width, depth, height, angle, geometry.Point3D{})
			if err != nil {
				return err
			}
			m, err := model.NewModel(args[0]+"_Model", []*model.Room{room})
			if err != nil {
				return err
			}
			logger.Debug("shoebox built", "volume", room.Volume(), "floor_area", room.FloorArea())

			data, err := json.MarshalIndent(m, "", "  ")
			if err != nil {
				return fmt.Errorf("serializing model: %w", err)
			}
			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing model: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				styleSuccess.Render(fmt.Sprintf("✓ model written to %s", output)))
			return nil
		},
	}

	cmd.Flags().Float64Var(&width, "width", 5, "box width in model units")
	cmd.Flags().Float64Var(&depth, "depth", 10, "box depth in model units")
	cmd.Flags().Float64Var(&height, "height", 3, "box height in model units")
	cmd.Flags().Float64Var(&angle, "angle", 0, "clockwise orientation from north in degrees")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}
