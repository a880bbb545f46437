package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/envelopekit/envelope/internal/config"
	"github.com/envelopekit/envelope/pkg/model"
)

// loadModel reads a model JSON from path and applies tolerance settings
// from config and flags. Flag values of zero mean "not set".
func loadModel(path, configPath string, tolerance, angleTolerance float64) (*model.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}
	m, err := model.LoadJSON(data)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	tol, ang := cfg.Tolerance, cfg.AngleTolerance
	if tolerance > 0 {
		tol = tolerance
	}
	if angleTolerance > 0 {
		ang = angleTolerance
	}
	if err := m.SetTolerances(tol, ang); err != nil {
		return nil, err
	}
	return m, nil
}

func newValidateCmd() *cobra.Command {
	var (
		configPath     string
		tolerance      float64
		angleTolerance float64
	)

	cmd := &cobra.Command{
		Use:   "validate <model.json>",
		Short: "Run all geometry and consistency checks on a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			m, err := loadModel(args[0], configPath, tolerance, angleTolerance)
			if err != nil {
				return err
			}
			logger.Debug("model loaded", "rooms", len(m.Rooms()),
				"tolerance", m.Tolerance(), "angle_tolerance", m.AngleTolerance())

			errors := m.Validate()
			fmt.Fprint(cmd.OutOrStdout(), renderReport(m, errors))
			if len(errors) > 0 {
				return fmt.Errorf("%d validation errors", len(errors))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "envelope.toml", "settings file")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "distance tolerance override")
	cmd.Flags().Float64Var(&angleTolerance, "angle-tolerance", 0, "angle tolerance override in degrees")
	return cmd
}
