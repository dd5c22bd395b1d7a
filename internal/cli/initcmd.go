package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	app "github.com/robofleet/amrsim/internal"
	"github.com/robofleet/amrsim/internal/scenario"
)

var initForce bool

const defaultConfig = `# amrsim engine tunables. Values not set here fall back to built-in defaults.
battery:
  max: 100
  low: 5
  min_assign: 20
  drain_rate: 0.1

charging:
  rate: 20
  done_fraction: 0.9
  stations:
    - {x: 5, y: 5}
    - {x: 45, y: 5}
    - {x: 25, y: 25}

movement:
  speed: 2.0
  arrival_tolerance: 0.5

grid:
  width: 50
  height: 30
  spawn_margin: 2
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write default configuration and scenario files",
	Long: `Create a default .amrsim.yaml tunables file and a fleet.yaml scenario
in the base path (AMRSIM_HOME or the current directory).

Existing files are left untouched unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		base := app.ResolveBasePath()

		configPath := filepath.Join(base, ".amrsim.yaml")
		if err := writeConfig(configPath); err != nil {
			return fmt.Errorf("initializing workspace: %w", err)
		}

		scenarioPath := filepath.Join(base, app.ScenarioFileName)
		if err := writeScenario(scenarioPath); err != nil {
			return fmt.Errorf("initializing workspace: %w", err)
		}

		return nil
	},
}

func writeConfig(path string) error {
	if !initForce {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("skipping %s (already exists)\n", path)
			return nil
		}
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func writeScenario(path string) error {
	if !initForce {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("skipping %s (already exists)\n", path)
			return nil
		}
	}
	if err := scenario.Default().Save(path); err != nil {
		return fmt.Errorf("writing scenario: %w", err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing files")
	rootCmd.AddCommand(initCmd)
}
