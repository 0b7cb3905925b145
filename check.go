package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/decker502/flappy/pkg/config"
	"github.com/decker502/flappy/pkg/game"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that every asset file decodes",
	Long: `Open and decode every texture and sound named in the game config,
without opening a window. Exits with an error if any asset is missing or broken.

Examples:
  flappy check
  flappy check --assets ./assets`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	gameCfg, err := config.LoadGameConfig(flagConfig)
	if err != nil {
		return err
	}
	dir := gameCfg.Assets.Dir
	if flagAssets != "" {
		dir = flagAssets
	}

	reports := game.CheckAssets(os.DirFS(dir), gameCfg.Assets.Textures(), gameCfg.Assets.Sounds())

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Assets in %s\n\n", dir)
	failed := 0
	for _, r := range reports {
		if r.Err != nil {
			failed++
			fmt.Fprintf(out, "  FAIL  %-20s  %v\n", r.Name, r.Err)
			continue
		}
		fmt.Fprintf(out, "  ok    %-20s  %s\n", r.Name, r.Detail)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d assets failed", failed, len(reports))
	}
	return nil
}
