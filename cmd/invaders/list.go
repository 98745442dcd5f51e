package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the games this build can play",
	Long:  `Prints the game IDs accepted by 'play [game]' and 'window [game]'.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		games := registry.List()
		if len(games) == 0 {
			fmt.Println("No games registered.")
			return
		}
		fmt.Println(gamesTable(games))
		fmt.Println("Start one with 'invaders play <id>' or 'invaders window <id>'.")
	},
}
