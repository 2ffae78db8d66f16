package main

import (
	"fmt"
	"math/rand"
	"time"

	"thegame/internal/bot"
	"thegame/internal/domain"
	"thegame/internal/log"

	"github.com/spf13/cobra"
)

var (
	simPlayers int
	simGames   int
	simLevel   string
	simSeed    int64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play bot-only games and report the win rate",
	RunE: func(cmd *cobra.Command, args []string) error {
		if simPlayers < domain.MinPlayers || simPlayers > domain.MaxPlayers {
			return fmt.Errorf("players must be between %d and %d", domain.MinPlayers, domain.MaxPlayers)
		}
		if simGames <= 0 {
			return fmt.Errorf("games must be positive")
		}
		level, err := bot.ParseLevel(simLevel)
		if err != nil {
			return err
		}
		seed := simSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		log.InitLog("simulate", "info")

		rng := rand.New(rand.NewSource(seed))
		var summary bot.Summary
		for i := 0; i < simGames; i++ {
			res, err := bot.Simulate(cmd.Context(), simPlayers, level, rng)
			if err != nil {
				return err
			}
			summary.Add(res)
			log.Debug("game %d: %s with %d cards left after %d turns", i+1, res.Outcome, res.CardsRemaining, res.Turns)
		}
		log.Info("%d games, %d players, %s bots, seed %d: won %d (%.1f%%), %.1f cards left on average",
			summary.Games, simPlayers, level, seed, summary.Wins, summary.WinRate()*100, summary.AverageRemaining())
		return nil
	},
}

func init() {
	simulateCmd.Flags().IntVar(&simPlayers, "players", 3, "players per game")
	simulateCmd.Flags().IntVar(&simGames, "games", 100, "games to play")
	simulateCmd.Flags().StringVar(&simLevel, "level", "smart", "bot level: good or smart")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "random seed, 0 picks one")
}
