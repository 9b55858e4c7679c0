package main

import (
	"errors"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/neonfield/internal/config"
	loopconfig "github.com/tomz197/neonfield/internal/loop/config"
	"github.com/tomz197/neonfield/internal/scene"
	"github.com/tomz197/neonfield/internal/view/ebitenview"
)

func main() {
	logger := config.NewLogger(os.Stderr, "neonfield")
	if err := config.LoadDotEnv(); err != nil {
		logger.Fatal("failed to load .env", "err", err)
	}

	facts, err := config.LoadFactsFrom(scene.LoadFacts)
	if err != nil {
		logger.Fatal("failed to load facts", "err", err)
	}

	ebiten.SetWindowTitle("neonfield")
	ebiten.SetWindowSize(loopconfig.DefaultViewWidth, loopconfig.DefaultViewHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(loopconfig.TargetFPS)

	game := ebitenview.New(ebitenview.Options{
		Facts:  facts,
		Logger: logger,
	})
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game error", "err", err)
	}
}
