package engine

import (
	"context"
	"time"

	"maw-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Run запускает игровой цикл: Update раз в TickInterval с реально прошедшим временем.
// Выходит при отмене ctx (возвращает ctx.Err()) или после тика с командой Quit (nil).
func (e *Engine) Run(ctx context.Context) error {
	log := logger.Log.WithFields(logrus.Fields{
		"component": "game_loop",
		"interval":  e.cfg.TickInterval.String(),
	})
	log.Info("Game loop started.")

	ticker := time.NewTicker(e.cfg.TickInterval)
	defer ticker.Stop()

	last := e.now()
	for {
		select {
		case <-ctx.Done():
			log.WithField("tick", e.tick).Info("Game loop cancelled.")
			return ctx.Err()

		case <-ticker.C:
			now := e.now()
			delta := now.Sub(last)
			last = now

			if !e.Update(ctx, delta) {
				log.WithField("tick", e.tick).Info("Game loop stopped by quit command.")
				return nil
			}
		}
	}
}
