package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Run serves the hub (if any) and plays the program until it ends or ctx is
// cancelled. A cancelled show is not an error.
func (c *Core) Run(ctx context.Context) error {
	var srv *http.Server
	if c.Hub != nil {
		srv = &http.Server{
			Addr:         c.Cfg.Addr,
			Handler:      withCORS(c.Hub.Routes()),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go func() {
			log.Info().Str("addr", srv.Addr).Msg("HTTP server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("http server crashed")
			}
		}()
	}

	err := c.Player.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if c.Hub != nil {
		c.Hub.ShowEnded(err)
	}
	log.Info().Uint64("frames", c.Eng.Frames).Msg("show ended")

	if srv != nil {
		_ = srv.Close()
	}
	return err
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
