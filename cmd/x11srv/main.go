// Command x11srv is the process entrypoint: it loads configuration, binds
// the configured transports, and runs the display-server core until a
// shutdown signal arrives.
package main

import (
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/rotkonetworks/x11q"
	"github.com/rotkonetworks/x11q/internal/config"
	"github.com/rotkonetworks/x11q/internal/transport"
)

func main() {
	display := flag.Int("display", -1, "X display number override")
	width := flag.Int("width", 0, "screen width override")
	height := flag.Int("height", 0, "screen height override")
	flag.Parse()

	log := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

	dir := config.Dir()
	if err := config.InitializeIfNot(dir); err != nil {
		log.Fatal().Err(err).Msg("initializing config")
	}
	cfg, err := config.Read(dir)
	if err != nil {
		log.Fatal().Err(err).Msg("reading config")
	}
	if *display >= 0 {
		cfg.Display = *display
	}
	if *width > 0 {
		cfg.Width = uint16(*width)
	}
	if *height > 0 {
		cfg.Height = uint16(*height)
	}

	srv := x11q.NewServer(x11q.Config{Width: cfg.Width, Height: cfg.Height, Display: cfg.Display}, log)

	var listeners []net.Listener
	if cfg.UnixSocket {
		ln, err := transport.ListenUnix(cfg.Display)
		if err != nil {
			log.Fatal().Err(err).Msg("binding unix socket")
		}
		listeners = append(listeners, ln)
	}
	if cfg.TCP {
		ln, err := transport.ListenTCP(cfg.TCPAddress, cfg.Display)
		if err != nil {
			log.Fatal().Err(err).Msg("binding tcp listener")
		}
		listeners = append(listeners, ln)
	}
	if len(listeners) == 0 {
		log.Fatal().Msg("no transport enabled in config")
	}

	for _, ln := range listeners {
		ln := ln
		go func() {
			if err := transport.Serve(ln, func(conn net.Conn) { srv.Serve(conn) }); err != nil {
				log.Error().Err(err).Msg("listener stopped")
			}
		}()
	}

	log.Info().Int("display", cfg.Display).Uint16("width", cfg.Width).Uint16("height", cfg.Height).Msg("x11q listening")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("shutting down")
	for _, ln := range listeners {
		ln.Close()
	}
}
