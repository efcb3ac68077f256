package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/amora-bot/amora/pkg/cli/config"
	"github.com/amora-bot/amora/pkg/controller/discord"
	httpctrl "github.com/amora-bot/amora/pkg/controller/http"
	"github.com/amora-bot/amora/pkg/usecase"
	"github.com/amora-bot/amora/pkg/utils/logging"
	"github.com/amora-bot/amora/pkg/utils/safe"
)

func cmdServe() *cli.Command {
	var addr string
	var configPath string
	var repoCfg config.Repository
	var cacheCfg config.Cache
	var discordCfg config.Discord

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Ops HTTP server address (health probes)",
			Value:       ":8080",
			Sources:     cli.EnvVars("AMORA_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to TOML configuration file",
			Sources:     cli.EnvVars("AMORA_CONFIG"),
			Destination: &configPath,
		},
	}

	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, cacheCfg.Flags()...)
	flags = append(flags, discordCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Connect to Discord and serve commands",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			appCfg := config.DefaultAppConfig()
			if configPath != "" {
				loaded, err := config.LoadAppConfig(configPath)
				if err != nil {
					return err
				}
				appCfg = loaded
				logger.Info("Loaded configuration file", "path", configPath)
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			kvs, err := cacheCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize cache")
			}
			defer safe.Close(ctx, kvs)

			ucOpts := []usecase.Option{usecase.WithKissGifs(appCfg.Kiss.Gifs)}
			if appCfg.Kiss.TTLSeconds > 0 {
				ucOpts = append(ucOpts, usecase.WithKissTTL(time.Duration(appCfg.Kiss.TTLSeconds)*time.Second))
			}
			uc := usecase.New(repo, kvs, ucOpts...)

			session, err := discordCfg.Configure()
			if err != nil {
				return err
			}

			router := discord.NewRouter()
			router.Register(discord.NewKissHandler(uc.Kiss, discordCfg.AppID()))
			router.Register(discord.NewTicketHandler(uc.Ticket))
			router.Bind(session)

			if err := session.Open(); err != nil {
				return goerr.Wrap(err, "failed to open discord gateway")
			}
			defer safe.Close(ctx, session)

			if err := router.SyncCommands(session, discordCfg.AppID(), discordCfg.GuildID()); err != nil {
				return err
			}
			logger.Info("Connected to Discord", "discord", discordCfg)

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(kvs),
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting ops HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start ops server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logger.Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown ops server gracefully")
				}

				logger.Info("Server shutdown completed")
				return nil
			}
		},
	}
}
