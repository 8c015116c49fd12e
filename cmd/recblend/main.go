// recblend 是推荐融合服务的命令行入口。
//
//	recblend serve    --config recblend.yaml   # 推荐服务
//	recblend features --config recblend.yaml   # 相似物品服务
//	recblend events   --config recblend.yaml   # 事件服务
//	recblend config   --config recblend.yaml   # 打印生效配置
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rushteam/recblend/config"
	"github.com/rushteam/recblend/pkg/logging"
	"github.com/rushteam/recblend/server"
)

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "recblend",
		Short:         "Blend offline and online recommendations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file (env RECBLEND_* overrides)")

	root.AddCommand(
		roleCmd(config.RoleRecommendations, "serve", "Run the recommendations service", runRecommendations),
		roleCmd(config.RoleFeatures, "features", "Run the similar-items service", runFeatures),
		roleCmd(config.RoleEvents, "events", "Run the user events service", runEvents),
		configCmd(),
	)
	return root
}

// roleRunner 构建角色的 HTTP handler，返回的 cleanup 在服务停止后调用。
type roleRunner func(ctx context.Context, cfg *config.Config) (h http.Handler, cleanup func(), err error)

func roleCmd(role, use, short string, run roleRunner) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(role)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			h, cleanup, err := run(ctx, cfg)
			if err != nil {
				logging.Error().Err(err).Str("role", role).Msg("startup failed")
				return err
			}
			defer cleanup()

			srv := &http.Server{
				Addr:         cfg.Server.Addr,
				Handler:      h,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			}
			logging.Info().Str("role", role).Str("addr", cfg.Server.Addr).Msg("service starting")
			return server.Supervise(ctx, role, server.NewHTTPService(role, srv, cfg.Server.ShutdownTimeout))
		},
	}
}

func loadConfig(role string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logging.Init(cfg.Log)
	if err := cfg.Validate(role); err != nil {
		logging.Error().Err(err).Str("role", role).Msg("invalid configuration")
		return nil, err
	}
	return cfg, nil
}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			out, err := cfg.Dump()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
