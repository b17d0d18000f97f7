package main

import (
	catH "github.com/fekuna/omnipos-catalog-service/internal/category/handler"
	prodH "github.com/fekuna/omnipos-catalog-service/internal/product/handler"
	"github.com/fekuna/omnipos-catalog-service/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the gRPC health port",
		RunE:  serveCommand,
	}
}

func serveCommand(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.cfg.Server.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := server.NewRouter(a.db, a.logger,
		catH.NewCategoryHandler(a.categories, a.logger),
		prodH.NewProductHandler(a.products, a.logger),
	)

	srv := server.New(&server.Config{
		HTTPPort:        a.cfg.Server.HTTPPort,
		GRPCPort:        a.cfg.Server.GRPCPort,
		ReadTimeout:     a.cfg.Server.ReadTimeout,
		WriteTimeout:    a.cfg.Server.WriteTimeout,
		ShutdownTimeout: a.cfg.Server.ShutdownTimeout,
	}, router, a.logger)

	return srv.Run(ctx)
}
