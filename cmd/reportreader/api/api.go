// Copyright (C) 2024 Tim Bastin, l3montree UG (haftungsbeschränkt)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package api

import (
	"log/slog"
	"os"
	"sort"

	"github.com/l3montree-dev/reportreader/controllers"
	"github.com/l3montree-dev/reportreader/database/repositories"
	"github.com/l3montree-dev/reportreader/echohttp"
	"github.com/l3montree-dev/reportreader/services"
	"github.com/l3montree-dev/reportreader/shared"
	"github.com/l3montree-dev/reportreader/storage"
	"github.com/l3montree-dev/reportreader/utils"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func uploadsDir() string {
	if dir := os.Getenv("UPLOADS_DIR"); dir != "" {
		return dir
	}
	return "uploads"
}

func Start(db shared.DB) {
	artifactStorage, err := storage.NewDiskStorage(uploadsDir())
	if err != nil {
		panic(err)
	}

	reportRepository := repositories.NewReportRepository(db)
	reportService := services.NewReportService(reportRepository, artifactStorage, utils.NewFireAndForgetSynchronizer())
	reportController := controllers.NewReportController(reportService, artifactStorage)

	server := echohttp.Server()

	apiV1Router := server.Group("/api/v1")
	apiV1Router.GET("/metrics/", echo.WrapHandler(promhttp.Handler()))
	apiV1Router.GET("/health/", func(ctx echo.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return ctx.JSON(503, map[string]string{
				"status": "unhealthy",
				"error":  "failed to get database instance",
			})
		}

		if err := sqlDB.Ping(); err != nil {
			return ctx.JSON(503, map[string]string{
				"status": "unhealthy",
				"error":  "database ping failed",
			})
		}

		return ctx.JSON(200, map[string]string{
			"status": "healthy",
		})
	})

	reportRouter := apiV1Router.Group("/reports")
	reportRouter.POST("/", reportController.Upload)
	reportRouter.GET("/", reportController.List)
	reportRouter.GET("/:artifactRef/", reportController.Read)
	reportRouter.DELETE("/:artifactRef/", reportController.Delete)

	// raw artifact downloads live outside the api prefix, the dashboard links
	// to them directly
	server.GET("/uploads/:artifactRef", reportController.DownloadArtifact)

	routes := server.Routes()
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Path < routes[j].Path
	})
	// print all registered routes
	for _, route := range routes {
		if route.Method != "echo_route_not_found" {
			slog.Info(route.Path, "method", route.Method)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	slog.Error("failed to start server", "err", server.Start(":"+port).Error())
}
