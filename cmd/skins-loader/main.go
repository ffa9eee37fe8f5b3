package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/ajharbinger/golfleague-skins/internal/database"
	"github.com/ajharbinger/golfleague-skins/internal/logger"
	"github.com/ajharbinger/golfleague-skins/internal/services"
	"github.com/ajharbinger/golfleague-skins/pkg/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.New()

	app := &cli.App{
		Name:  "skins-loader",
		Usage: "load league scoring workbooks and calculate skins",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "postgres connection string",
				EnvVars: []string{"DATABASE_URL"},
				Value:   cfg.DatabaseURL,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "apply database migrations",
				Action: func(c *cli.Context) error {
					return database.RunMigrations(c.String("database-url"))
				},
			},
			{
				Name:  "load",
				Usage: "import season workbooks for a league",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "league", Usage: "league name", Value: cfg.DefaultLeague},
					&cli.StringFlag{Name: "config", Usage: "course config file (YAML or JSON)"},
					&cli.StringSliceFlag{Name: "workbook", Usage: "season workbook, oldest first (repeatable)", Required: true},
					&cli.IntFlag{Name: "start-year", Usage: "season year of the first workbook", Value: 2020},
					&cli.BoolFlag{Name: "skins-only-first", Usage: "first workbook has no per-golfer skins column", Value: true},
					&cli.BoolFlag{Name: "calculate", Usage: "recalculate each season after import"},
				},
				Action: func(c *cli.Context) error {
					url := c.String("database-url")
					db, err := database.New(url)
					if err != nil {
						return err
					}
					defer db.Close()
					if err := database.RunMigrations(url); err != nil {
						return err
					}

					appLogger := logger.NewSimpleLogger()
					svc := services.NewServices(db.DB, cfg, appLogger, nil)
					return newLoader(svc, appLogger).Run(c.Context, loadOptions{
						League:         c.String("league"),
						ConfigPath:     c.String("config"),
						Workbooks:      c.StringSlice("workbook"),
						StartYear:      c.Int("start-year"),
						SkinsOnlyFirst: c.Bool("skins-only-first"),
						Calculate:      c.Bool("calculate"),
					})
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
