// Seeds a development database with a small catalog: two movies, two halls
// with generated seat grids, and a day of screenings.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"seatly/internal/halls"
	"seatly/internal/movies"
	"seatly/internal/screenings"
	"seatly/internal/shared/config"
	"seatly/internal/shared/database"
	"seatly/pkg/logger"
)

func main() {
	appLogger := logger.GetDefault()
	_ = godotenv.Load()

	cfg := config.Load()
	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("Failed to initialize storage", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	movieService := movies.NewService(movies.NewRepository(db.GetPostgreSQL()), cfg)
	hallService := halls.NewService(halls.NewRepository(db.GetPostgreSQL()), cfg)
	screeningService := screenings.NewService(screenings.NewRepository(db.GetPostgreSQL()), movieService, hallService, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	movieReqs := []movies.CreateMovieRequest{
		{
			Title:           "The Long Night",
			Description:     "A detective chases a case that refuses to close.",
			DurationMinutes: 128,
			Genre:           "DRAMA",
		},
		{
			Title:           "Orbital Decay",
			Description:     "A salvage crew finds more than scrap in a dead station.",
			DurationMinutes: 143,
			Genre:           "SCIFI",
		},
	}
	var movieIDs []string
	for _, req := range movieReqs {
		movie, err := movieService.CreateMovie(ctx, req)
		if err != nil {
			appLogger.Error("Failed to seed movie", slog.String("title", req.Title), slog.Any("error", err))
			os.Exit(1)
		}
		movieIDs = append(movieIDs, movie.ID.String())
		appLogger.Info("Seeded movie", slog.String("title", movie.Title))
	}

	hallReqs := []halls.CreateHallRequest{
		{Name: "Hall A", TotalRows: 10, SeatsPerRow: 12, WheelchairRows: []int{1}},
		{Name: "Hall B", TotalRows: 6, SeatsPerRow: 8},
	}
	var hallIDs []string
	for _, req := range hallReqs {
		hall, err := hallService.CreateHall(ctx, req)
		if err != nil {
			appLogger.Error("Failed to seed hall", slog.String("name", req.Name), slog.Any("error", err))
			os.Exit(1)
		}
		hallIDs = append(hallIDs, hall.ID.String())
		appLogger.Info("Seeded hall", slog.String("name", hall.Name), slog.Int("rows", hall.TotalRows))
	}

	tomorrow := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	screeningReqs := []screenings.CreateScreeningRequest{
		{
			MovieID:   movieIDs[0],
			HallID:    hallIDs[0],
			StartTime: tomorrow.Add(18 * time.Hour),
			EndTime:   tomorrow.Add(20*time.Hour + 15*time.Minute),
			Language:  "EN",
			BasePrice: 8.50,
		},
		{
			MovieID:   movieIDs[1],
			HallID:    hallIDs[0],
			StartTime: tomorrow.Add(21 * time.Hour),
			EndTime:   tomorrow.Add(23*time.Hour + 30*time.Minute),
			Language:  "EN",
			Is3D:      true,
			BasePrice: 11.00,
		},
		{
			MovieID:   movieIDs[0],
			HallID:    hallIDs[1],
			StartTime: tomorrow.Add(19 * time.Hour),
			EndTime:   tomorrow.Add(21*time.Hour + 15*time.Minute),
			Language:  "SR",
			BasePrice: 7.00,
		},
	}
	for _, req := range screeningReqs {
		screening, err := screeningService.CreateScreening(ctx, req)
		if err != nil {
			appLogger.Error("Failed to seed screening", slog.Any("error", err))
			os.Exit(1)
		}
		appLogger.Info("Seeded screening",
			slog.String("id", screening.ID.String()),
			slog.Time("start", screening.StartTime))
	}

	appLogger.Info("Seed complete")
}
