package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizdeck/triviacast/go/internal/dbconfig"
	"github.com/quizdeck/triviacast/go/internal/models"
	"gopkg.in/yaml.v3"
)

// Fixture mirrors the YAML seed file.
type Fixture struct {
	Teams      []string `yaml:"teams"`
	Categories []struct {
		Name      string `yaml:"name"`
		Questions []struct {
			Difficulty string   `yaml:"difficulty"`
			Question   string   `yaml:"question"`
			Answer     string   `yaml:"answer"`
			Options    []string `yaml:"options"`
			Correct    string   `yaml:"correct"`
		} `yaml:"questions"`
	} `yaml:"categories"`
}

func main() {
	path := "go/internal/assets/game_seed.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read fixture: %v\n", err)
		os.Exit(1)
	}
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal fixture: %v\n", err)
		os.Exit(1)
	}

	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(context.Background(), cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	ctx := context.Background()
	var teams, categories, questions, errs int

	for _, name := range fixture.Teams {
		if _, err := pool.Exec(ctx,
			`INSERT INTO teams (id, name) VALUES ($1, $2)`,
			uuid.New(), name,
		); err != nil {
			fmt.Fprintf(os.Stderr, "error inserting team %s: %v\n", name, err)
			errs++
			continue
		}
		teams++
	}

	for _, cat := range fixture.Categories {
		categoryID := uuid.New()
		if _, err := pool.Exec(ctx,
			`INSERT INTO categories (id, name) VALUES ($1, $2)`,
			categoryID, cat.Name,
		); err != nil {
			fmt.Fprintf(os.Stderr, "error inserting category %s: %v\n", cat.Name, err)
			errs++
			continue
		}
		categories++

		for _, q := range cat.Questions {
			if _, err := models.ParseRound(q.Difficulty); err != nil {
				fmt.Fprintf(os.Stderr, "error in category %s: %v\n", cat.Name, err)
				errs++
				continue
			}

			var optA, optB, optC, optD, correct *string
			if len(q.Options) == 4 {
				optA, optB, optC, optD = &q.Options[0], &q.Options[1], &q.Options[2], &q.Options[3]
			}
			if q.Correct != "" {
				correct = &q.Correct
			}

			if _, err := pool.Exec(ctx, `
				INSERT INTO questions (
					id, category_id, difficulty, question_text, answer_text,
					option_a, option_b, option_c, option_d, correct_option
				) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
				uuid.New(), categoryID, q.Difficulty, q.Question, q.Answer,
				optA, optB, optC, optD, correct,
			); err != nil {
				fmt.Fprintf(os.Stderr, "error inserting question in %s: %v\n", cat.Name, err)
				errs++
				continue
			}
			questions++
		}
	}

	if _, err := pool.Exec(ctx,
		`INSERT INTO game_sessions (id) VALUES (1) ON CONFLICT (id) DO NOTHING`,
	); err != nil {
		fmt.Fprintf(os.Stderr, "error ensuring session row: %v\n", err)
		errs++
	}

	fmt.Printf(
		"Game seed complete: %d teams, %d categories, %d questions, %d errors\n",
		teams, categories, questions, errs,
	)
}
