// Command seed pushes the initial content, plus an optional YAML data
// file, to a configured Supabase project. It is a development utility, not
// part of the application surface.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/Anasnah/Adkari-fin4/internal/backend"
	"github.com/Anasnah/Adkari-fin4/internal/config"
	"github.com/Anasnah/Adkari-fin4/internal/domain"
)

type seedFile struct {
	Dhikrs  []domain.Dhikr    `yaml:"dhikrs"`
	Hadiths []domain.Hadith   `yaml:"hadiths"`
	News    []domain.NewsItem `yaml:"news"`
	Banners []domain.Banner   `yaml:"banners"`
}

func main() {
	var (
		envFile  = flag.String("env", ".env", "Path to .env file with SUPABASE_URL and SUPABASE_ANON_KEY")
		dataFile = flag.String("data", "", "Optional YAML file with extra records to seed")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := godotenv.Load(*envFile); err != nil {
		log.Debug().Err(err).Str("file", *envFile).Msg("no env file loaded")
	}

	cfg := config.FromEnv()
	if !cfg.RemoteConfigured() {
		log.Fatal().Msg("SUPABASE_URL and SUPABASE_ANON_KEY must be set to seed a remote project")
	}

	svc, err := backend.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build backend")
	}

	ctx := context.Background()
	if err := backend.SeedContent(ctx, svc); err != nil {
		log.Fatal().Err(err).Msg("seed initial content")
	}
	log.Info().Msg("initial content seeded")

	if *dataFile == "" {
		return
	}

	raw, err := os.ReadFile(*dataFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", *dataFile).Msg("read data file")
	}
	var extra seedFile
	if err := yaml.Unmarshal(raw, &extra); err != nil {
		log.Fatal().Err(err).Str("file", *dataFile).Msg("parse data file")
	}

	for _, d := range extra.Dhikrs {
		if err := svc.Dhikrs.Upsert(ctx, d); err != nil {
			log.Fatal().Err(err).Str("id", d.ID).Msg("seed dhikr")
		}
	}
	for _, h := range extra.Hadiths {
		if err := svc.Hadiths.Upsert(ctx, h); err != nil {
			log.Fatal().Err(err).Str("id", h.ID).Msg("seed hadith")
		}
	}
	for _, n := range extra.News {
		if err := svc.News.Upsert(ctx, n); err != nil {
			log.Fatal().Err(err).Str("id", n.ID).Msg("seed news item")
		}
	}
	for _, b := range extra.Banners {
		if err := svc.Banners.Upsert(ctx, b); err != nil {
			log.Fatal().Err(err).Str("id", b.ID).Msg("seed banner")
		}
	}
	log.Info().Str("file", *dataFile).Msg("extra content seeded")
}
