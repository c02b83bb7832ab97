// main.go
//
// Entry point for the word party server: loads configuration, opens the
// hiscore database, loads the word lists and serves HTTP.

package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordparty/assets"
	"github.com/robalobadob/wordparty/internal/config"
	"github.com/robalobadob/wordparty/internal/hiscore"
	"github.com/robalobadob/wordparty/internal/httpserver"
	"github.com/robalobadob/wordparty/internal/hub"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := openDB(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer db.Close()
	if err := migrate(db, migrations); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	scramble, err := assets.LoadLexicon(cfg.ScrambleWordsFile, assets.ScrambleWords)
	if err != nil {
		log.Fatal().Err(err).Msg("load scramble words")
	}
	crossword, err := assets.LoadLexicon(cfg.CrosswordWordsFile, assets.CrosswordWords)
	if err != nil {
		log.Fatal().Err(err).Msg("load crossword words")
	}
	teamguess, err := assets.LoadLexicon(cfg.TeamGuessWordsFile, assets.TeamGuessWords)
	if err != nil {
		log.Fatal().Err(err).Msg("load team-guess words")
	}
	log.Info().
		Int("scramble", scramble.Size()).
		Int("crossword", crossword.Size()).
		Int("teamguess", teamguess.Size()).
		Msg("word lists loaded")

	srv := httpserver.New(httpserver.Deps{
		Config:         cfg,
		ScrambleWords:  scramble,
		CrosswordWords: crossword,
		TeamGuessWords: teamguess,
		Hiscores:       hiscore.NewStore(db, cfg.HiscoreKeep),
		Hub:            hub.New(cfg.ClientOrigin),
	})
	log.Info().Str("port", cfg.Port).Msg("starting wordparty")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
