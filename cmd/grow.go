package cmd

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mager/bloom/analysis"
	"github.com/mager/bloom/bloom"
	"github.com/mager/bloom/config"
	"github.com/mager/bloom/garden"
	"github.com/mager/bloom/logger"
	"github.com/mager/bloom/server"
	"github.com/mager/bloom/spotify"
)

var (
	growFile      string
	trimUnmatched bool
)

func init() {
	growCmd.Flags().StringVarP(&growFile, "file", "f", "", "read a raw analysis JSON file instead of querying Spotify")
	growCmd.Flags().BoolVar(&trimUnmatched, "trim-unmatched", false, "keep only as many sections as received bars")
	rootCmd.AddCommand(growCmd)
}

var growCmd = &cobra.Command{
	Use:   "grow [query]",
	Short: "Prints the garden of a track",
	Long: `Prints the garden of a track as JSON. With --file the analysis is read
from disk and no network calls are made; otherwise the query is resolved on Spotify.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		opts := analysis.Options{TrimUnmatchedSections: trimUnmatched || cfg.TrimUnmatchedSections}

		if growFile != "" {
			f, err := os.Open(growFile)
			if err != nil {
				return err
			}
			defer f.Close()

			return growOffline(f, trackFromPath(growFile), opts, cmd.OutOrStdout())
		}

		if len(args) == 0 {
			return errors.New("need a query or --file")
		}
		return growLive(cmd, cfg, opts, strings.Join(args, " "))
	},
}

func trackFromPath(path string) bloom.Track {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return bloom.Track{ID: name, Name: name, Source: "file"}
}

// growOffline reads a raw analysis from r and writes its garden to w.
func growOffline(r io.Reader, track bloom.Track, opts analysis.Options, w io.Writer) error {
	var a bloom.Analysis
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return errors.Wrap(err, "decode analysis")
	}

	res, err := analysis.Build(a, opts)
	if err != nil {
		return err
	}
	return printJSON(w, garden.Garden{Track: track, Flowers: res.Flowers, Stats: res.Stats})
}

func growLive(cmd *cobra.Command, cfg config.Config, opts analysis.Options, query string) error {
	log, err := logger.NewStderr(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	sp := spotify.ProvideSpotify(cfg, log)
	if !sp.Configured() {
		return errors.New("BLOOM_SPOTIFYID and BLOOM_SPOTIFYSECRET must be set")
	}

	svc := garden.NewService(log, sp, sp, nil, server.ProvideEnricher(cfg), opts)
	g, err := svc.Grow(cmd.Context(), query)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), g)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
