// Package library locates playable sources on disk and resolves loose user
// queries against them.
package library

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fujifruity/videoplayer/filesystem"
	"github.com/fujifruity/videoplayer/key"
	"github.com/fujifruity/videoplayer/media/sim"
	"github.com/fujifruity/videoplayer/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

// Path returns the directory scanned for sources. The configured path wins;
// otherwise the default library location is used.
func Path() string {
	if configured := viper.GetString(key.LibraryPath); configured != "" {
		return configured
	}
	return where.Library()
}

// List returns the names of all regular files in the library directory.
func List() ([]string, error) {
	entries, err := filesystem.API().ReadDir(Path())
	if err != nil {
		return nil, fmt.Errorf("read library %q: %w", Path(), err)
	}

	files := lo.FilterMap(entries, func(e os.FileInfo, _ int) (string, bool) {
		return e.Name(), !e.IsDir()
	})

	slices.Sort(files)
	return files, nil
}

// Resolve matches a user query against the library. An exact name wins,
// otherwise the best fuzzy match by rank is chosen.
func Resolve(query string) (string, error) {
	names, err := List()
	if err != nil {
		return "", err
	}

	query = strings.TrimSpace(query)
	if lo.Contains(names, query) {
		return query, nil
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	if len(ranks) == 0 {
		return "", fmt.Errorf("no source matching %q in %q", query, Path())
	}

	slices.SortFunc(ranks, func(a, b fuzzy.Rank) int {
		return a.Distance - b.Distance
	})

	return ranks[0].Target, nil
}

// TrackFor builds the simulated track description for a source from the
// configured library parameters. All sources currently share the configured
// shape; the identifier is accepted for future per-source metadata.
func TrackFor(_ string) sim.Track {
	track := sim.DefaultTrack

	if ms := viper.GetInt(key.LibraryDuration); ms > 0 {
		track.Duration = time.Duration(ms) * time.Millisecond
	}
	if ms := viper.GetInt(key.LibraryFrameInterval); ms > 0 {
		track.FrameInterval = time.Duration(ms) * time.Millisecond
	}
	if gop := viper.GetInt(key.LibraryGOPSize); gop > 0 {
		track.GOPSize = gop
	}

	return track
}
