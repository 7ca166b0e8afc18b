package services

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ytmcli/ytmcli/internal/models"
)

// lrcLine matches "[mm:ss.xx]" or "[mm:ss.xxx]" timestamps at the start of an
// LRC line.
var lrcLine = regexp.MustCompile(`\[(\d{2}):(\d{2})\.(\d{2,3})\](.*)`)

// ParseLRC parses LRC-formatted synced lyrics into timestamped cues sorted by
// time. Lines without a timestamp (metadata tags, stray text) are skipped.
func ParseLRC(raw string) []models.Cue {
	var cues []models.Cue

	for _, line := range strings.Split(raw, "\n") {
		m := lrcLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		minutes, _ := strconv.Atoi(m[1])
		seconds, _ := strconv.Atoi(m[2])

		frac, _ := strconv.Atoi(m[3])
		divisor := 100.0
		if len(m[3]) == 3 {
			divisor = 1000.0
		}

		cues = append(cues, models.Cue{
			Time: float64(minutes)*60 + float64(seconds) + float64(frac)/divisor,
			Text: strings.TrimSpace(m[4]),
		})
	}

	sort.SliceStable(cues, func(i, j int) bool { return cues[i].Time < cues[j].Time })

	return cues
}

// ParsePlain splits plain (unsynced) lyrics into cues with zero timestamps so
// the overlay can render them with estimated pacing.
func ParsePlain(raw string) []models.Cue {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	// Trim trailing blank lines but keep interior ones: they separate verses.
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	cues := make([]models.Cue, len(lines))
	for i, line := range lines {
		cues[i] = models.Cue{Text: strings.TrimSpace(line)}
	}

	return cues
}
