package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFlockFormed    BookmarkType = "flock_formed"
	BookmarkFlockScattered BookmarkType = "flock_scattered"
	BookmarkCollisionSpike BookmarkType = "collision_spike"
	BookmarkSteadySpacing  BookmarkType = "steady_spacing"
)

// Polarization thresholds for formation and scattering.
const (
	formedPolarization     = 0.8
	disorderedPolarization = 0.5
	scatterDrop            = 0.4
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	RunID       string       `csv:"run_id"`
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	recentPolarizationPeak float64 // highest polarization since the last scatter
	wasDisordered          bool    // polarization has been below the disorder threshold
	steadyWindowsCount     int     // consecutive windows with stable spacing
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for steady spacing detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkFlockFormed(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkFlockScattered(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if bd.historyFull || bd.historyIdx > 0 {
		if b := bd.checkCollisionSpike(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkSteadySpacing(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)

	if stats.Polarization > bd.recentPolarizationPeak {
		bd.recentPolarizationPeak = stats.Polarization
	}
	if stats.Polarization < disorderedPolarization {
		bd.wasDisordered = true
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// getHistory returns the recorded windows oldest first.
func (bd *BookmarkDetector) getHistory() []WindowStats {
	if !bd.historyFull {
		return bd.history[:bd.historyIdx]
	}
	ordered := make([]WindowStats, 0, bd.historySize)
	ordered = append(ordered, bd.history[bd.historyIdx:]...)
	return append(ordered, bd.history[:bd.historyIdx]...)
}

func (bd *BookmarkDetector) checkFlockFormed(stats WindowStats) *Bookmark {
	if !bd.wasDisordered || stats.Polarization < formedPolarization {
		return nil
	}
	bd.wasDisordered = false
	return &Bookmark{
		Type:        BookmarkFlockFormed,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Polarization rose to %.2f", stats.Polarization),
	}
}

func (bd *BookmarkDetector) checkFlockScattered(stats WindowStats) *Bookmark {
	peak := bd.recentPolarizationPeak
	if peak < formedPolarization {
		return nil
	}
	drop := 1 - stats.Polarization/peak
	if drop <= scatterDrop {
		return nil
	}
	// Reset peak after scattering
	bd.recentPolarizationPeak = stats.Polarization
	return &Bookmark{
		Type:        BookmarkFlockScattered,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Polarization fell %.0f%% from %.2f to %.2f", drop*100, peak, stats.Polarization),
	}
}

func (bd *BookmarkDetector) checkCollisionSpike(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.NearMisses + h.Contacts
	}
	avg := float64(total) / float64(len(history))
	current := stats.NearMisses + stats.Contacts

	if current >= 5 && float64(current) > avg*2.0 {
		return &Bookmark{
			Type:        BookmarkCollisionSpike,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d close encounters vs average %.1f", current, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkSteadySpacing(stats WindowStats) *Bookmark {
	if stats.Agents < 10 || stats.NearestP50 <= 0 {
		bd.steadyWindowsCount = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}
	recent := history[len(history)-4:]

	var sum float64
	for _, h := range recent {
		sum += h.NearestP50
	}
	mean := sum / 4

	var variance float64
	for _, h := range recent {
		d := h.NearestP50 - mean
		variance += d * d
	}
	variance /= 4

	// CV^2 < 0.01 means CV < 0.1
	if mean > 0 && variance/(mean*mean) < 0.01 {
		bd.steadyWindowsCount++
	} else {
		bd.steadyWindowsCount = 0
	}

	if bd.steadyWindowsCount == 5 { // trigger exactly once at 5 windows
		return &Bookmark{
			Type:        BookmarkSteadySpacing,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Neighbor spacing steady near %.2f over 5+ windows", mean),
		}
	}
	return nil
}
