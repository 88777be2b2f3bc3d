// Package logger provides leveled logging for the combat engine and its
// surrounding tooling.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

// LogLevel controls how much detail is emitted.
type LogLevel int

const (
	META LogLevel = iota
	GAME
	PLAYER
	CARD
)

var (
	mu              sync.Mutex
	currentLogLevel = GAME
	base            = zap.Must(zap.NewProduction())
	sugared         = base.Sugar()
)

// SetLogLevel sets the current logging level.
func SetLogLevel(level LogLevel) {
	mu.Lock()
	defer mu.Unlock()
	currentLogLevel = level
}

// ParseLogLevel parses a string into a LogLevel, defaulting to CARD.
func ParseLogLevel(level string) LogLevel {
	switch level {
	case "META":
		return META
	case "GAME":
		return GAME
	case "PLAYER":
		return PLAYER
	case "CARD":
		return CARD
	default:
		return CARD
	}
}

func enabled(level LogLevel) bool {
	mu.Lock()
	defer mu.Unlock()
	return currentLogLevel >= level
}

// LogMeta logs meta-level (tournament/driver) messages.
func LogMeta(message string, args ...interface{}) {
	if enabled(META) {
		sugared.Infof("META: "+message, args...)
	}
}

// LogGame logs game-level messages.
func LogGame(message string, args ...interface{}) {
	if enabled(GAME) {
		sugared.Infof("GAME: "+message, args...)
	}
}

// LogPlayer logs player-decision-level messages.
func LogPlayer(message string, args ...interface{}) {
	if enabled(PLAYER) {
		sugared.Infof("PLAYER: "+message, args...)
	}
}

// LogCard logs card/ability-level messages.
func LogCard(message string, args ...interface{}) {
	if enabled(CARD) {
		sugared.Infof("CARD: "+message, args...)
	}
}

// ParsingFailureDiary tracks which cards have already had an Unresolved
// ability logged, so repeated matchups against the same deck don't spam
// duplicate diagnostics.
type ParsingFailureDiary struct {
	mu    sync.Mutex
	cache map[string]bool
}

var diary = &ParsingFailureDiary{cache: make(map[string]bool)}

// LogParsingFailure records an Unresolved ability for a card, once per name.
func LogParsingFailure(cardName, oracleText, reason string) {
	diary.mu.Lock()
	defer diary.mu.Unlock()
	if diary.cache[cardName] {
		return
	}
	diary.cache[cardName] = true
	sugared.Warnw("unresolved oracle text",
		"card", cardName,
		"oracle_text", oracleText,
		"reason", reason,
	)
}

// Sync flushes any buffered log entries. Call before process exit.
func Sync() {
	_ = base.Sync()
	_ = os.Stdout.Sync()
}
