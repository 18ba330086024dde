package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	domainconfig "stratagist-backend/domain/config"
)

// DefaultDebounce is how long the watcher waits for writes to settle
const DefaultDebounce = 250 * time.Millisecond

// RulesSink receives reloaded extraction rules
type RulesSink interface {
	SetRules(rules *domainconfig.ExtractionRules)
}

// RulesWatcher reloads the extraction rules file when it changes. The
// containing directory is watched so editors that replace the file on save
// are picked up too. Files that fail to parse are logged and ignored.
type RulesWatcher struct {
	path     string
	sink     RulesSink
	debounce time.Duration
	logger   *zap.Logger

	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewRulesWatcher loads the file once, pushes it into sink and starts watching
func NewRulesWatcher(path string, sink RulesSink, debounce time.Duration, logger *zap.Logger) (*RulesWatcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve rules file: %w", err)
	}

	w := &RulesWatcher{
		path:     abs,
		sink:     sink,
		debounce: debounce,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	rules, err := LoadExtractionRules(abs)
	if err != nil {
		return nil, err
	}
	sink.SetRules(rules)

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	w.watcher = fsWatcher

	go w.watchLoop()

	logger.Info("Extraction rules loaded",
		zap.String("file", abs),
		zap.Int("keywords", len(rules.Keywords)),
		zap.Int("delimiters", len(rules.Delimiters)),
	)
	return w, nil
}

// Close stops watching and waits for the loop to exit
func (w *RulesWatcher) Close() error {
	w.stopOnce.Do(func() { close(w.stopCh) })
	<-w.doneCh
	return nil
}

func (w *RulesWatcher) watchLoop() {
	defer close(w.doneCh)
	defer w.watcher.Close()

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, w.reload)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Rules watcher error", zap.Error(err))

		case <-w.stopCh:
			return
		}
	}
}

func (w *RulesWatcher) reload() {
	select {
	case <-w.stopCh:
		return
	default:
	}

	rules, err := LoadExtractionRules(w.path)
	if err != nil {
		w.logger.Warn("Ignoring invalid extraction rules", zap.String("file", w.path), zap.Error(err))
		return
	}

	w.sink.SetRules(rules)
	w.logger.Info("Extraction rules reloaded",
		zap.String("file", w.path),
		zap.Int("keywords", len(rules.Keywords)),
		zap.Int("delimiters", len(rules.Delimiters)),
	)
}
