package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Layout.ColumnMidpoint != 306.0 {
		t.Errorf("Layout.ColumnMidpoint = %v, want 306.0", cfg.Layout.ColumnMidpoint)
	}
	if cfg.Detect.HeaderFontSize <= cfg.Detect.BodyFontSizeMax {
		t.Errorf("header tier %v must sit above body ceiling %v",
			cfg.Detect.HeaderFontSize, cfg.Detect.BodyFontSizeMax)
	}
	if len(cfg.Detect.SkipHeaders) == 0 {
		t.Error("expected default skip headers")
	}
	if cfg.Defaults.Kind != "monster" {
		t.Errorf("Defaults.Kind = %q, want %q", cfg.Defaults.Kind, "monster")
	}
	if cfg.Defaults.MaxWorkers <= 0 {
		t.Error("expected positive default worker count")
	}
}

func TestConfigConversions(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("layout", func(t *testing.T) {
		lc := cfg.ToLayoutConfig()
		if lc.ColumnMidpoint != cfg.Layout.ColumnMidpoint {
			t.Errorf("ColumnMidpoint = %v, want %v", lc.ColumnMidpoint, cfg.Layout.ColumnMidpoint)
		}
	})

	t.Run("boundary", func(t *testing.T) {
		bc := cfg.ToBoundaryConfig()
		if bc.HeaderFontSize != cfg.Detect.HeaderFontSize {
			t.Errorf("HeaderFontSize = %v, want %v", bc.HeaderFontSize, cfg.Detect.HeaderFontSize)
		}
		if len(bc.SkipKeywords) != len(cfg.Detect.SkipHeaders) {
			t.Errorf("SkipKeywords has %d entries, want %d", len(bc.SkipKeywords), len(cfg.Detect.SkipHeaders))
		}
		if bc.BannerPattern == "" {
			t.Error("expected banner pattern to carry over")
		}
	})

	t.Run("classify", func(t *testing.T) {
		cc := cfg.ToClassifyConfig()
		if cc.BodyFontSizeMax != cfg.Detect.BodyFontSizeMax {
			t.Errorf("BodyFontSizeMax = %v, want %v", cc.BodyFontSizeMax, cfg.Detect.BodyFontSizeMax)
		}
		if len(cc.SectionKeywords) == 0 {
			t.Error("expected skip headers to double as section keywords")
		}
	})
}

func TestWorkers(t *testing.T) {
	cfg := &Config{}
	if got := cfg.Workers(); got != 8 {
		t.Errorf("Workers() with zero config = %d, want 8", got)
	}
	cfg.Defaults.MaxWorkers = 3
	if got := cfg.Workers(); got != 3 {
		t.Errorf("Workers() = %d, want 3", got)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("loads from config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")

		configContent := `
detect:
  header_font_size: 20.0
pages:
  first: 261
  last: 356
`
		if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}

		cfg := mgr.Get()
		if cfg.Detect.HeaderFontSize != 20.0 {
			t.Errorf("Detect.HeaderFontSize = %v, want 20.0", cfg.Detect.HeaderFontSize)
		}
		if cfg.Pages.First != 261 || cfg.Pages.Last != 356 {
			t.Errorf("Pages = %+v, want first 261 last 356", cfg.Pages)
		}
		// Keys the file does not set keep their defaults.
		if cfg.Layout.ColumnMidpoint != 306.0 {
			t.Errorf("Layout.ColumnMidpoint = %v, want default 306.0", cfg.Layout.ColumnMidpoint)
		}
	})
}

func TestWriteDefault(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	if err := WriteDefault(configFile); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Bestiary configuration") {
		t.Error("expected header comment at top of written config")
	}

	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to load written config: %v", err)
	}
	cfg := mgr.Get()
	if cfg.Detect.HeaderFontSize != DefaultConfig().Detect.HeaderFontSize {
		t.Errorf("round-tripped HeaderFontSize = %v, want %v",
			cfg.Detect.HeaderFontSize, DefaultConfig().Detect.HeaderFontSize)
	}
	if cfg.Output.Dataset != "bestiary" {
		t.Errorf("round-tripped Output.Dataset = %q, want %q", cfg.Output.Dataset, "bestiary")
	}
}

func TestManager_OnChange(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configFile, []byte("defaults:\n  kind: monster\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	mgr.OnChange(func(cfg *Config) {})
	mgr.OnChange(func(cfg *Config) {})

	mgr.mu.RLock()
	if len(mgr.callbacks) != 2 {
		t.Errorf("expected 2 callbacks, got %d", len(mgr.callbacks))
	}
	mgr.mu.RUnlock()
}

func TestManager_Get_ThreadSafe(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configFile, []byte("defaults:\n  max_workers: 4\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				cfg := mgr.Get()
				_ = cfg.Defaults.MaxWorkers
			}
			done <- struct{}{}
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestManager_WatchConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configFile, []byte("pages:\n  first: 1\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	if got := mgr.Get().Pages.First; got != 1 {
		t.Errorf("initial Pages.First = %d, want 1", got)
	}

	var callbackCount atomic.Int32
	var lastFirst atomic.Int64

	mgr.OnChange(func(cfg *Config) {
		callbackCount.Add(1)
		lastFirst.Store(int64(cfg.Pages.First))
	})

	mgr.WatchConfig()

	// Give fsnotify time to set up the watcher
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(configFile, []byte("pages:\n  first: 261\n"), 0644); err != nil {
		t.Fatalf("failed to write updated config file: %v", err)
	}

	// Wait for the watcher to detect the change (fsnotify is async)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if callbackCount.Load() > 0 {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	if callbackCount.Load() == 0 {
		t.Error("callback was not invoked after config file change")
	}

	if got := mgr.Get().Pages.First; got != 261 {
		t.Errorf("Pages.First after reload = %d, want 261", got)
	}
	if got := lastFirst.Load(); got != 261 {
		t.Errorf("callback received Pages.First = %d, want 261", got)
	}
}
