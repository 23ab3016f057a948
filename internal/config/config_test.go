package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("BITESWIPE_JWT_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.DBDriver != "sqlite" || cfg.DBDSN != "./data/biteswipe.db" {
		t.Errorf("db = %s %s", cfg.DBDriver, cfg.DBDSN)
	}
	if cfg.GroupTTL != 24*time.Hour {
		t.Errorf("GroupTTL = %v, want 24h", cfg.GroupTTL)
	}
	if cfg.OCCRetries != 10 || cfg.CodeAttempts != 10 {
		t.Errorf("retries = %d, attempts = %d", cfg.OCCRetries, cfg.CodeAttempts)
	}
	if cfg.SweepInterval != 0 {
		t.Errorf("SweepInterval = %v, want disabled", cfg.SweepInterval)
	}
	if cfg.NSQTopic != "biteswipe.groups" {
		t.Errorf("NSQTopic = %q", cfg.NSQTopic)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"*"}) {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.CORSOrigins)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeFile(t, "config.yaml", `
port: 9090
db_driver: postgres
db_dsn: postgres://localhost/biteswipe?sslmode=disable
jwt_secret: from-file
group_ttl: 2h
sweep_interval: 5m
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("BITESWIPE_PORT", "7070")
	t.Setenv("BITESWIPE_OCC_RETRIES", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 7070 {
		t.Errorf("Port = %d, want env override 7070", cfg.Port)
	}
	if cfg.DBDriver != "postgres" {
		t.Errorf("DBDriver = %q, want postgres", cfg.DBDriver)
	}
	if cfg.JWTSecret != "from-file" {
		t.Errorf("JWTSecret = %q, want from-file", cfg.JWTSecret)
	}
	if cfg.GroupTTL != 2*time.Hour || cfg.SweepInterval != 5*time.Minute {
		t.Errorf("GroupTTL = %v, SweepInterval = %v", cfg.GroupTTL, cfg.SweepInterval)
	}
	if cfg.OCCRetries != 25 {
		t.Errorf("OCCRetries = %d, want 25", cfg.OCCRetries)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("BITESWIPE_JWT_SECRET", "")
	t.Setenv("BITESWIPE_DB_DRIVER", "mysql")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"jwt_secret", "db_driver"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestLoadRestaurants(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		path := writeFile(t, "restaurants.yaml", `
restaurants:
  - id: r1
    name: Pho Palace
    cuisine: Vietnamese
    price_range: $$
    rating: 4.5
  - id: r2
    name: Taco Stand
    cuisine: Mexican
`)
		got, err := LoadRestaurants(path)
		if err != nil {
			t.Fatalf("LoadRestaurants failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d restaurants, want 2", len(got))
		}
		if got[0].ID != "r1" || got[0].PriceRange != "$$" || got[0].Rating != 4.5 {
			t.Errorf("unexpected first restaurant: %+v", got[0])
		}
	})

	t.Run("json", func(t *testing.T) {
		path := writeFile(t, "restaurants.json", `{"restaurants": [{"id": "r1", "name": "Pho Palace", "image_url": "https://img/1.jpg"}]}`)
		got, err := LoadRestaurants(path)
		if err != nil {
			t.Fatalf("LoadRestaurants failed: %v", err)
		}
		if len(got) != 1 || got[0].ImageURL != "https://img/1.jpg" {
			t.Errorf("unexpected restaurants: %+v", got)
		}
	})

	t.Run("rejects duplicates and missing ids", func(t *testing.T) {
		for name, body := range map[string]string{
			"dup.yaml":    "restaurants:\n  - {id: r1, name: A}\n  - {id: r1, name: B}\n",
			"noid.yaml":   "restaurants:\n  - {name: A}\n",
			"noname.yaml": "restaurants:\n  - {id: r1}\n",
		} {
			if _, err := LoadRestaurants(writeFile(t, name, body)); err == nil {
				t.Errorf("%s: expected error", name)
			}
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadRestaurants(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error")
		}
	})
}
