package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("ACCESS_TOKEN_SECRET", "secret")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.AppPort != "5000" {
		t.Errorf("port: got %s", c.AppPort)
	}
	if c.MongoDB != "tourGuideDB" {
		t.Errorf("db: got %s", c.MongoDB)
	}
	if c.TokenTTL() != 2*time.Hour {
		t.Errorf("ttl: got %v", c.TokenTTL())
	}
	if c.OpTimeout() != 5*time.Second {
		t.Errorf("timeout: got %v", c.OpTimeout())
	}
	if c.RedisAddr != "" {
		t.Errorf("redis should be off by default, got %s", c.RedisAddr)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("ACCESS_TOKEN_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing required vars")
	}
}

func TestLoadBootstrapAdmins(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("ACCESS_TOKEN_SECRET", "secret")

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"plain", "a@x.com,b@x.com", []string{"a@x.com", "b@x.com"}},
		{"mixed case and spaces", "Ops@X.com, b@x.com", []string{"ops@x.com", "b@x.com"}},
		{"empty entries", " ,a@x.com,,", []string{"a@x.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BOOTSTRAP_ADMINS", tt.raw)

			c, err := Load()
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if len(c.BootstrapAdmins) != len(tt.want) {
				t.Fatalf("admins: got %q, want %q", c.BootstrapAdmins, tt.want)
			}
			for i := range tt.want {
				if c.BootstrapAdmins[i] != tt.want[i] {
					t.Errorf("admins[%d]: got %q, want %q", i, c.BootstrapAdmins[i], tt.want[i])
				}
			}
		})
	}
}
