package config

import (
	"testing"
)

func TestValidate_ColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		wantErr bool
	}{
		{"auto is valid", ColorAuto, false},
		{"always is valid", ColorAlways, false},
		{"never is valid", ColorNever, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "rainbow", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true // skip batch argument requirement
			cfg.ColorMode = tt.mode
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_RequiresBatchArguments(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error without inputs")
	}

	cfg.Inputs = []string{"in.mkv"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error without outputs")
	}

	cfg.Outputs = []string{"out"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidate_CheckOnlySkipsBatchArguments(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestStringList_Repeatable(t *testing.T) {
	var l stringList
	l.Set("a")
	l.Set("b")
	l.Set("a")
	if len(l) != 3 || l[0] != "a" || l[1] != "b" || l[2] != "a" {
		t.Errorf("got %v", l)
	}
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("MKVRESORT_MKVMERGE", "/opt/mkvtoolnix/mkvmerge")
	t.Setenv("MKVRESORT_SUFFIX", "")
	t.Setenv("MKVRESORT_COLOR", "never")

	cfg := DefaultConfig()
	LoadEnv(&cfg)

	if cfg.Mkvmerge != "/opt/mkvtoolnix/mkvmerge" {
		t.Errorf("Mkvmerge: %q", cfg.Mkvmerge)
	}
	if cfg.Suffix != "" {
		t.Errorf("empty MKVRESORT_SUFFIX should clear the suffix, got %q", cfg.Suffix)
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode: %q", cfg.ColorMode)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Mkvmerge != "mkvmerge" || cfg.Suffix != " (1)" || !cfg.Progress || cfg.ColorMode != ColorAuto {
		t.Errorf("defaults: %+v", cfg)
	}
}
