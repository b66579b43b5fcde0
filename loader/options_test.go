package loader

import (
	"testing"

	"github.com/benn-herrera/jnihgen/model"
)

func TestParseOverrides(t *testing.T) {
	opts, err := ParseOverrides([]string{
		"platform=windows",
		"file_prefix=jni_",
		"require_register_natives=true",
		"onload_function=boot",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Platform != model.PlatformWindows || opts.FilePrefix != "jni_" || opts.OnLoadFunction != "boot" {
		t.Errorf("unexpected options %+v", opts)
	}
	if !opts.RequireRegisterNatives {
		t.Error("expected require_register_natives")
	}
	if opts.OnLoadHeader != "" {
		t.Errorf("unset keys must stay empty, got %q", opts.OnLoadHeader)
	}
}

func TestParseOverrides_Empty(t *testing.T) {
	opts, err := ParseOverrides(nil)
	if err != nil || opts != nil {
		t.Errorf("ParseOverrides(nil) = %v, %v", opts, err)
	}
}

func TestParseOverrides_Errors(t *testing.T) {
	tests := []struct {
		name  string
		pairs []string
	}{
		{"missing equals", []string{"platform"}},
		{"empty key", []string{"=unix"}},
		{"unknown key", []string{"platfrom=unix"}},
		{"bad bool", []string{"require_register_natives=maybe"}},
		{"bad platform", []string{"platform=beos"}},
		{"bad function", []string{"onload_function=a-b"}},
		{"path in prefix", []string{"file_prefix=out/jni_"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseOverrides(tt.pairs); err == nil {
				t.Errorf("expected error for %v", tt.pairs)
			}
		})
	}
}

func TestResolveOptions_Layering(t *testing.T) {
	file := &model.GenerateOptions{Platform: model.PlatformUnix, FilePrefix: "file_"}
	opts, err := ResolveOptions(file, []string{"file_prefix=flag_"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Platform != model.PlatformUnix {
		t.Errorf("file option lost: %q", opts.Platform)
	}
	if opts.FilePrefix != "flag_" {
		t.Errorf("--set must win over the file, got %q", opts.FilePrefix)
	}
	if opts.OnLoadHeader != "jni_onload.h" || opts.OnLoadFunction != "register_all_natives" {
		t.Errorf("defaults lost: %+v", opts)
	}
}
