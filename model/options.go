package model

// GenerateOptions controls a generation run. The same structure is read from the
// declaration file's options block and from --set key=value overrides.
type GenerateOptions struct {
	// Platform decides the long-literal suffix: "windows" uses i64, "unix" uses LL,
	// "auto" follows the host running the generator.
	Platform string `yaml:"platform,omitempty" schema:"platform" validate:"omitempty,oneof=auto windows unix"`

	// FilePrefix is prepended to every per-class output file name.
	FilePrefix string `yaml:"file_prefix,omitempty" schema:"file_prefix" validate:"omitempty,excludesall=/\\"`

	OnLoadHeader   string `yaml:"onload_header,omitempty" schema:"onload_header" validate:"omitempty,endswith=.h,excludesall=/\\"`
	OnLoadFunction string `yaml:"onload_function,omitempty" schema:"onload_function" validate:"omitempty,cident"`

	// RequireRegisterNatives reports classes lacking a static native void registerNatives().
	RequireRegisterNatives bool `yaml:"require_register_natives,omitempty" schema:"require_register_natives"`
}

const (
	PlatformAuto    = "auto"
	PlatformWindows = "windows"
	PlatformUnix    = "unix"
)

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() GenerateOptions {
	return GenerateOptions{
		Platform:       PlatformAuto,
		OnLoadHeader:   "jni_onload.h",
		OnLoadFunction: "register_all_natives",
	}
}

// Merge overlays the non-empty fields of o onto a copy of base.
func (base GenerateOptions) Merge(o *GenerateOptions) GenerateOptions {
	if o == nil {
		return base
	}
	if o.Platform != "" {
		base.Platform = o.Platform
	}
	if o.FilePrefix != "" {
		base.FilePrefix = o.FilePrefix
	}
	if o.OnLoadHeader != "" {
		base.OnLoadHeader = o.OnLoadHeader
	}
	if o.OnLoadFunction != "" {
		base.OnLoadFunction = o.OnLoadFunction
	}
	if o.RequireRegisterNatives {
		base.RequireRegisterNatives = true
	}
	return base
}
