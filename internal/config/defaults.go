package config

const (
	defaultUploadsDir  = "~/.local/share/clipforge/uploads"
	defaultRendersDir  = "~/.local/share/clipforge/renders"
	defaultProjectsDir = "~/.local/share/clipforge/projects"
	defaultLogDir      = "~/.local/share/clipforge/logs"
	defaultAPIBind     = "127.0.0.1:7015"

	defaultProgressSteps = 20
	defaultStepDelayMS   = 500
	defaultFFmpegBinary  = "ffmpeg"
	defaultPreset        = "veryfast"
	defaultPixelFormat   = "yuv420p"
	defaultAudioCodec    = "aac"

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			UploadsDir:  defaultUploadsDir,
			RendersDir:  defaultRendersDir,
			ProjectsDir: defaultProjectsDir,
			LogDir:      defaultLogDir,
			APIBind:     defaultAPIBind,
		},
		Render: Render{
			ProgressSteps: defaultProgressSteps,
			StepDelayMS:   defaultStepDelayMS,
			FFmpegBinary:  defaultFFmpegBinary,
			Preset:        defaultPreset,
			PixelFormat:   defaultPixelFormat,
			AudioCodec:    defaultAudioCodec,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
