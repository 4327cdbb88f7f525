package config

const (
	defaultDownloadDir = "~/.local/share/transcriptor/downloads"
	defaultLibraryDir  = "~/library"
	defaultLogDir      = "~/.local/share/transcriptor/logs"
	defaultVideosDir   = "videos"
	defaultAudioDir    = "audio"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DownloadDir: defaultDownloadDir,
			LibraryDir:  defaultLibraryDir,
			LogDir:      defaultLogDir,
		},
		Library: Library{
			VideosDir: defaultVideosDir,
			AudioDir:  defaultAudioDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
