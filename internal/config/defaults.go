package config

const (
	defaultMediaInfoCommand = "mediainfo"
	defaultJavaCommand      = "java"
	defaultXMLLintCommand   = "xmllint"
	defaultBagItCommand     = "bagit.py"
	defaultArchiverCommand  = "prepare_bag"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogDir           = "~/.local/share/bindery/logs"
	defaultMinFreeGiB       = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			MediaInfo: defaultMediaInfoCommand,
			Java:      defaultJavaCommand,
			XMLLint:   defaultXMLLintCommand,
			BagIt:     defaultBagItCommand,
			Archiver:  defaultArchiverCommand,
		},
		Pipeline: Pipeline{
			Departments:   []string{"russell", "hargrett"},
			MinFreeGiB:    defaultMinFreeGiB,
			LedgerEnabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Dir:    defaultLogDir,
		},
	}
}
