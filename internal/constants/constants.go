package constants

const (
	Version        = `0.1.0`
	ConfigFile     = `dynix`
	ConfigFileType = `yaml`
	ConfigDir      = `/.dynix/`

	DefaultVaultSubdir = `obsidian`
	DefaultEditor      = `nvim`
)
