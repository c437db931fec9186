package domain

import "path/filepath"

const (
	// DefaultWorkingDir is the directory, relative to the project root, holding breakdown assets.
	DefaultWorkingDir = ".agent/breakdown"

	// DefaultPromptDir is the template base directory under the working directory.
	DefaultPromptDir = "prompts"

	// DefaultSchemaDir is the schema base directory under the working directory.
	DefaultSchemaDir = "schema"

	// ConfigDirName is the directory under the working directory holding config files.
	ConfigDirName = "config"

	// DefaultProfile is the config profile used when none is selected.
	DefaultProfile = "default"

	// LegacyConfigFileName is the single-file config looked up when no profile file exists.
	LegacyConfigFileName = "breakdown.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// ProfileConfigFileName returns the file name of an app config profile: <profile>-app.yml.
func ProfileConfigFileName(profile string) string {
	if profile == "" {
		profile = DefaultProfile
	}
	return profile + "-app.yml"
}

// DefaultProfileConfigPath returns the profile config path relative to a project root.
func DefaultProfileConfigPath(profile string) string {
	return filepath.Join(DefaultWorkingDir, ConfigDirName, ProfileConfigFileName(profile))
}
