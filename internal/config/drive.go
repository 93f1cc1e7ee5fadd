package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DriveConfig holds the Google Drive integration settings.
type DriveConfig struct {
	ClientID      string
	ClientSecret  string
	FolderID      string
	TokenFile     string
	RetryAttempts int
	RetryDelay    time.Duration
}

// DefaultDriveConfig returns a DriveConfig with sensible defaults.
func DefaultDriveConfig() DriveConfig {
	return DriveConfig{
		TokenFile:     filepath.Join(DataDir(), "drive-token.json"),
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
}

// LoadDriveConfig reads drive settings from viper, falling back to the
// TALLY_DRIVE_* environment variables.
func LoadDriveConfig() (DriveConfig, error) {
	cfg := DefaultDriveConfig()

	cfg.ClientID = viper.GetString("drive.client_id")
	if cfg.ClientID == "" {
		cfg.ClientID = os.Getenv("TALLY_DRIVE_CLIENT_ID")
	}
	cfg.ClientSecret = viper.GetString("drive.client_secret")
	if cfg.ClientSecret == "" {
		cfg.ClientSecret = os.Getenv("TALLY_DRIVE_CLIENT_SECRET")
	}
	cfg.FolderID = viper.GetString("drive.folder_id")
	if cfg.FolderID == "" {
		cfg.FolderID = os.Getenv("TALLY_DRIVE_FOLDER_ID")
	}
	if tokenFile := viper.GetString("drive.token_file"); tokenFile != "" {
		cfg.TokenFile = ExpandPath(tokenFile)
	}

	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return cfg, fmt.Errorf("missing drive credentials: set drive.client_id and drive.client_secret")
	}

	return cfg, nil
}
