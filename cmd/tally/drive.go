package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joe5h/tally/internal/cli"
	"github.com/joe5h/tally/internal/config"
	"github.com/joe5h/tally/internal/drive"
)

func driveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drive",
		Short: "Browse application documents on Google Drive",
		Long: `Browse resumes and cover letters stored in a Google Drive folder.
Requires drive.client_id, drive.client_secret and drive.folder_id in
the config file.`,
	}

	cmd.AddCommand(driveAuthCmd())
	cmd.AddCommand(driveListCmd())
	cmd.AddCommand(driveFetchCmd())

	return cmd
}

func driveAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with Google Drive",
		Long:  `Run the browser OAuth flow and cache the token for later commands.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.LoadDriveConfig()
			if err != nil {
				return err
			}

			if _, err := drive.GetOrCreateToken(ctx, cfg); err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("Authenticated. Token cached at " + cfg.TokenFile))
			return nil
		},
	}
}

func driveListCmd() *cobra.Command {
	var folderID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents in the configured folder",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, err := newDriveClient(ctx)
			if err != nil {
				return err
			}

			files, err := client.ListFiles(ctx, folderID)
			if err != nil {
				return fmt.Errorf("failed to list files: %w", err)
			}
			if len(files) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No documents found."))
				return nil
			}

			cli.RenderDriveFiles(os.Stdout, files)
			return nil
		},
	}

	cmd.Flags().StringVarP(&folderID, "folder", "f", "", "folder id (default from config)")

	return cmd
}

func driveFetchCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "fetch <file-id>",
		Short: "Download a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := newDriveClient(ctx)
			if err != nil {
				return err
			}

			content, err := client.GetFileContent(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch file: %w", err)
			}

			if outPath == "" {
				outPath = args[0]
			}
			outPath = config.ExpandPath(outPath)
			if dir := filepath.Dir(outPath); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}
			if err := os.WriteFile(outPath, content, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Wrote %d bytes to %s", len(content), outPath)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output path (default: the file id)")

	return cmd
}

func newDriveClient(ctx context.Context) (*drive.Client, error) {
	cfg, err := config.LoadDriveConfig()
	if err != nil {
		return nil, err
	}

	token, err := drive.GetOrCreateToken(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	return drive.NewClient(ctx, cfg, token)
}
