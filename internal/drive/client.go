package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/joe5h/tally/internal/common"
	"github.com/joe5h/tally/internal/config"
	"github.com/joe5h/tally/internal/service"
)

// Document mime types surfaced by the listing; everything else in the
// folder is ignored.
var documentMimeTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.google-apps.document",
}

// Client lists and fetches documents from a configured Drive folder.
type Client struct {
	svc   *driveapi.Service
	cfg   config.DriveConfig
	retry service.RetryOptions
}

// NewClient builds a Drive client from a previously acquired token.
func NewClient(ctx context.Context, cfg config.DriveConfig, token *oauth2.Token) (*Client, error) {
	httpClient := oauthConfig(cfg).Client(ctx, token)
	svc, err := driveapi.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &Client{
		svc: svc,
		cfg: cfg,
		retry: service.RetryOptions{
			MaxAttempts:  cfg.RetryAttempts,
			InitialDelay: cfg.RetryDelay,
			MaxDelay:     30 * time.Second,
			Multiplier:   2.0,
		},
	}, nil
}

// ListFiles returns the documents in a folder, newest first. An empty
// folderID falls back to the configured folder.
func (c *Client) ListFiles(ctx context.Context, folderID string) ([]service.DriveFile, error) {
	if folderID == "" {
		folderID = c.cfg.FolderID
	}
	if folderID == "" {
		return nil, fmt.Errorf("%w: no drive folder configured", common.ErrMissingConfig)
	}

	query := fmt.Sprintf("'%s' in parents and trashed = false and (%s)",
		folderID, mimeTypeQuery())

	var files []service.DriveFile
	err := common.WithRetry(ctx, func() error {
		files = files[:0]
		pageToken := ""
		for {
			call := c.svc.Files.List().
				Q(query).
				Fields("nextPageToken, files(id, name, webViewLink)").
				OrderBy("modifiedTime desc").
				PageSize(100).
				Context(ctx)
			if pageToken != "" {
				call = call.PageToken(pageToken)
			}

			resp, err := call.Do()
			if err != nil {
				return classifyError(err)
			}

			for _, f := range resp.Files {
				files = append(files, service.DriveFile{
					ID:          f.Id,
					Name:        f.Name,
					WebViewLink: f.WebViewLink,
				})
			}

			pageToken = resp.NextPageToken
			if pageToken == "" {
				return nil
			}
		}
	}, c.retry)
	if err != nil {
		return nil, err
	}

	slog.Debug("listed drive files", "folder", folderID, "count", len(files))
	return files, nil
}

// GetFileContent downloads one file's bytes.
func (c *Client) GetFileContent(ctx context.Context, fileID string) ([]byte, error) {
	var content []byte
	err := common.WithRetry(ctx, func() error {
		resp, err := c.svc.Files.Get(fileID).Context(ctx).Download()
		if err != nil {
			return classifyError(err)
		}
		defer func() { _ = resp.Body.Close() }()

		content, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read file content: %w", err)
		}
		return nil
	}, c.retry)
	if err != nil {
		return nil, err
	}

	return content, nil
}

func mimeTypeQuery() string {
	parts := make([]string, len(documentMimeTypes))
	for i, mt := range documentMimeTypes {
		parts[i] = fmt.Sprintf("mimeType = '%s'", mt)
	}
	return strings.Join(parts, " or ")
}

// classifyError maps Drive API failures onto the shared error taxonomy so
// retry logic can tell transient failures from terminal ones.
func classifyError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &common.RetryableError{
			Err:       fmt.Errorf("%w: %v", common.ErrDriveAuth, err),
			Retryable: false,
		}
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", common.ErrDriveRateLimit, err)
	default:
		return err
	}
}
