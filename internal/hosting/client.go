package hosting

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// requestTimeout is the fixed per-request timeout; there is no retry.
const requestTimeout = 200 * time.Second

// Client accesses one project's artifacts on the hosting service.
// BaseURL serves the feed and detail pages; UploadURL serves artifact
// download and upload. Both default to the legacy host and are overridable
// for tests.
type Client struct {
	BaseURL    string
	UploadBase string
	Project    string
	Username   string
	Password   string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient returns a client for the named project on the legacy host.
func NewClient(project, baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = "http://code.google.com"
	}
	return &Client{
		BaseURL:    baseURL,
		UploadBase: fmt.Sprintf("http://%s.googlecode.com", project),
		Project:    project,
		HTTPClient: &http.Client{Timeout: requestTimeout},
		Logger:     logger,
	}
}

// UploadError reports a failed upload with the context an operator needs.
type UploadError struct {
	Status  int
	Reason  string
	File    string
	Project string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload of %q to project %q failed: %d %s",
		e.File, e.Project, e.Status, e.Reason)
}

// ListDownloads fetches the feed of uploaded files. A fetch failure
// degrades to an empty result: listing-unavailable means nothing is known
// remotely.
func (c *Client) ListDownloads() []Record {
	feedURL := fmt.Sprintf("%s/feeds/p/%s/downloads/basic", c.BaseURL, c.Project)
	body, err := c.get(feedURL)
	if err != nil {
		c.logger().Warn("download feed unavailable",
			zap.String("url", feedURL), zap.Error(err))
		return nil
	}
	return parseFeed(c.Project, string(body))
}

// FileDetails scrapes the detail page for one file. HTTP errors degrade to
// a record with all optional fields absent.
func (c *Client) FileDetails(fname string) Record {
	detailURL := fmt.Sprintf("%s/p/%s/downloads/detail?name=%s",
		c.BaseURL, c.Project, url.QueryEscape(fname))
	c.logger().Info("checking remote checksum", zap.String("url", detailURL))

	rec := Record{Project: c.Project, Filename: fname}
	body, err := c.get(detailURL)
	if err != nil {
		c.logger().Warn("detail page unavailable",
			zap.String("file", fname), zap.Error(err))
		return rec
	}
	parseDetail(&rec, string(body))
	return rec
}

// Download fetches the artifact into distDir, creating the directory when
// absent. Local files are never deleted, only written.
func (c *Client) Download(fname, distDir string) error {
	artifactURL := fmt.Sprintf("%s/files/%s", c.UploadBase, url.PathEscape(fname))

	resp, err := c.HTTPClient.Get(artifactURL)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", fname, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download %s: HTTP %d", fname, resp.StatusCode)
	}

	if err := os.MkdirAll(distDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", distDir, err)
	}

	dest := filepath.Join(distDir, fname)
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer out.Close()

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	c.logger().Info("downloaded artifact",
		zap.String("file", fname), zap.Int64("bytes", written))
	return nil
}

// Upload publishes a file with its summary and label set via the multipart
// upload API. Success is a created response carrying the new artifact URL;
// anything else is an UploadError.
func (c *Client) Upload(path, summary string, labels []string) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("summary", summary); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	for _, label := range labels {
		if err := mw.WriteField("label", label); err != nil {
			return "", fmt.Errorf("failed to build upload form: %w", err)
		}
	}

	part, err := mw.CreateFormFile("filename", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	f.Close()
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finish upload form: %w", err)
	}

	uploadURL := fmt.Sprintf("%s/files", c.UploadBase)
	req, err := http.NewRequest(http.MethodPost, uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.SetBasicAuth(c.Username, c.Password)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", &UploadError{Reason: err.Error(), File: path, Project: c.Project}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	loc := resp.Header.Get("Location")
	if resp.StatusCode != http.StatusCreated || loc == "" {
		return "", &UploadError{
			Status:  resp.StatusCode,
			Reason:  resp.Status,
			File:    path,
			Project: c.Project,
		}
	}

	c.logger().Info("uploaded artifact",
		zap.String("file", path), zap.String("url", loc))
	return loc, nil
}

// get fetches a URL and returns the body, treating any non-OK status as an
// error so callers can apply their degrade-to-absent policies.
func (c *Client) get(u string) ([]byte, error) {
	resp, err := c.HTTPClient.Get(u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}
