// Package reconcile brings a local directory of release artifacts into
// agreement with the remote authoritative listing via SHA1 comparison.
//
// Reconciliation never deletes local files: it downloads missing ones,
// re-downloads on checksum disagreement, and re-uploads when the operator
// pushes. A remote checksum that is absent is treated the same as a
// mismatch, so a fetch is always triggered when the remote state is
// unverifiable.
package reconcile

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/distkit/distkit/internal/hosting"
)

// FeaturedLabel is the promotional label the legacy host only lets you
// remove by re-uploading the file.
const FeaturedLabel = "Featured"

// Client is the hosting surface the reconciler drives.
type Client interface {
	ListDownloads() []hosting.Record
	FileDetails(fname string) hosting.Record
	Download(fname, distDir string) error
	Upload(path, summary string, labels []string) (string, error)
}

// Syncer reconciles one local dist directory against one remote project.
type Syncer struct {
	Client  Client
	DistDir string
	Logger  *zap.Logger
}

// LocalSHA1 computes the hex SHA1 digest of a local file.
func LocalSHA1(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// EnsureLocal makes sure the artifact exists locally and matches the
// remote checksum, downloading as needed.
func (s *Syncer) EnsureLocal(rec hosting.Record) error {
	path := filepath.Join(s.DistDir, rec.Filename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		s.logger().Info("artifact missing locally, downloading",
			zap.String("file", rec.Filename))
		return s.Client.Download(rec.Filename, s.DistDir)
	}
	_, err := s.MaybeDownload(rec)
	return err
}

// MaybeDownload re-downloads the artifact when the remote checksum is
// absent or differs from the local digest. It reports whether a download
// happened.
func (s *Syncer) MaybeDownload(rec hosting.Record) (bool, error) {
	details := s.Client.FileDetails(rec.Filename)
	path := filepath.Join(s.DistDir, rec.Filename)

	if details.HasChecksum() {
		local, err := LocalSHA1(path)
		if err != nil {
			return false, err
		}
		if local == details.SHA1 {
			s.logger().Info("checksums match, keeping local file",
				zap.String("file", rec.Filename))
			return false, nil
		}
		s.logger().Info("checksums differ, re-downloading",
			zap.String("file", rec.Filename),
			zap.String("local", local), zap.String("remote", details.SHA1))
	} else {
		s.logger().Info("remote checksum absent, re-downloading",
			zap.String("file", rec.Filename))
	}

	if err := s.Client.Download(rec.Filename, s.DistDir); err != nil {
		return false, err
	}
	return true, nil
}

// MaybeUpload uploads the local file when the remote copy is missing a
// checksum or disagrees with the local digest. An upload failure is fatal
// for the whole batch. It reports whether an upload happened.
func (s *Syncer) MaybeUpload(fname, summary string, labels []string) (bool, error) {
	details := s.Client.FileDetails(fname)
	path := filepath.Join(s.DistDir, fname)

	if details.HasChecksum() {
		local, err := LocalSHA1(path)
		if err != nil {
			return false, err
		}
		if local == details.SHA1 {
			s.logger().Info("checksums match, not uploading",
				zap.String("file", fname))
			return false, nil
		}
		s.logger().Info("checksums differ, uploading", zap.String("file", fname))
	} else {
		s.logger().Info("file not on remote, uploading", zap.String("file", fname))
	}

	if _, err := s.Client.Upload(path, summary, labels); err != nil {
		return false, err
	}
	return true, nil
}

// Sync reconciles every remote record into the dist directory, optionally
// restricted to records carrying label and excluding named files.
// Artifacts are handled one at a time, in listing order.
func (s *Syncer) Sync(label string, except []string) error {
	records := s.Client.ListDownloads()
	s.logger().Info("remote listing fetched", zap.Int("records", len(records)))

	for _, rec := range records {
		if rec.Filename == "" {
			s.logger().Warn("feed entry has no filename, skipping",
				zap.String("summary", rec.Summary))
			continue
		}
		if contains(except, rec.Filename) {
			continue
		}
		if label != "" && !rec.HasLabel(label) {
			continue
		}
		if err := s.EnsureLocal(rec); err != nil {
			return err
		}
	}
	return nil
}

// RemoveFeatured strips the Featured label from every remote artifact still
// carrying it by ensuring a verified local copy and re-uploading with the
// reduced label set. The re-upload resets the artifact's displayed
// last-updated timestamp; the legacy host offers no other way to change
// labels.
func (s *Syncer) RemoveFeatured(except []string) error {
	var featured []hosting.Record
	for _, rec := range s.Client.ListDownloads() {
		if rec.HasLabel(FeaturedLabel) && rec.Filename != "" && !contains(except, rec.Filename) {
			featured = append(featured, rec)
		}
	}
	s.logger().Info("featured artifacts found", zap.Int("count", len(featured)))

	for _, rec := range featured {
		if err := s.EnsureLocal(rec); err != nil {
			return err
		}
	}

	for _, rec := range featured {
		s.logger().Info("removing Featured label", zap.String("file", rec.Filename))
		path := filepath.Join(s.DistDir, rec.Filename)
		if _, err := s.Client.Upload(path, rec.Summary, rec.WithoutLabel(FeaturedLabel)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Syncer) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
