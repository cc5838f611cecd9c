package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"runtime"
	"strings"

	"golang.org/x/mod/semver"
)

var (
	ErrDevBuild      = errors.New("cannot update a non-release build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

const (
	binaryName = "learnloop"

	// maxAssetBytes caps how much of a release asset is read.
	maxAssetBytes = 256 << 20
)

// Updater installs release binaries over the running executable.
type Updater struct {
	checker *Checker
	status  io.Writer
}

// NewUpdater creates an Updater that reports progress lines to status.
// A nil status discards them.
func NewUpdater(c *Checker, status io.Writer) *Updater {
	if status == nil {
		status = io.Discard
	}
	return &Updater{checker: c, status: status}
}

func (u *Updater) logf(format string, args ...any) {
	fmt.Fprintf(u.status, format+"\n", args...)
}

// ToLatest installs the newest release when one is ahead of
// currentVersion, and returns its tag. Non-semver versions (local and
// source builds) cannot be compared and return ErrDevBuild.
func (u *Updater) ToLatest(ctx context.Context, currentVersion string) (string, error) {
	if !semver.IsValid(currentVersion) {
		return "", ErrDevBuild
	}

	u.logf("Checking %s/%s for releases newer than %s...", u.checker.owner, u.checker.repo, currentVersion)
	res, err := u.checker.Check(ctx, &CheckInput{Version: currentVersion})
	if err != nil {
		return "", fmt.Errorf("check latest release: %w", err)
	}
	if !res.UpdateAvailable {
		return "", ErrAlreadyLatest
	}

	if err := u.install(ctx, res.LatestVersion); err != nil {
		return "", err
	}
	return res.LatestVersion, nil
}

// ToVersion installs a specific release tag, newer or older.
func (u *Updater) ToVersion(ctx context.Context, tag string) error {
	if !semver.IsValid(tag) {
		return fmt.Errorf("%q is not a release tag", tag)
	}
	return u.install(ctx, tag)
}

func (u *Updater) install(ctx context.Context, tag string) error {
	asset, err := releaseAsset(runtime.GOOS, runtime.GOARCH, tag)
	if err != nil {
		return err
	}

	want, err := u.expectedChecksum(ctx, tag, asset)
	if err != nil {
		return err
	}

	u.logf("Downloading %s...", asset)
	archive, err := u.fetchVerified(ctx, u.releaseURL(tag, asset), want)
	if err != nil {
		return err
	}

	binary, err := unpack(archive, asset)
	if err != nil {
		return err
	}

	target, err := u.checker.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}

	u.logf("Installing %s to %s...", tag, target)
	if err := swapBinary(target, binary); err != nil {
		return err
	}
	u.logf("Updated to %s.", tag)
	return nil
}

// releaseAsset names the archive published for one platform, e.g.
// learnloop_1.4.0_linux_amd64.tar.gz.
func releaseAsset(goos, goarch, tag string) (string, error) {
	switch goos {
	case "linux", "darwin", "windows":
	default:
		return "", fmt.Errorf("no release builds for %s", goos)
	}
	switch goarch {
	case "amd64", "arm64":
	default:
		return "", fmt.Errorf("no release builds for %s/%s", goos, goarch)
	}

	ext := ".tar.gz"
	if goos == "windows" {
		ext = ".zip"
	}
	return fmt.Sprintf("%s_%s_%s_%s%s", binaryName, strings.TrimPrefix(tag, "v"), goos, goarch, ext), nil
}

// checksumsAsset names the digest file published with each release.
func checksumsAsset(tag string) string {
	return fmt.Sprintf("%s_%s_checksums.txt", binaryName, strings.TrimPrefix(tag, "v"))
}

func (u *Updater) releaseURL(tag, name string) string {
	base := strings.TrimRight(u.checker.downloadBaseURL, "/")
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s", base, u.checker.owner, u.checker.repo, tag, name)
}

func (u *Updater) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := u.checker.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return resp, nil
}

// expectedChecksum scans the release digest file for the asset's line
// ("<hex digest>  <asset name>") and returns the decoded digest.
func (u *Updater) expectedChecksum(ctx context.Context, tag, asset string) ([]byte, error) {
	name := checksumsAsset(tag)
	resp, err := u.get(ctx, u.releaseURL(tag, name))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 || fields[1] != asset {
			continue
		}
		sum, err := hex.DecodeString(fields[0])
		if err != nil || len(sum) != sha256.Size {
			return nil, fmt.Errorf("malformed digest for %s in %s", asset, name)
		}
		return sum, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return nil, fmt.Errorf("no digest for %s in %s", asset, name)
}

// fetchVerified downloads one asset, hashing the stream as it arrives,
// and rejects the download when the digest does not match.
func (u *Updater) fetchVerified(ctx context.Context, url string, want []byte) ([]byte, error) {
	resp, err := u.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("download asset: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	h := sha256.New()
	var buf bytes.Buffer
	if _, err := io.Copy(io.MultiWriter(h, &buf), io.LimitReader(resp.Body, maxAssetBytes)); err != nil {
		return nil, fmt.Errorf("download asset: %w", err)
	}
	if got := h.Sum(nil); !bytes.Equal(got, want) {
		return nil, fmt.Errorf("%w: got %x, want %x", ErrChecksum, got, want)
	}
	return buf.Bytes(), nil
}

func unpack(archive []byte, asset string) ([]byte, error) {
	if strings.HasSuffix(asset, ".zip") {
		return unzipBinary(archive, binaryName+".exe")
	}
	return untarBinary(archive, binaryName)
}

func untarBinary(archive []byte, name string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("archive has no %s entry", name)
		}
		if err != nil {
			return nil, fmt.Errorf("read archive: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && path.Base(hdr.Name) == name {
			return io.ReadAll(tr)
		}
	}
}

func unzipBinary(archive []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	for _, f := range zr.File {
		if path.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("read archive: %w", err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		return data, err
	}
	return nil, fmt.Errorf("archive has no %s entry", name)
}

// swapBinary replaces target with binary. The new executable is staged
// next to the old one, then swapped in with the old binary kept as
// <target>.old until the swap succeeds, so a failed rename can roll
// back.
func swapBinary(target string, binary []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat current binary: %w", err)
	}

	staged := target + ".new"
	_ = os.Remove(staged)
	if err := os.WriteFile(staged, binary, info.Mode().Perm()); err != nil {
		return fmt.Errorf("stage new binary: %w", err)
	}

	backup := target + ".old"
	_ = os.Remove(backup)
	if err := os.Rename(target, backup); err != nil {
		_ = os.Remove(staged)
		return fmt.Errorf("set aside current binary: %w", err)
	}
	if err := os.Rename(staged, target); err != nil {
		_ = os.Rename(backup, target)
		return fmt.Errorf("install new binary: %w", err)
	}

	// Windows keeps the running image locked; a leftover .old there is
	// harmless and cleaned up by the next update.
	_ = os.Remove(backup)
	return nil
}
