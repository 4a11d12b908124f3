// Package bhavcopy downloads the NSE end-of-day settlement file and reads
// daily price data (bhavcopy and live market-watch CSV exports) into quotes.
package bhavcopy

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xyproto/unzip"
)

// DefaultBaseURL is the NSE historical equities archive.
const DefaultBaseURL = "https://archives.nseindia.com/content/historical/EQUITIES"

// IST is the exchange timezone. Bhavcopy availability and "today" are
// always evaluated in it, regardless of where the tool runs.
var IST = time.FixedZone("IST", 19800)

// publishHour is when the settlement file becomes available on the archive.
const publishHour = 18

// Fetcher downloads and unpacks bhavcopy files into a local directory.
type Fetcher struct {
	BaseURL string
	Dir     string
	Client  *http.Client
}

// NewFetcher builds a fetcher over the given directory.
func NewFetcher(baseURL, dir string, timeout time.Duration) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Fetcher{
		BaseURL: baseURL,
		Dir:     dir,
		Client:  &http.Client{Timeout: timeout},
	}
}

// DayString renders a date the way the archive names files: DDMMMYYYY,
// upper case ("23APR2021").
func DayString(day time.Time) string {
	return strings.ToUpper(day.Format("02Jan2006"))
}

// CSVPath returns where the uncompressed bhavcopy for a date lives locally.
func (f *Fetcher) CSVPath(day time.Time) string {
	return filepath.Join(f.Dir, "cm"+DayString(day)+"bhav.csv")
}

// URL returns the archive location of a date's zipped bhavcopy.
func (f *Fetcher) URL(day time.Time) string {
	ds := DayString(day)
	return fmt.Sprintf("%s/%s/%s/cm%sbhav.csv.zip", f.BaseURL, ds[5:], ds[2:5], ds)
}

// Available reports whether the archive can be expected to have the file:
// any past trading day, or today after the publish hour (IST).
func Available(now, day time.Time) bool {
	now = now.In(IST)
	day = day.In(IST)
	ny, nm, nd := now.Date()
	dy, dm, dd := day.Date()
	if dy == ny && dm == nm && dd == nd {
		return now.Hour() >= publishHour
	}
	return day.Before(now)
}

// Fetch downloads and unzips the bhavcopy for the given date, returning the
// path of the uncompressed CSV. A file already present is reused without a
// network round trip.
func (f *Fetcher) Fetch(day time.Time) (string, error) {
	csvPath := f.CSVPath(day)
	if _, err := os.Stat(csvPath); err == nil {
		return csvPath, nil
	}

	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create bhavcopy dir: %w", err)
	}

	zipPath := csvPath + ".zip"
	if err := f.download(f.URL(day), zipPath); err != nil {
		return "", err
	}
	defer os.Remove(zipPath)

	if err := unzip.Extract(zipPath, f.Dir); err != nil {
		return "", fmt.Errorf("extract bhavcopy: %w", err)
	}
	if _, err := os.Stat(csvPath); err != nil {
		return "", fmt.Errorf("bhavcopy archive did not contain %s: %w", filepath.Base(csvPath), err)
	}
	return csvPath, nil
}

func (f *Fetcher) download(url, dst string) error {
	resp, err := f.Client.Get(url)
	if err != nil {
		return fmt.Errorf("download bhavcopy: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download bhavcopy: %s returned %s", url, resp.Status)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create bhavcopy zip: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("save bhavcopy zip: %w", err)
	}
	return out.Close()
}
