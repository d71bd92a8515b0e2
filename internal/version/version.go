// Package version отдаёт сведения о сборке для логов и /version.
//
// Значения задаются через -ldflags "-X maw-server/internal/version.BuildDate=2026-03-01 ...".
// Если коммит не задан, берётся из метаданных VCS, которые go build кладёт в бинарник.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// Номер сборки - дни от этой даты
var buildEpoch = time.Date(2025, time.December, 4, 0, 0, 0, 0, time.UTC)

// VersionInfo - сведения о сборке, как их отдаёт /version
type VersionInfo struct {
	BuildID    int    `json:"buildId"`
	BuildDate  string `json:"buildDate,omitempty"`
	Commit     string `json:"commit,omitempty"`
	Branch     string `json:"branch,omitempty"`
	CI         string `json:"ci,omitempty"`
	GoVersion  string `json:"goVersion,omitempty"`
	Dirty      bool   `json:"dirty,omitempty"`
	Calculated bool   `json:"calculated"`
	Error      string `json:"error,omitempty"`
}

// CalculateBuildID - номер сборки: сколько суток прошло от buildEpoch до date
func CalculateBuildID(date string) (int, error) {
	if date == "" {
		return 0, fmt.Errorf("build date not set")
	}

	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("build date %q is not YYYY-MM-DD: %w", date, err)
	}

	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("build date %s precedes %s", date, buildEpoch.Format("2006-01-02"))
	}

	// Обе даты в UTC, сутки ровно по 24 часа
	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

// Info собирает сведения из ldflags и метаданных сборки.
// Ошибку номера кладёт в поле Error, а не возвращает.
func Info() VersionInfo {
	info := VersionInfo{
		BuildDate: BuildDate,
		Commit:    BuildCommit,
		Branch:    BuildBranch,
		CI:        BuildCI,
	}
	fillFromBuildInfo(&info)

	id, err := CalculateBuildID(info.BuildDate)
	if err != nil {
		info.Error = err.Error()
		return info
	}

	info.BuildID = id
	info.Calculated = true
	return info
}

// fillFromBuildInfo дополняет то, что не задано через ldflags
func fillFromBuildInfo(info *VersionInfo) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "" && len(s.Value) >= len("2006-01-02") {
				info.BuildDate = s.Value[:len("2006-01-02")]
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
}

// String - строка для лога при старте
func String() string {
	info := Info()

	if !info.Calculated {
		return fmt.Sprintf("maw-server, build unknown: %s", info.Error)
	}

	return fmt.Sprintf(
		"maw-server build %d (%s) commit %s on %s, ci %s",
		info.BuildID,
		info.BuildDate,
		coalesce(info.Commit, "unknown"),
		coalesce(info.Branch, "unknown"),
		coalesce(info.CI, "local"),
	)
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
