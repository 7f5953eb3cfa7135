package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetVars(t *testing.T) {
	t.Helper()
	v, c, d := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = v, c, d })
	Version, Commit, Date = "dev", "none", "unknown"
}

func buildInfo(main string, settings ...string) *debug.BuildInfo {
	bi := &debug.BuildInfo{Main: debug.Module{Version: main}}
	for i := 0; i+1 < len(settings); i += 2 {
		bi.Settings = append(bi.Settings, debug.BuildSetting{Key: settings[i], Value: settings[i+1]})
	}
	return bi
}

func TestFillFromBuildInfo(t *testing.T) {
	tests := []struct {
		name                string
		preset              func()
		info                *debug.BuildInfo
		version, commit, at string
	}{
		{
			name:    "module version only",
			info:    buildInfo("v0.3.1"),
			version: "0.3.1", commit: "none", at: "unknown",
		},
		{
			name:    "devel build with vcs stamp",
			info:    buildInfo("(devel)", "vcs.revision", "0123456789abcdef", "vcs.time", "2026-01-02T03:04:05Z"),
			version: "dev", commit: "0123456", at: "2026-01-02T03:04:05Z",
		},
		{
			name:    "short revision kept whole",
			info:    buildInfo("", "vcs.revision", "abc"),
			version: "dev", commit: "abc", at: "unknown",
		},
		{
			name: "ldflags win",
			preset: func() {
				Version, Commit, Date = "2.0.0", "feedbee", "2026-10-01"
			},
			info:    buildInfo("v0.1.0", "vcs.revision", "0123456789", "vcs.time", "2020-01-01"),
			version: "2.0.0", commit: "feedbee", at: "2026-10-01",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resetVars(t)
			if tc.preset != nil {
				tc.preset()
			}
			fillFromBuildInfo(tc.info)
			assert.Equal(t, tc.version, Version)
			assert.Equal(t, tc.commit, Commit)
			assert.Equal(t, tc.at, Date)
		})
	}
}

func TestString(t *testing.T) {
	resetVars(t)
	Version, Commit, Date = "1.0.0", "abc1234", "2026-10-19"
	assert.Equal(t, "1.0.0 (commit: abc1234, built: 2026-10-19)", String())
}
