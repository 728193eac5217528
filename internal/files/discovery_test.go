package files

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mehedi-hridoy/creator-pulse/internal/shared/testutil"
)

type DiscoveryTestSuite struct {
	suite.Suite
	dir       string
	discovery *Discovery
	logs      *testutil.BufferedSlogHandler
}

func (s *DiscoveryTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	var logger *slog.Logger
	logger, s.logs = testutil.NewTestLogger(nil)
	s.discovery = NewDiscovery(1024, logger)
}

func (s *DiscoveryTestSuite) write(name, body string) string {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(os.WriteFile(path, []byte(body), 0o644))
	return path
}

func (s *DiscoveryTestSuite) TestFindExportsSortedByName() {
	s.write("tiktok.json", `[]`)
	s.write("YouTube_2024.JSON", `[]`)
	s.write("facebook.json", `[]`)

	found, err := s.discovery.FindExports(s.dir)
	s.Require().NoError(err)

	names := make([]string, len(found))
	for i, f := range found {
		names[i] = f.Name
	}
	s.Equal([]string{"YouTube_2024.JSON", "facebook.json", "tiktok.json"}, names)
	s.Equal(filepath.Join(s.dir, "facebook.json"), Paths(found)[1])
}

func (s *DiscoveryTestSuite) TestFindExportsIgnoresOtherFiles() {
	s.write("notes.txt", "x")
	s.write(".hidden.json", `[]`)
	s.write("~$lock.json", `[]`)
	s.write("report.xlsx", "x")
	s.Require().NoError(os.Mkdir(filepath.Join(s.dir, "nested.json"), 0o755))
	kept := s.write("instagram.json", `[]`)

	found, err := s.discovery.FindExports(s.dir)
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(kept, found[0].Path)
	s.Equal(int64(2), found[0].Size)
}

func (s *DiscoveryTestSuite) TestFindExportsSkipsOversizedFiles() {
	big := make([]byte, 2048)
	s.write("big.json", string(big))
	s.write("small.json", `[]`)

	found, err := s.discovery.FindExports(s.dir)
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal("small.json", found[0].Name)
	testutil.AssertLogContains(s.T(), s.logs, slog.LevelWarn, "Ignoring export file")
	testutil.AssertLogAttr(s.T(), s.logs, "file", filepath.Join(s.dir, "big.json"))
}

func (s *DiscoveryTestSuite) TestFindExportsEmptyDirectory() {
	s.write("readme.md", "x")

	_, err := s.discovery.FindExports(s.dir)
	s.ErrorIs(err, ErrNoExports)
}

func (s *DiscoveryTestSuite) TestFindExportsBadDirectory() {
	_, err := s.discovery.FindExports(filepath.Join(s.dir, "missing"))
	s.ErrorContains(err, "does not exist")

	file := s.write("plain.json", `[]`)
	_, err = s.discovery.FindExports(file)
	s.ErrorContains(err, "is not a directory")
}

func TestDiscoveryTestSuite(t *testing.T) {
	suite.Run(t, new(DiscoveryTestSuite))
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "youtube.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"platforms":{}}`), 0o644))

	tests := []struct {
		name    string
		max     int64
		path    string
		wantErr string
	}{
		{"valid", 1024, path, ""},
		{"no cap", 0, path, ""},
		{"over cap", 4, path, "byte limit"},
		{"missing", 1024, filepath.Join(dir, "nope.json"), "does not exist"},
		{"directory", 1024, dir, "not a regular file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := NewDiscovery(tt.max, nil).ValidateFile(tt.path)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "youtube.json", info.Name)
			assert.False(t, info.ModTime.IsZero())
		})
	}
}
