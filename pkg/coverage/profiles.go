package coverage

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"
	"github.com/sirupsen/logrus"
	"golang.org/x/tools/cover"
)

var archiveExtensions = []string{
	".zip", ".tar", ".tar.gz", ".tgz", ".tar.bz2", ".tbz2", ".tar.xz", ".txz", ".tar.zst", ".tar.lz4", ".7z", ".rar",
}

// Profile is the coverage profile of a single test.
type Profile struct {
	Name   string
	Blocks []*cover.Profile
}

type blockKey struct {
	file                                 string
	startLine, startCol, endLine, endCol int
}

// LoadProfiles collects one Go coverage profile per test. Every source is
// either a profile file, a directory or an archive containing profiles.
// Profiles inside directories and archives are ordered by their path.
func LoadProfiles(ctx context.Context, sources []string) ([]Profile, error) {
	var profiles []Profile
	for _, source := range sources {
		info, err := os.Stat(source)
		if err != nil {
			return nil, fmt.Errorf("failed to access coverage source %s: %v", source, err)
		}
		if !info.IsDir() && !isArchive(source) {
			p, err := parseProfileFile(source)
			if err != nil {
				return nil, err
			}
			profiles = append(profiles, Profile{Name: source, Blocks: p})
			continue
		}
		fsys, err := archives.FileSystem(ctx, source, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to open coverage source %s: %v", source, err)
		}
		found, err := walkProfiles(fsys, source)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			logrus.Warnf("No coverage profiles found in %s.", source)
		}
		profiles = append(profiles, found...)
	}
	return profiles, nil
}

func isArchive(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range archiveExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func parseProfileFile(name string) ([]*cover.Profile, error) {
	profiles, err := cover.ParseProfiles(name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse coverage profile %s: %v", name, err)
	}
	return profiles, nil
}

func walkProfiles(fsys fs.FS, source string) (profiles []Profile, err error) {
	err = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %v", p, err)
		}
		if !isProfile(data) {
			logrus.Debugf("Skipping %s, not a coverage profile.", p)
			return nil
		}
		blocks, err := cover.ParseProfilesFromReader(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to parse coverage profile %s: %v", p, err)
		}
		profiles = append(profiles, Profile{Name: path.Join(filepath.ToSlash(source), p), Blocks: blocks})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect coverage profiles from %s: %v", source, err)
	}
	return profiles, nil
}

// isProfile checks for the "mode:" header every Go coverage profile starts with.
func isProfile(data []byte) bool {
	line, err := bufio.NewReader(bytes.NewReader(data)).ReadString('\n')
	if err != nil && err != io.EOF {
		return false
	}
	return strings.HasPrefix(line, "mode:")
}

// FromProfiles creates an oracle where every code block weighs its number of
// statements. A block counts as covered by a test if it was executed at least once.
func FromProfiles(profiles []Profile) (*Oracle, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no coverage profiles provided")
	}

	index := map[blockKey]int{}
	var weights []int
	var names []string
	for _, p := range profiles {
		names = append(names, p.Name)
		for _, fileProfile := range p.Blocks {
			for _, b := range fileProfile.Blocks {
				key := blockKey{fileProfile.FileName, b.StartLine, b.StartCol, b.EndLine, b.EndCol}
				if _, exists := index[key]; !exists {
					index[key] = len(weights)
					weights = append(weights, b.NumStmt)
				}
			}
		}
	}

	o := newOracle(names, weights)
	for i, p := range profiles {
		for _, fileProfile := range p.Blocks {
			for _, b := range fileProfile.Blocks {
				if b.Count > 0 {
					o.markCovered(i, index[blockKey{fileProfile.FileName, b.StartLine, b.StartCol, b.EndLine, b.EndCol}])
				}
			}
		}
	}
	logrus.Infof("Loaded %d coverage profiles with %d code blocks.", len(names), len(weights))
	o.warnUncovered()
	return o, nil
}
