package clip

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/trim-timeline-cli/pkg/timeutil"
)

// TrimPaths computes the output folder and filename for an exported trim.
// Folder is <videoDir>/trims/<videoName>.
// Filename format: {HHMMSS}-{HHMMSS}[-{label}].{ext}
func TrimPaths(videoPath string, start, finish float64, label string) (folder, filename string) {
	base := filepath.Base(videoPath)
	ext := filepath.Ext(base)
	name := slug(strings.TrimSuffix(base, ext))
	if ext == "" {
		ext = ".mp4"
	}

	folder = filepath.Join(filepath.Dir(videoPath), "trims", name)
	filename = timeutil.CompactTimestamp(start) + "-" + timeutil.CompactTimestamp(finish)
	if s := slug(label); s != "" {
		filename += "-" + s
	}
	return folder, filename + ext
}

// OutputPath joins TrimPaths into a single path.
func OutputPath(videoPath string, start, finish float64, label string) string {
	folder, filename := TrimPaths(videoPath, start, finish, label)
	return filepath.Join(folder, filename)
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// ffmpegTime formats seconds for ffmpeg's -ss and -t flags.
func ffmpegTime(seconds float64) string {
	return fmt.Sprintf("%.3f", seconds)
}
