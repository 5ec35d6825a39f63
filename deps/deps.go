package deps

import (
	"fmt"
	"os/exec"
)

const (
	MpvInstallURL    = "https://mpv.io/installation/"
	FfmpegInstallURL = "https://ffmpeg.org/download.html"
)

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	InstallURL string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// Dependency is an external binary the tool shells out to.
type Dependency struct {
	Name       string
	InstallURL string
}

// Required lists every external binary, in the order doctor reports them.
var Required = []Dependency{
	{Name: "mpv", InstallURL: MpvInstallURL},
	{Name: "ffmpeg", InstallURL: FfmpegInstallURL},
	{Name: "ffprobe", InstallURL: FfmpegInstallURL},
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// Check returns a *DependencyError when d is not in PATH.
func (d Dependency) Check() error {
	if _, err := lookPath(d.Name); err != nil {
		return &DependencyError{Name: d.Name, InstallURL: d.InstallURL}
	}
	return nil
}

// CheckMpv checks if mpv is installed and available in PATH
func CheckMpv() error {
	return Required[0].Check()
}

// CheckFfmpeg checks if ffmpeg is installed and available in PATH
func CheckFfmpeg() error {
	return Required[1].Check()
}

// CheckFfprobe checks if ffprobe is installed and available in PATH
func CheckFfprobe() error {
	return Required[2].Check()
}

// CheckAll checks all dependencies and returns a slice of errors for missing ones
func CheckAll() []error {
	var errs []error
	for _, d := range Required {
		if err := d.Check(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
