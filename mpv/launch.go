package mpv

import (
	"fmt"
	"os/exec"
	"time"

	"github.com/user/trim-timeline-cli/deps"
)

// LaunchMpv starts mpv with the specified video file and IPC socket enabled.
// Playback starts paused and the file is kept open at EOF so the trimmer can loop it.
// Returns the *exec.Cmd for the running process which can be used for cleanup.
func LaunchMpv(videoPath, socketPath string) (*exec.Cmd, error) {
	if err := deps.CheckMpv(); err != nil {
		return nil, err
	}
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}

	cmd := exec.Command("mpv",
		"--input-ipc-server="+socketPath,
		"--keep-open=yes",
		"--pause",
		videoPath,
	)

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return cmd, nil
}

// Dial connects a client to socketPath, retrying until mpv has created the
// socket or attempts run out.
func Dial(socketPath string, attempts int, interval time.Duration) (*Client, error) {
	if attempts < 1 {
		attempts = 1
	}
	client := NewClient(socketPath)
	var err error
	for i := 0; i < attempts; i++ {
		if err = client.Connect(); err == nil {
			return client, nil
		}
		time.Sleep(interval)
	}
	return nil, fmt.Errorf("failed to connect to mpv: %w", err)
}
