package domain

import "fmt"

// FormatTime renders elapsed milliseconds as MM:ss.cc, the format shared by
// the play timer, the results screen, and the scoreboard.
func FormatTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	totalSeconds := ms / 1000
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	centis := (ms % 1000) / 10
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, centis)
}
