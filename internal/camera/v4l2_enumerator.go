package camera

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

var (
	devicePattern   = regexp.MustCompile(`video(\d+)$`)
	sizePattern     = regexp.MustCompile(`Size: Discrete (\d+)x(\d+)`)
	intervalPattern = regexp.MustCompile(`Interval: Discrete [\d.]+s \(([\d.]+) fps\)`)
)

// V4L2Enumerator обнаруживает устройства захвата через /dev/video*
// и опрашивает их режимы утилитой v4l2-ctl.
type V4L2Enumerator struct {
	logger *zap.Logger
}

// NewV4L2Enumerator создает перечислитель v4l2 устройств
func NewV4L2Enumerator(logger *zap.Logger) *V4L2Enumerator {
	return &V4L2Enumerator{logger: logger}
}

// Enumerate сканирует /dev/video* и возвращает режимы каждого
// отвечающего устройства. Устройства без режимов пропускаются.
func (e *V4L2Enumerator) Enumerate(ctx context.Context) (map[string][]Capability, error) {
	matches, err := filepath.Glob("/dev/video*")
	if err != nil {
		return nil, fmt.Errorf("failed to scan /dev for video devices: %w", err)
	}

	// Сортировка по номеру устройства
	sort.Slice(matches, func(i, j int) bool {
		return deviceNumber(matches[i]) < deviceNumber(matches[j])
	})

	devices := make(map[string][]Capability)
	for _, device := range matches {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		caps, err := e.probe(ctx, device)
		if err != nil {
			e.logger.Warn("Failed to probe capture device",
				zap.String("device", device),
				zap.Error(err))
			continue
		}

		if len(caps) > 0 {
			devices[device] = caps
		}
	}

	return devices, nil
}

// probe опрашивает режимы одного устройства через v4l2-ctl
func (e *V4L2Enumerator) probe(ctx context.Context, device string) ([]Capability, error) {
	cmd := exec.CommandContext(ctx, "v4l2-ctl", "--device", device, "--list-formats-ext")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("v4l2-ctl failed for %s: %w", device, err)
	}

	return parseFormats(string(output)), nil
}

// parseFormats извлекает пары (разрешение, частота) из вывода
// v4l2-ctl --list-formats-ext. Частоты перечислены под своим разрешением.
func parseFormats(output string) []Capability {
	var caps []Capability
	seen := make(map[Capability]bool)

	var current *Resolution
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)

		if m := sizePattern.FindStringSubmatch(line); m != nil {
			width, _ := strconv.Atoi(m[1])
			height, _ := strconv.Atoi(m[2])
			current = &Resolution{Width: width, Height: height}
			continue
		}

		if m := intervalPattern.FindStringSubmatch(line); m != nil && current != nil {
			fps, err := strconv.ParseFloat(m[1], 64)
			if err != nil || fps < 1 {
				continue
			}

			capability := Capability{Resolution: *current, Framerate: int(fps)}
			if !seen[capability] {
				seen[capability] = true
				caps = append(caps, capability)
			}
		}
	}

	return caps
}

// deviceNumber извлекает номер из пути /dev/videoN
func deviceNumber(device string) int {
	m := devicePattern.FindStringSubmatch(device)
	if len(m) < 2 {
		return 0
	}

	num, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}

	return num
}
