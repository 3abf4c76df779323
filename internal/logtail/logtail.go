package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path.
// A non-positive maxLines returns every line. A missing file yields no
// lines and no error, since the log is created on first write.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		// Compact once the window holds twice what is kept.
		if maxLines > 0 && len(lines) >= 2*maxLines {
			lines = append(lines[:0], lines[len(lines)-maxLines:]...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines, nil
}

// Level identifies the severity of a log line.
type Level int

const (
	LevelUnknown Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DBG"
	case LevelInfo:
		return "INF"
	case LevelWarn:
		return "WRN"
	case LevelError:
		return "ERR"
	default:
		return ""
	}
}

// Entry is one parsed line of the application log.
type Entry struct {
	Time    string
	Level   Level
	Message string
}

// Parse splits a line written by the tint handler without color:
//
//	2025-12-01 18:04:05 INF items saved count=3
//
// Lines that do not follow that shape come back whole in Message with
// LevelUnknown. Tint prints adjusted levels as "WRN+2" and similar.
func Parse(line string) Entry {
	fields := strings.SplitN(line, " ", 4)
	if len(fields) < 3 || len(fields[0]) != len("2006-01-02") || len(fields[1]) != len("15:04:05") {
		return Entry{Message: line}
	}
	level := parseLevel(fields[2])
	if level == LevelUnknown {
		return Entry{Message: line}
	}
	entry := Entry{Time: fields[0] + " " + fields[1], Level: level}
	if len(fields) == 4 {
		entry.Message = fields[3]
	}
	return entry
}

func parseLevel(s string) Level {
	if i := strings.IndexAny(s, "+-"); i > 0 {
		s = s[:i]
	}
	switch s {
	case "DBG":
		return LevelDebug
	case "INF":
		return LevelInfo
	case "WRN":
		return LevelWarn
	case "ERR":
		return LevelError
	default:
		return LevelUnknown
	}
}
