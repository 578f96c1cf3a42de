package logger

import (
	"log/slog"
	"path/filepath"

	"github.com/fatih/color"
)

// TruncSourceAttr shortens the file of a source attr to its parent directory and base name.
//
// TruncSourceAttr is for use as [log/slog.HandlerOptions.ReplaceAttr].
func TruncSourceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.SourceKey {
		return a
	}

	src, ok := a.Value.Any().(*slog.Source)
	if !ok || src == nil {
		return a
	}

	short := *src
	short.File = immediateFilepath(src.File)
	short.Function = ""

	return slog.Any(slog.SourceKey, &short)
}

// ColorizeLevel paints the level attr by severity.
func ColorizeLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 || a.Key != slog.LevelKey {
		return a
	}

	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}

	var paint func(string, ...any) string
	switch {
	case level >= slog.LevelError:
		paint = color.RedString
	case level >= slog.LevelWarn:
		paint = color.YellowString
	case level >= slog.LevelInfo:
		paint = color.BlueString
	default:
		paint = color.WhiteString
	}

	return slog.String(slog.LevelKey, paint("%s", level.String()))
}

// DeleteLevelAttr removes the top-level level attr.
func DeleteLevelAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		return slog.Attr{}
	}

	return a
}

// DeleteMessageAttr removes the top-level message attr.
func DeleteMessageAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.MessageKey {
		return slog.Attr{}
	}

	return a
}

// immediateFilepath keeps the directory holding file and file itself:
//
//	/home/dev/accounts/http/handler/user.go => handler/user.go
func immediateFilepath(file string) string {
	dir, base := filepath.Split(file)
	return filepath.Join(filepath.Base(dir), base)
}
