package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Env is what path expansion needs to know about the user
type Env struct {
	Home string
	// DataHome is $XDG_DATA_HOME; the trash lives below it
	DataHome string
	// UserDirs maps Deja Dup's user directory variables (DOWNLOAD, MUSIC,
	// ...) to absolute paths
	UserDirs map[string]string
}

// CurrentEnv builds the Env of the running user from the XDG base and user
// directories, re-read from the environment on every call.
func CurrentEnv() (Env, error) {
	xdg.Reload()
	if xdg.Home == "" {
		return Env{}, errors.New("failed to determine home directory")
	}
	return Env{
		Home:     xdg.Home,
		DataHome: xdg.DataHome,
		UserDirs: userDirs(xdg.UserDirs),
	}, nil
}

func userDirs(dirs xdg.UserDirectories) map[string]string {
	out := map[string]string{}
	for name, dir := range map[string]string{
		"DESKTOP":      dirs.Desktop,
		"DOCUMENTS":    dirs.Documents,
		"DOWNLOAD":     dirs.Download,
		"MUSIC":        dirs.Music,
		"PICTURES":     dirs.Pictures,
		"PUBLIC_SHARE": dirs.PublicShare,
		"TEMPLATES":    dirs.Templates,
		"VIDEOS":       dirs.Videos,
	} {
		if dir != "" {
			out[name] = dir
		}
	}
	return out
}

// ExpandPath turns a configured path into an absolute one. It understands
// ~, ~/rest and Deja Dup's $HOME, $TRASH and XDG user directory variables
// ($DOWNLOAD, $MUSIC, ...), optionally followed by /rest.
func (e Env) ExpandPath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", fmt.Errorf("empty path")
	}

	head, rest, _ := strings.Cut(p, "/")
	var base string
	switch {
	case head == "~":
		base = e.Home
	case strings.HasPrefix(head, "$"):
		dir, err := e.variable(head[1:])
		if err != nil {
			return "", err
		}
		base = dir
	default:
		if !filepath.IsAbs(p) {
			return "", fmt.Errorf("path %q is not absolute", p)
		}
		return filepath.Clean(p), nil
	}
	return filepath.Clean(filepath.Join(base, rest)), nil
}

func (e Env) variable(name string) (string, error) {
	switch name {
	case "HOME":
		return e.Home, nil
	case "TRASH":
		dataHome := e.DataHome
		if dataHome == "" {
			dataHome = filepath.Join(e.Home, ".local", "share")
		}
		return filepath.Join(dataHome, "Trash"), nil
	}
	if dir, ok := e.UserDirs[name]; ok {
		return dir, nil
	}
	return "", fmt.Errorf("unknown variable $%s", name)
}
