package editor

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/five82/rgvg/internal/store"
)

// Placeholders understood in an open format.
const (
	PlaceholderEditor = "{EDITOR}"
	PlaceholderLine   = "{LINE}"
	PlaceholderPath   = "{PATH}"
)

var (
	// ErrNoEditor means neither a flag, the config nor the environment names an editor.
	ErrNoEditor = errors.New("no editor configured")
	// ErrNoEditorRule means the editor is unknown and no format was given.
	ErrNoEditorRule = errors.New("no rule for editor")
)

// rules maps editor executable names to the format that opens a file at a line.
var rules = map[string]string{
	"vim":    "{EDITOR} +{LINE} {PATH}",
	"vi":     "{EDITOR} +{LINE} {PATH}",
	"nvim":   "{EDITOR} +{LINE} {PATH}",
	"emacs":  "{EDITOR} +{LINE} {PATH}",
	"nano":   "{EDITOR} +{LINE} {PATH}",
	"kak":    "{EDITOR} +{LINE} {PATH}",
	"code":   "{EDITOR} -g {PATH}:{LINE}",
	"codium": "{EDITOR} -g {PATH}:{LINE}",
	"hx":     "{EDITOR} {PATH}:{LINE}",
	"helix":  "{EDITOR} {PATH}:{LINE}",
	"subl":   "{EDITOR} {PATH}:{LINE}",
}

// Editor is a resolved editor command. Program may carry extra arguments
// taken from $EDITOR, such as "code --wait".
type Editor struct {
	Program string   // as written by the user
	Path    string   // absolute path found in PATH
	Args    []string // extra arguments after the program
}

// Resolve picks the editor named by name, or by $EDITOR and then $VISUAL when
// name is empty, and checks that it can be found in PATH.
func Resolve(name string, getenv func(string) string) (Editor, error) {
	command := strings.TrimSpace(name)
	for _, key := range []string{"EDITOR", "VISUAL"} {
		if command != "" {
			break
		}
		command = strings.TrimSpace(getenv(key))
	}
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return Editor{}, ErrNoEditor
	}

	path, err := exec.LookPath(fields[0])
	if err != nil {
		return Editor{}, fmt.Errorf("could not find editor %q in PATH: %w", fields[0], err)
	}
	return Editor{Program: fields[0], Path: path, Args: fields[1:]}, nil
}

// Name returns the executable name used to pick a rule.
func (e Editor) Name() string {
	return filepath.Base(e.Program)
}

// Format returns override when set, otherwise the built-in format for the
// editor.
func (e Editor) Format(override string) (string, error) {
	if f := strings.TrimSpace(override); f != "" {
		return f, nil
	}
	if f, ok := rules[e.Name()]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w %q: pass a format such as %q", ErrNoEditorRule, e.Name(), "{EDITOR} +{LINE} {PATH}")
}

// Argv expands format for entry. The format is split on whitespace before
// placeholders are substituted, so a path containing spaces stays one
// argument.
func (e Editor) Argv(format string, entry store.Entry) ([]string, error) {
	tokens := strings.Fields(format)
	if len(tokens) == 0 {
		return nil, errors.New("empty editor format")
	}

	line := strconv.FormatUint(uint64(entry.LineNumber), 10)
	replacer := strings.NewReplacer(
		PlaceholderEditor, e.Path,
		PlaceholderLine, line,
		PlaceholderPath, entry.Path,
	)

	argv := make([]string, 0, len(tokens)+len(e.Args))
	for _, tok := range tokens {
		if tok == PlaceholderEditor {
			argv = append(argv, e.Path)
			argv = append(argv, e.Args...)
			continue
		}
		argv = append(argv, replacer.Replace(tok))
	}
	return argv, nil
}

// Open resolves the format for entry and replaces the current process with
// the editor.
func (e Editor) Open(format string, entry store.Entry) error {
	f, err := e.Format(format)
	if err != nil {
		return err
	}
	argv, err := e.Argv(f, entry)
	if err != nil {
		return err
	}
	return Exec(argv)
}
