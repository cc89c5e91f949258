//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CreateTestWorkspace creates an isolated directory used as $HOME and cwd
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteDeck writes a deck file with one section per title
func (tf *TUITestFramework) WriteDeck(name, title string, sections ...string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "title = %q\n", title)
	for i, s := range sections {
		fmt.Fprintf(&b, "\n[[sections]]\nid = \"s%d\"\ntitle = %q\nbody = \"body of %s\"\n", i+1, s, s)
	}

	path := filepath.Join(tf.workspace, name)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteConfig writes a config file into the workspace
func (tf *TUITestFramework) WriteConfig(name, content string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	path := filepath.Join(tf.workspace, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}
