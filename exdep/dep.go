// Package exdep checks for external tools some commands shell out to.
package exdep

import (
	"fmt"
	"os/exec"
	"strings"
)

// Dep represents an external tool dependency
type Dep struct {
	Name  string
	Links []string
	Docs  string
}

// Required lists the tools the harvest commands need on the path.
var Required = []Dep{
	{
		Name:  "metha-sync",
		Links: []string{"https://github.com/miku/metha"},
		Docs:  "go install -v github.com/miku/metha/cmd/...@latest",
	},
	{
		Name:  "metha-cat",
		Links: []string{"https://github.com/miku/metha"},
		Docs:  "go install -v github.com/miku/metha/cmd/...@latest",
	},
}

// Check returns one error per missing dependency.
func Check(deps []Dep) []error {
	var errors []error
	for _, dep := range deps {
		if err := check(dep); err != nil {
			errors = append(errors, err)
		}
	}
	return errors
}

// CheckRequired verifies the default tool set for harvesting.
func CheckRequired() []error {
	return Check(Required)
}

func check(dep Dep) error {
	_, err := exec.LookPath(dep.Name)
	if err != nil {
		return fmt.Errorf("%s: %w [%s, %s]",
			dep.Name, err, dep.Docs, strings.Join(dep.Links, ", "))
	}
	return nil
}
