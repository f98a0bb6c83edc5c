// Package policy implements the write-guard decision pipeline: a
// pure function of (lock state, path, content) with no memory
// across invocations.
package policy

import (
	"fmt"
	"path"
	"strings"

	"github.com/pinesmith/pineguard/internal/lockstate"
	"github.com/pinesmith/pineguard/internal/model"
)

// Evaluate decides one write request.
//
// Evaluation order (must not be changed):
//  1. Classify the path, a pure function of the relative path string
//  2. Decide: locked + protected denies, everything else allows
//  3. Deny explanation with the remediation step
//  4. Non-blocking advisories, which never change the decision
//  5. Trailing lock-state status line, always present
func Evaluate(req model.WriteRequest, read lockstate.Reading, cfg *Config) model.Decision {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	rules := cfg.Rules()

	// Step 1: Classify. Paths that escaped the root fail closed.
	category := model.Protected
	if !req.Escaped {
		category = rules.Classify(req.RelPath)
	}

	// Step 2: Decide. Unlocked mode is fully permissive.
	allowed := read.State == model.Unlocked || category != model.Protected

	d := model.Decision{
		Allowed:   allowed,
		Category:  category,
		LockState: read.State,
	}

	// Step 3: Deny explanation.
	if !allowed {
		d.Messages = append(d.Messages,
			fmt.Sprintf("BLOCKED: %s is protected while the project is locked", req.RelPath),
			"To edit it, run: pineguard unlock",
		)
	}

	// Step 4: Advisories.
	var adv []string

	if read.State == model.Unlocked && category == model.Protected && rules.IsCritical(req.RelPath) {
		adv = append(adv, fmt.Sprintf("CAUTION: %s is a system file; unlocked mode permits this write", req.RelPath))
	}

	if cfg.isScript(req.RelPath) {
		if req.HasContent && !cfg.versionDeclared(req.Content) {
			adv = append(adv, "ADVISORY: missing version declaration; the first line should be //@version=6")
		}
		if req.HasContent &&
			path.Base(req.RelPath) == cfg.TemplateFilename &&
			!strings.Contains(req.Content, cfg.TemplateSentinel) {
			adv = append(adv, fmt.Sprintf("ADVISORY: %s carries real content but still has the template name; rename it first", cfg.TemplateFilename))
		}
		if category != model.UserContent {
			adv = append(adv, fmt.Sprintf("TIP: %s files belong under %s/", cfg.ScriptExtension, cfg.UserContentDir))
		}
	}

	if read.Present && !read.Recognized {
		adv = append(adv, fmt.Sprintf("ADVISORY: state file holds unrecognized token %q; treating as unlocked", read.Token))
	}

	d.Advisories = len(adv)
	d.Messages = append(d.Messages, adv...)

	// Step 5: Status line.
	d.Messages = append(d.Messages, StatusLine(read.State))

	return d
}

// StatusLine is the trailing operator-visibility line.
func StatusLine(state model.State) string {
	return "Lock state: " + string(state)
}

func (c *Config) isScript(relPath string) bool {
	return strings.HasSuffix(relPath, c.ScriptExtension)
}

// versionDeclared reports whether the first content line carries the
// expected version declaration.
func (c *Config) versionDeclared(content string) bool {
	first := content
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}
	first = strings.TrimSuffix(first, "\r")
	return c.versionRE.MatchString(first)
}
