package domain

import (
	"regexp"
	"strings"
)

// RDR3Warning is the acknowledgement directive RedM requires in every resource
// manifest while the platform is in prerelease.
const RDR3Warning = "rdr3_warning 'I acknowledge that this is a prerelease build of RedM, and I am aware my resources *will* become incompatible once RedM ships.'"

var (
	gameGTA5Pattern = regexp.MustCompile(`game\s+['"]gta5['"]`)
	gameRDR3Pattern = regexp.MustCompile(`game\s+['"]rdr3['"]`)
	warningPattern  = regexp.MustCompile(`(?m)^[ \t]*rdr3_warning\s+('[^']*'|"[^"]*")[ \t]*\r?\n?`)
	uiPagePattern   = regexp.MustCompile(`(?m)^[ \t]*ui_page\s+('[^']*'|"[^"]*")[ \t]*\r?$`)
	uiPageLine      = regexp.MustCompile(`(?m)^[ \t]*ui_page\s+('[^']*'|"[^"]*")[ \t]*\r?\n?`)
	excessBlanks    = regexp.MustCompile(`\n{3,}`)
)

// PatchManifest rewrites manifest text towards the given profile. It swaps the
// game directive, maintains the RedM prerelease warning and points ui_page at
// the dev server, the built bundle, or removes it. The transform is idempotent.
func PatchManifest(text string, profile TargetProfile) string {
	text = patchGame(text, profile.Game)
	return patchUIPage(text, profile.UIPage())
}

// patchGame swaps the first game directive. Only the first textual match is
// replaced, so a commented-out directive ahead of the real one wins.
func patchGame(text string, game Game) string {
	if game.IsRDR3() {
		text = replaceFirst(text, gameGTA5Pattern, "game 'rdr3'")
		return ensureWarning(text)
	}
	text = replaceFirst(text, gameRDR3Pattern, "game 'gta5'")
	return warningPattern.ReplaceAllString(text, "")
}

// ensureWarning inserts the prerelease warning directly after the game
// directive unless the manifest already carries one.
func ensureWarning(text string) string {
	if warningPattern.MatchString(text) {
		return text
	}
	loc := gameRDR3Pattern.FindStringIndex(text)
	if loc == nil {
		return text
	}
	rest := strings.Index(text[loc[1]:], "\n")
	if rest < 0 {
		return text + "\n" + RDR3Warning + "\n"
	}
	at := loc[1] + rest + 1
	return text[:at] + RDR3Warning + "\n" + text[at:]
}

func patchUIPage(text, page string) string {
	if page == "" {
		return removeUIPage(text)
	}
	directive := "ui_page '" + page + "'"
	if loc := uiPagePattern.FindStringIndex(text); loc != nil {
		return text[:loc[0]] + directive + text[loc[1]:]
	}
	return appendDirective(text, directive)
}

// removeUIPage strips every ui_page directive and collapses the blank lines
// the removal leaves behind.
func removeUIPage(text string) string {
	if !uiPageLine.MatchString(text) {
		return text
	}
	text = uiPageLine.ReplaceAllString(text, "")
	if strings.TrimSpace(text) == "" {
		return ""
	}
	text = excessBlanks.ReplaceAllString(text, "\n\n")
	return strings.TrimRight(text, "\n") + "\n"
}

// appendDirective adds a directive at the end of the manifest, separated from
// the existing content by a blank line.
func appendDirective(text, directive string) string {
	if strings.TrimSpace(text) == "" {
		return directive + "\n"
	}
	return strings.TrimRight(text, "\n") + "\n\n" + directive + "\n"
}

func replaceFirst(text string, pattern *regexp.Regexp, replacement string) string {
	loc := pattern.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[:loc[0]] + replacement + text[loc[1]:]
}
