// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

// Id identifies a catalog entry.
type Id int

const (
	ComponentNotFoundId Id = iota + 1
	ComponentDisabledId
	ManifestNotFoundId
	ManifestParseErrorId
	InvalidManifestId
	InvalidAssetReferenceId
	PublishFailedId
	ConfigLoadFailedId
	PermissionDeniedId
)

type (
	// MarkdownMsg is catalog text rendered with glamour.
	MarkdownMsg string

	HttpLink string

	// Issue is a catalog entry with extended guidance for a known failure.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// DocLinks returns a copy of the documentation links.
func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the Markdown message with the glamour style at stylePath
// ("dark", "light", "notty", or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.docLinks {
			md += "- <" + string(link) + ">\n"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	componentNotFoundIssue = &Issue{
		id: ComponentNotFoundId,
		mdMsg: `
# Component not found!

No discovered component matches that name or alias. Matching ignores case.

## Things you can try:
- List what was discovered:
~~~
$ components list
~~~
- Check that the component directory holds a ` + "`component.json`" + `
- Add the directory holding it as a scan location:
~~~
$ components --path modules/extra list
~~~`,
	}

	componentDisabledIssue = &Issue{
		id: ComponentDisabledId,
		mdMsg: `
# Component is disabled!

The component exists but its manifest has ` + "`\"active\": 0`" + `.

## Things you can try:
- Enable it:
~~~
$ components enable <name>
~~~
- Or clear the used component:
~~~
$ components unuse
~~~`,
	}

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# Manifest not found!

Every component directory must contain a manifest file (` + "`component.json`" + ` unless
the ` + "`manifest`" + ` configuration key says otherwise).

## Minimal manifest:
~~~json
{
    "name": "Blog",
    "alias": "blog",
    "version": "0.1",
    "active": 1
}
~~~`,
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Malformed manifest!

The manifest is not a valid JSON object. The whole file must be one object;
trailing commas and comments are not allowed.

## Things you can try:
- Check the file with a JSON linter
- Compare it with the schema:
~~~
$ components schema
~~~`,
	}

	invalidManifestIssue = &Issue{
		id: InvalidManifestId,
		mdMsg: `
# Invalid manifest!

The manifest parsed, but some recognized keys break their rules:

- ` + "`name`" + ` is required, starts with a letter and holds letters, digits, ` + "`_`" + ` or ` + "`-`" + `
- ` + "`alias`" + ` is lowercase when present
- ` + "`version`" + ` is required
- ` + "`order`" + ` is not negative

Run ` + "`components validate`" + ` to see every violation.`,
	}

	invalidAssetReferenceIssue = &Issue{
		id: InvalidAssetReferenceId,
		mdMsg: `
# Invalid asset reference!

Asset references have the form ` + "`name:relative/path`" + `, both parts non-empty.

~~~
$ components asset recipe:js/app.js
/components/recipe/js/app.js
~~~`,
	}

	publishFailedIssue = &Issue{
		id: PublishFailedId,
		mdMsg: `
# Publishing failed!

Files could not be copied from the component into the host application.
Publishing is not transactional: files copied before the failure stay in place.

## Things you can try:
- Check that the component has the source directory (` + "`Resources/assets`" + ` or ` + "`Database/Migrations`" + `)
- Check that the destination (` + "`paths.assets`" + ` or ` + "`paths.migration`" + `) is writable
- Publish again once fixed; existing files are overwritten`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your configuration file could not be loaded.

## Things you can try:
- Check the CUE syntax of the file
- Write a fresh default file and compare:
~~~
$ components config init --force
~~~
- Print the effective configuration:
~~~
$ components config show
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

A component manifest or directory could not be written.

## Things you can try:
- Check the file permissions of the component directory
- Check that the used-state file directory is writable`,
	}

	issues = map[Id]*Issue{
		componentNotFoundIssue.Id():     componentNotFoundIssue,
		componentDisabledIssue.Id():     componentDisabledIssue,
		manifestNotFoundIssue.Id():      manifestNotFoundIssue,
		manifestParseErrorIssue.Id():    manifestParseErrorIssue,
		invalidManifestIssue.Id():       invalidManifestIssue,
		invalidAssetReferenceIssue.Id(): invalidAssetReferenceIssue,
		publishFailedIssue.Id():         publishFailedIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		permissionDeniedIssue.Id():      permissionDeniedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
