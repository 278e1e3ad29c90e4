// Package ghurl resolves owner/repo identities and rewrites GitHub API URLs
// into their browsable equivalents. Every function fails soft: malformed
// input yields empty results, never an error, so callers treat an empty
// owner or repo as "unresolved".
package ghurl

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const webBaseURL = "https://github.com"

// ParseOwnerAndRepo accepts either an "owner/repo" full name or a GitHub
// web/API URL and returns the owner and repository name. Both results are
// empty when the input cannot be resolved.
func ParseOwnerAndRepo(fullNameOrURL string) (owner, repo string) {
	s := strings.TrimSpace(fullNameOrURL)
	if s == "" {
		return "", ""
	}

	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return "", ""
		}
		s = strings.Trim(u.Path, "/")
		// API URLs nest the pair under a /repos prefix
		s = strings.TrimPrefix(s, "repos/")
	}

	parts := strings.Split(strings.Trim(s, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", ""
	}
	return parts[0], parts[1]
}

// RepoFullNameFromURL extracts "owner/repo" from a commit, blob or compare
// URL. It is used only as a fallback when an event omits its repository
// reference entirely.
func RepoFullNameFromURL(rawURL string) string {
	owner, repo := ParseOwnerAndRepo(rawURL)
	if owner == "" || repo == "" {
		return ""
	}
	return owner + "/" + repo
}

// IssueOrPullRequestNumberFromURL extracts the trailing number of an
// issues/pulls API URL. ok is false when the URL does not match that shape.
func IssueOrPullRequestNumberFromURL(rawURL string) (int, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return 0, false
	}

	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) < 2 {
		return 0, false
	}

	kind := segs[len(segs)-2]
	if kind != "issues" && kind != "pulls" && kind != "pull" {
		return 0, false
	}

	n, err := strconv.Atoi(segs[len(segs)-1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// FixURLOptions controls the rewrite performed by FixURL
type FixURLOptions struct {
	// AddBottomAnchor appends the bottom-of-thread anchor so the browser
	// opens at the latest activity instead of the top.
	AddBottomAnchor bool

	// CommentID takes precedence over AddBottomAnchor and deep-links the
	// specific comment.
	CommentID int64

	// IssueOrPullRequestNumber appends the issue path segment when the URL
	// does not already end in a number.
	IssueOrPullRequestNumber int
}

// FixURL rewrites a GitHub API URL into its canonical browsable web URL.
// The rewrite is idempotent: applying it to its own output is a no-op.
// Empty or unparsable input yields an empty string.
func FixURL(rawURL string, opts FixURLOptions) string {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return ""
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return ""
	}

	u.Fragment = ""
	u.RawQuery = ""
	isAPIHost := strings.HasPrefix(u.Host, "api.")
	u.Host = strings.TrimPrefix(u.Host, "api.")

	path := "/" + strings.Trim(u.Path, "/")
	if isAPIHost {
		// Only API URLs carry the /repos prefix; an owner login on a
		// web URL may legitimately start with "repos".
		path = strings.TrimPrefix(path, "/repos")
	}
	path = strings.Replace(path, "/pulls/", "/pull/", 1)
	path = strings.Replace(path, "/commits/", "/commit/", 1)

	if opts.IssueOrPullRequestNumber > 0 && !endsInNumber(path) {
		path = fmt.Sprintf("%s/issues/%d", strings.TrimSuffix(path, "/"), opts.IssueOrPullRequestNumber)
	}
	u.Path = path

	switch {
	case opts.CommentID > 0:
		u.Fragment = fmt.Sprintf("issuecomment-%d", opts.CommentID)
	case opts.AddBottomAnchor:
		u.Fragment = "partial-timeline"
	}

	return u.String()
}

func endsInNumber(path string) bool {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) == 0 {
		return false
	}
	_, err := strconv.Atoi(segs[len(segs)-1])
	return err == nil
}

// RepoURL builds the web URL of a repository, empty when unresolvable
func RepoURL(owner, repo string) string {
	if owner == "" || repo == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", webBaseURL, owner, repo)
}

// RepoInvitationURL deep-links the invitation page of a repository
func RepoInvitationURL(repoFullName string) string {
	if repoFullName == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/invitations", webBaseURL, repoFullName)
}

// SecurityAlertURL deep-links the vulnerability alerts page of a repository
func SecurityAlertURL(repoFullName string) string {
	if repoFullName == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/network/alerts", webBaseURL, repoFullName)
}

// UserAvatarByUsername builds the avatar URL GitHub serves for a username
func UserAvatarByUsername(username string) string {
	if username == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s.png", webBaseURL, username)
}
